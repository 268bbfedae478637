// Package wire serializes type graphs to and from their JSON wire form.
//
// # Overview
//
// The wire form exists to move type graphs across process and version
// boundaries: a schema producer serializes the graph its build session
// created, and a consumer (type checker, IDE tooling) deserializes an
// equivalent graph later, possibly against a newer schema definition.
// The format is designed for:
//
//   - Cyclic graphs: self-references, forward references and mutual
//     recursion of any length round-trip exactly
//   - Stable positions: node order and count are preserved, so positional
//     references written by one process mean the same thing in another
//   - Schema evolution: attributes at their default value are omitted on
//     write and defaulted on read, so older documents keep decoding
//
// # JSON Format
//
// A document is one top-level array. Each element describes the node at
// that position as an object with exactly one key: the variant's numeric
// tag. The value carries the variant's attributes:
//
//	[
//	  {"1": {"kind": 5}},
//	  {"3": {"itemType": 0}},
//	  {"5": {"elements": [0, 1]}}
//	]
//
// Reference-typed attributes are plain non-negative integers indexing the
// top-level array. A referenced node's body is never inlined into its
// referrer, so encoding walks each node's local attributes only and cycles
// cannot recurse.
//
// # Variant Tags
//
// Tags are stable across versions and never reused:
//
//	1  built-in primitive
//	2  object
//	3  array
//	4  resource
//	5  union
//	6  string literal
//	7  discriminated object
//	8  resource function
//
// A decoder that encounters a tag it does not know fails with
// [ErrUnsupportedVariant]: the document was written by a newer encoder.
// Attributes unknown to this decoder are ignored instead, so documents
// written by a newer encoder that only adds attributes still decode.
//
// # Decoding
//
// [Deserialize] reconstructs graphs in two phases. It first allocates a
// placeholder node per record, giving every position a resolvable
// identity, and then populates attributes, resolving each position index
// against the allocated sequence. This is what makes self-references and
// arbitrary cycles decodable regardless of discovery order.
//
// Both [Serialize] and [Deserialize] are all-or-nothing: a failed call
// never leaves a partial document or returns a partial sequence.
//
// # Concurrency
//
// Serialize and Deserialize share no state. Independent calls over
// independent inputs may run concurrently with no coordination.
package wire
