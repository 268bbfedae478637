// Package pkg provides the core libraries for typewire type-graph serialization.
//
// # Overview
//
// Typewire models type systems as graphs of mutually referencing nodes and
// serializes them to a stable JSON wire format. The pkg directory is
// organized into four main areas:
//
//  1. [typegraph] - Domain model (type variants, references, the factory)
//  2. [wire] - The JSON codec (encode, two-phase decode)
//  3. [render] - Graphviz DOT and SVG output
//  4. [store], [cache] - Persistence and derived-artifact caching
//
// # Architecture
//
// The typical data flow through typewire:
//
//	TypeFactory (build nodes, take references)
//	         ↓
//	wire.Serialize → JSON document
//	         ↓
//	store (MongoDB) / files
//	         ↓
//	wire.Deserialize → decoded node sequence
//	         ↓
//	render (DOT, SVG) with cache for artifacts
//
// The codec is the heart of the module: positions in the serialized array
// are node identities, so a document round-trips to a graph with the same
// shape, including cycles.
package pkg
