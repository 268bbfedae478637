package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/typewire/typewire/pkg/typegraph"
)

// Deserialize reads a JSON document from r and reconstructs the ordered
// node sequence it describes, with every reference field resolved to the
// node at its target position.
//
// Reconstruction runs in two phases. Phase one allocates a placeholder
// node per record so that every position has a resolvable identity before
// any reference is followed; phase two fills in attributes and resolves
// reference positions against the allocated sequence. Self-references and
// mutual cycles of any length therefore decode correctly regardless of
// discovery order.
//
// Attributes absent from a record body take their documented default
// (empty bitset, absent optional reference or scope set), which lets
// documents written by an older encoder decode against a newer
// definition. Attributes unknown to this decoder are ignored.
//
// Deserialize returns [ErrUnsupportedVariant] for an unknown tag and
// [ErrMalformedDocument] for shape violations (a wrapper without exactly
// one numeric-tag key, an out-of-range position, or an attribute of the
// wrong JSON type). Both are fatal: no partial sequence is ever returned.
func Deserialize(r io.Reader) ([]typegraph.TypeBase, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, fmt.Errorf("document must be a top-level array: %w", ErrMalformedDocument)
	}

	// Phase 1: allocate an addressable placeholder per record.
	d := decoder{types: make([]typegraph.TypeBase, len(rawRecords))}
	bodies := make([]json.RawMessage, len(rawRecords))
	for i, raw := range rawRecords {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("record %d: wrapper must be an object: %w", i, ErrMalformedDocument)
		}
		if len(wrapper) != 1 {
			return nil, fmt.Errorf("record %d: wrapper must have exactly one key, got %d: %w", i, len(wrapper), ErrMalformedDocument)
		}
		for key, body := range wrapper {
			tag, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("record %d: tag %q is not numeric: %w", i, key, ErrMalformedDocument)
			}
			node, ok := allocate(tag)
			if !ok {
				return nil, fmt.Errorf("record %d: tag %d: %w", i, tag, ErrUnsupportedVariant)
			}
			d.types[i] = node
			bodies[i] = body
		}
	}

	// Phase 2: populate attributes and resolve positional references.
	for i := range d.types {
		if err := d.populate(i, bodies[i]); err != nil {
			return nil, err
		}
	}

	return d.types, nil
}

// DeserializeFile reads a JSON file at path and returns the decoded node
// sequence. This is a convenience wrapper around [Deserialize].
func DeserializeFile(path string) ([]typegraph.TypeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Deserialize(f)
}

// allocate returns an empty node of the variant identified by tag.
func allocate(tag int) (typegraph.TypeBase, bool) {
	switch tag {
	case tagBuiltIn:
		return &typegraph.BuiltInType{}, true
	case tagObject:
		return &typegraph.ObjectType{}, true
	case tagArray:
		return &typegraph.ArrayType{}, true
	case tagResource:
		return &typegraph.ResourceType{}, true
	case tagUnion:
		return &typegraph.UnionType{}, true
	case tagStringLiteral:
		return &typegraph.StringLiteralType{}, true
	case tagDiscriminatedObject:
		return &typegraph.DiscriminatedObjectType{}, true
	case tagResourceFunction:
		return &typegraph.ResourceFunctionType{}, true
	default:
		return nil, false
	}
}

// decoder carries the allocated node sequence for one decode pass.
type decoder struct {
	types []typegraph.TypeBase
}

// populate fills the placeholder at position i from its record body.
func (d *decoder) populate(i int, body json.RawMessage) error {
	switch node := d.types[i].(type) {
	case *typegraph.BuiltInType:
		var b builtInBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		node.Kind = b.Kind

	case *typegraph.ObjectType:
		var b objectBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		props, err := d.properties(i, b.Properties)
		if err != nil {
			return err
		}
		additional, err := d.reference(i, b.AdditionalProperties)
		if err != nil {
			return err
		}
		node.Name = b.Name
		node.Properties = props
		node.AdditionalProperties = additional

	case *typegraph.ArrayType:
		var b arrayBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		item, err := d.reference(i, b.ItemType)
		if err != nil {
			return err
		}
		node.ItemType = item

	case *typegraph.ResourceType:
		var b resourceBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		bodyRef, err := d.reference(i, b.Body)
		if err != nil {
			return err
		}
		node.Name = b.Name
		node.WritableScopes = b.WritableScopes
		node.ReadOnlyScopes = b.ReadOnlyScopes
		node.Body = bodyRef
		node.Flags = b.Flags

	case *typegraph.UnionType:
		var b unionBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		elements := make([]typegraph.TypeReference, len(b.Elements))
		for j, pos := range b.Elements {
			ref, err := d.reference(i, &pos)
			if err != nil {
				return err
			}
			elements[j] = ref
		}
		node.Elements = elements

	case *typegraph.StringLiteralType:
		var b stringLiteralBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		node.Value = b.Value

	case *typegraph.DiscriminatedObjectType:
		var b discriminatedObjectBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		base, err := d.properties(i, b.BaseProperties)
		if err != nil {
			return err
		}
		var elements map[string]typegraph.TypeReference
		if len(b.Elements) > 0 {
			elements = make(map[string]typegraph.TypeReference, len(b.Elements))
			for value, pos := range b.Elements {
				ref, err := d.reference(i, &pos)
				if err != nil {
					return err
				}
				elements[value] = ref
			}
		}
		node.Name = b.Name
		node.Discriminator = b.Discriminator
		node.BaseProperties = base
		node.Elements = elements

	case *typegraph.ResourceFunctionType:
		var b resourceFunctionBody
		if err := unmarshalBody(i, body, &b); err != nil {
			return err
		}
		input, err := d.reference(i, b.Input)
		if err != nil {
			return err
		}
		output, err := d.reference(i, b.Output)
		if err != nil {
			return err
		}
		node.Name = b.Name
		node.ResourceType = b.ResourceType
		node.APIVersion = b.APIVersion
		node.Input = input
		node.Output = output
	}
	return nil
}

// reference returns an eager reference to the placeholder at *pos, or nil
// for an absent attribute.
func (d *decoder) reference(record int, pos *int) (typegraph.TypeReference, error) {
	if pos == nil {
		return nil, nil
	}
	if *pos < 0 || *pos >= len(d.types) {
		return nil, fmt.Errorf("record %d: position %d out of range [0,%d): %w", record, *pos, len(d.types), ErrMalformedDocument)
	}
	return typegraph.ReferenceAt(d.types, *pos), nil
}

// properties converts a wire property object back to an insertion-ordered
// property map. An absent object decodes as nil.
func (d *decoder) properties(record int, obj *propertyObject) (*typegraph.PropertyMap, error) {
	if obj == nil {
		return nil, nil
	}
	m := typegraph.NewPropertyMap()
	for _, e := range obj.entries {
		ref, err := d.reference(record, e.prop.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", e.name, err)
		}
		m.Set(e.name, typegraph.ObjectProperty{
			Type:        ref,
			Flags:       e.prop.Flags,
			Description: e.prop.Description,
		})
	}
	return m, nil
}

// unmarshalBody decodes a record body, mapping JSON shape violations to
// the malformed-document error.
func unmarshalBody(record int, body json.RawMessage, into any) error {
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("record %d: %v: %w", record, err, ErrMalformedDocument)
	}
	return nil
}
