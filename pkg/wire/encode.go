package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/typewire/typewire/pkg/typegraph"
)

// Serialize encodes an ordered node sequence as a JSON document and writes
// it to w. The sequence is typically [typegraph.TypeFactory.GetTypes]
// output, but any ordered sequence with identity-consistent references
// works; Serialize has no dependency on the factory itself.
//
// Every reference is replaced by the integer position of its target within
// types, resolved through one identity lookup built up front. References
// that resolve to a node outside the sequence fail with
// [ErrForeignReference]. Attributes at their default value are omitted
// from the document.
//
// The document is fully marshaled in memory before the first write, so a
// failed call never leaves partial output on w.
func Serialize(w io.Writer, types []typegraph.TypeBase) error {
	enc := encoder{positions: make(map[typegraph.TypeBase]int, len(types))}
	for i, t := range types {
		enc.positions[t] = i
	}

	records := make([]map[string]json.RawMessage, len(types))
	for i, t := range types {
		tag, body, err := enc.record(t)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		records[i] = map[string]json.RawMessage{strconv.Itoa(tag): raw}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// SerializeFile writes a node sequence to a JSON file at path.
// This is a convenience wrapper around [Serialize] for file-based output.
func SerializeFile(path string, types []typegraph.TypeBase) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Serialize(f, types)
}

// encoder carries the identity→position map for one encode pass.
type encoder struct {
	positions map[typegraph.TypeBase]int
}

// record maps one node to its variant tag and wire body. Only the node's
// local attributes are touched; referenced nodes are resolved to positions,
// never inlined.
func (e *encoder) record(t typegraph.TypeBase) (int, any, error) {
	switch n := t.(type) {
	case *typegraph.BuiltInType:
		return tagBuiltIn, builtInBody{Kind: n.Kind}, nil

	case *typegraph.ObjectType:
		props, err := e.properties(n.Properties)
		if err != nil {
			return 0, nil, err
		}
		additional, err := e.position(n.AdditionalProperties)
		if err != nil {
			return 0, nil, err
		}
		return tagObject, objectBody{
			Name:                 n.Name,
			Properties:           props,
			AdditionalProperties: additional,
		}, nil

	case *typegraph.ArrayType:
		item, err := e.position(n.ItemType)
		if err != nil {
			return 0, nil, err
		}
		return tagArray, arrayBody{ItemType: item}, nil

	case *typegraph.ResourceType:
		body, err := e.position(n.Body)
		if err != nil {
			return 0, nil, err
		}
		return tagResource, resourceBody{
			Name:           n.Name,
			WritableScopes: n.WritableScopes,
			ReadOnlyScopes: n.ReadOnlyScopes,
			Body:           body,
			Flags:          n.Flags,
		}, nil

	case *typegraph.UnionType:
		elements := make([]int, 0, len(n.Elements))
		for i, ref := range n.Elements {
			pos, err := e.position(ref)
			if err != nil {
				return 0, nil, fmt.Errorf("element %d: %w", i, err)
			}
			if pos == nil {
				return 0, nil, fmt.Errorf("element %d: nil reference", i)
			}
			elements = append(elements, *pos)
		}
		return tagUnion, unionBody{Elements: elements}, nil

	case *typegraph.StringLiteralType:
		return tagStringLiteral, stringLiteralBody{Value: n.Value}, nil

	case *typegraph.DiscriminatedObjectType:
		base, err := e.properties(n.BaseProperties)
		if err != nil {
			return 0, nil, err
		}
		var elements map[string]int
		if len(n.Elements) > 0 {
			elements = make(map[string]int, len(n.Elements))
			for value, ref := range n.Elements {
				pos, err := e.position(ref)
				if err != nil {
					return 0, nil, fmt.Errorf("element %q: %w", value, err)
				}
				if pos == nil {
					return 0, nil, fmt.Errorf("element %q: nil reference", value)
				}
				elements[value] = *pos
			}
		}
		return tagDiscriminatedObject, discriminatedObjectBody{
			Name:           n.Name,
			Discriminator:  n.Discriminator,
			BaseProperties: base,
			Elements:       elements,
		}, nil

	case *typegraph.ResourceFunctionType:
		input, err := e.position(n.Input)
		if err != nil {
			return 0, nil, err
		}
		output, err := e.position(n.Output)
		if err != nil {
			return 0, nil, err
		}
		return tagResourceFunction, resourceFunctionBody{
			Name:         n.Name,
			ResourceType: n.ResourceType,
			APIVersion:   n.APIVersion,
			Input:        input,
			Output:       output,
		}, nil

	default:
		return 0, nil, fmt.Errorf("unknown node type %T", t)
	}
}

// position resolves ref once and returns its position in the sequence.
// A nil reference encodes as an absent attribute.
func (e *encoder) position(ref typegraph.TypeReference) (*int, error) {
	if ref == nil {
		return nil, nil
	}
	target := ref.Resolve()
	pos, ok := e.positions[target]
	if !ok {
		return nil, ErrForeignReference
	}
	return &pos, nil
}

// properties converts an insertion-ordered property map to its wire form.
// An empty or nil map encodes as an absent attribute.
func (e *encoder) properties(m *typegraph.PropertyMap) (*propertyObject, error) {
	if m.Len() == 0 {
		return nil, nil
	}
	obj := &propertyObject{entries: make([]propertyEntry, 0, m.Len())}
	for _, name := range m.Names() {
		p, _ := m.Get(name)
		pos, err := e.position(p.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		obj.entries = append(obj.entries, propertyEntry{
			name: name,
			prop: wireProperty{Type: pos, Flags: p.Flags, Description: p.Description},
		})
	}
	return obj, nil
}
