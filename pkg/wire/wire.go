package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/typewire/typewire/pkg/typegraph"
)

var (
	// ErrUnsupportedVariant is returned by [Deserialize] when a record
	// carries a tag this decoder does not know. The document was written
	// by a newer encoder.
	ErrUnsupportedVariant = errors.New("unsupported type variant")

	// ErrMalformedDocument is returned by [Deserialize] when the document
	// violates the wire shape: a record wrapper without exactly one key, a
	// key that is not a numeric tag, a reference position outside the
	// array, or an attribute of the wrong shape.
	ErrMalformedDocument = errors.New("malformed type document")

	// ErrForeignReference is returned by [Serialize] when a reference
	// resolves to a node that is not part of the sequence being encoded.
	ErrForeignReference = errors.New("reference to a node outside the sequence")
)

// Variant tags. Stable wire-level constants: a tag is never reused for a
// different variant across versions.
const (
	tagBuiltIn             = 1
	tagObject              = 2
	tagArray               = 3
	tagResource            = 4
	tagUnion               = 5
	tagStringLiteral       = 6
	tagDiscriminatedObject = 7
	tagResourceFunction    = 8
)

// Record bodies. Reference fields are *int so that an absent attribute is
// distinguishable from position 0, both when omitting defaults on encode
// and when defaulting missing attributes on decode.
type builtInBody struct {
	Kind typegraph.BuiltInKind `json:"kind"`
}

type objectBody struct {
	Name                 string          `json:"name,omitempty"`
	Properties           *propertyObject `json:"properties,omitempty"`
	AdditionalProperties *int            `json:"additionalProperties,omitempty"`
}

type arrayBody struct {
	ItemType *int `json:"itemType,omitempty"`
}

type resourceBody struct {
	Name           string                  `json:"name,omitempty"`
	WritableScopes typegraph.ScopeSet      `json:"writableScopes,omitempty"`
	ReadOnlyScopes *typegraph.ScopeSet     `json:"readOnlyScopes,omitempty"`
	Body           *int                    `json:"body,omitempty"`
	Flags          typegraph.ResourceFlags `json:"flags,omitempty"`
}

type unionBody struct {
	Elements []int `json:"elements,omitempty"`
}

type stringLiteralBody struct {
	Value string `json:"value"`
}

type discriminatedObjectBody struct {
	Name           string          `json:"name,omitempty"`
	Discriminator  string          `json:"discriminator,omitempty"`
	BaseProperties *propertyObject `json:"baseProperties,omitempty"`
	Elements       map[string]int  `json:"elements,omitempty"`
}

type resourceFunctionBody struct {
	Name         string `json:"name,omitempty"`
	ResourceType string `json:"resourceType,omitempty"`
	APIVersion   string `json:"apiVersion,omitempty"`
	Input        *int   `json:"input,omitempty"`
	Output       *int   `json:"output,omitempty"`
}

// wireProperty is the body of one object property.
type wireProperty struct {
	Type        *int                    `json:"type,omitempty"`
	Flags       typegraph.PropertyFlags `json:"flags,omitempty"`
	Description string                  `json:"description,omitempty"`
}

// propertyEntry pairs a property name with its body.
type propertyEntry struct {
	name string
	prop wireProperty
}

// propertyObject is a JSON object of properties that preserves entry
// order on both marshal and unmarshal. encoding/json would sort map keys
// on write and forget order on read, which breaks the canonical form of
// insertion-ordered property maps.
type propertyObject struct {
	entries []propertyEntry
}

// MarshalJSON writes the entries as a JSON object in entry order.
func (p *propertyObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		prop, err := json.Marshal(e.prop)
		if err != nil {
			return nil, err
		}
		buf.Write(prop)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so that the original
// key order survives.
func (p *propertyObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be an object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("properties must have string keys")
		}
		var prop wireProperty
		if err := dec.Decode(&prop); err != nil {
			return err
		}
		p.entries = append(p.entries, propertyEntry{name: name, prop: prop})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
