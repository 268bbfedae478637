package wire

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/typewire/typewire/pkg/typegraph"
)

func roundTrip(t *testing.T, types []typegraph.TypeBase) []typegraph.TypeBase {
	t.Helper()

	var buf bytes.Buffer
	if err := Serialize(&buf, types); err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	decoded, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if len(decoded) != len(types) {
		t.Fatalf("decoded %d nodes, want %d", len(decoded), len(types))
	}
	return decoded
}

func TestRoundTripBuiltIn(t *testing.T) {
	kinds := []typegraph.BuiltInKind{
		typegraph.BuiltInAny,
		typegraph.BuiltInNull,
		typegraph.BuiltInBool,
		typegraph.BuiltInInt,
		typegraph.BuiltInString,
		typegraph.BuiltInObject,
		typegraph.BuiltInArray,
		typegraph.BuiltInResourceRef,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			decoded := roundTrip(t, []typegraph.TypeBase{&typegraph.BuiltInType{Kind: kind}})
			got, ok := decoded[0].(*typegraph.BuiltInType)
			if !ok {
				t.Fatalf("decoded node is %T, want *BuiltInType", decoded[0])
			}
			if got.Kind != kind {
				t.Errorf("Kind = %v, want %v", got.Kind, kind)
			}
		})
	}
}

func TestRoundTripObject(t *testing.T) {
	f := typegraph.NewTypeFactory()
	str := f.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInString}
	})
	f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		props.Set("name", typegraph.ObjectProperty{
			Type:        f.MustReference(str),
			Flags:       typegraph.PropertyRequired,
			Description: "display name",
		})
		props.Set("alias", typegraph.ObjectProperty{Type: f.MustReference(str)})
		return &typegraph.ObjectType{
			Name:                 "widget",
			Properties:           props,
			AdditionalProperties: f.MustReference(str),
		}
	})

	decoded := roundTrip(t, f.GetTypes())
	obj, ok := decoded[1].(*typegraph.ObjectType)
	if !ok {
		t.Fatalf("decoded node is %T, want *ObjectType", decoded[1])
	}
	if obj.Name != "widget" {
		t.Errorf("Name = %q, want widget", obj.Name)
	}
	if !slices.Equal(obj.Properties.Names(), []string{"name", "alias"}) {
		t.Errorf("property order = %v, want [name alias]", obj.Properties.Names())
	}
	p, _ := obj.Properties.Get("name")
	if p.Flags != typegraph.PropertyRequired {
		t.Errorf("name flags = %v, want required", p.Flags)
	}
	if p.Description != "display name" {
		t.Errorf("name description = %q", p.Description)
	}
	if p.Type.Resolve() != decoded[0] {
		t.Error("name property should resolve to the decoded string node")
	}
	if obj.AdditionalProperties == nil || obj.AdditionalProperties.Resolve() != decoded[0] {
		t.Error("additionalProperties should resolve to the decoded string node")
	}
}

func TestRoundTripResource(t *testing.T) {
	readOnly := typegraph.ScopeTenant | typegraph.ScopeOrganization
	f := typegraph.NewTypeFactory()
	body := f.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInObject}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ResourceType{
			Name:           "vault/secret@v1",
			WritableScopes: typegraph.ScopeProject | typegraph.ScopeStack,
			ReadOnlyScopes: &readOnly,
			Body:           f.MustReference(body),
			Flags:          typegraph.ResourceReadOnly,
		}
	})

	decoded := roundTrip(t, f.GetTypes())
	res, ok := decoded[1].(*typegraph.ResourceType)
	if !ok {
		t.Fatalf("decoded node is %T, want *ResourceType", decoded[1])
	}
	if res.Name != "vault/secret@v1" {
		t.Errorf("Name = %q", res.Name)
	}
	if res.WritableScopes != typegraph.ScopeProject|typegraph.ScopeStack {
		t.Errorf("WritableScopes = %v", res.WritableScopes)
	}
	if res.ReadOnlyScopes == nil || *res.ReadOnlyScopes != readOnly {
		t.Errorf("ReadOnlyScopes = %v, want %v", res.ReadOnlyScopes, readOnly)
	}
	if res.Flags != typegraph.ResourceReadOnly {
		t.Errorf("Flags = %v, want readOnly", res.Flags)
	}
	if res.Body.Resolve() != decoded[0] {
		t.Error("Body should resolve to the decoded body node")
	}
}

func TestRoundTripHeterogeneous(t *testing.T) {
	f := typegraph.NewTypeFactory()
	str := f.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInString}
	})
	obj := f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		props.Set("id", typegraph.ObjectProperty{Type: f.MustReference(str)})
		return &typegraph.ObjectType{Name: "base", Properties: props}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ArrayType{ItemType: f.MustReference(str)}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ResourceType{Name: "res", Body: f.MustReference(obj)}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.UnionType{Elements: []typegraph.TypeReference{
			f.MustReference(str), f.MustReference(obj),
		}}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.StringLiteralType{Value: "on"}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.DiscriminatedObjectType{
			Name:          "shape",
			Discriminator: "kind",
			Elements: map[string]typegraph.TypeReference{
				"base": f.MustReference(obj),
			},
		}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ResourceFunctionType{
			Name:         "listKeys",
			ResourceType: "res",
			APIVersion:   "2024-01-01",
			Input:        f.MustReference(obj),
			Output:       f.MustReference(str),
		}
	})

	decoded := roundTrip(t, f.GetTypes())

	// Each variant decodes at its original position.
	if _, ok := decoded[0].(*typegraph.BuiltInType); !ok {
		t.Errorf("position 0 is %T, want *BuiltInType", decoded[0])
	}
	if _, ok := decoded[1].(*typegraph.ObjectType); !ok {
		t.Errorf("position 1 is %T, want *ObjectType", decoded[1])
	}
	arr, ok := decoded[2].(*typegraph.ArrayType)
	if !ok {
		t.Fatalf("position 2 is %T, want *ArrayType", decoded[2])
	}
	if arr.ItemType.Resolve() != decoded[0] {
		t.Error("array item should resolve to position 0")
	}
	if _, ok := decoded[3].(*typegraph.ResourceType); !ok {
		t.Errorf("position 3 is %T, want *ResourceType", decoded[3])
	}
	union, ok := decoded[4].(*typegraph.UnionType)
	if !ok {
		t.Fatalf("position 4 is %T, want *UnionType", decoded[4])
	}
	if len(union.Elements) != 2 ||
		union.Elements[0].Resolve() != decoded[0] ||
		union.Elements[1].Resolve() != decoded[1] {
		t.Error("union elements should resolve to positions 0 and 1")
	}
	lit, ok := decoded[5].(*typegraph.StringLiteralType)
	if !ok || lit.Value != "on" {
		t.Errorf("position 5 = %#v, want string literal \"on\"", decoded[5])
	}
	disc, ok := decoded[6].(*typegraph.DiscriminatedObjectType)
	if !ok {
		t.Fatalf("position 6 is %T, want *DiscriminatedObjectType", decoded[6])
	}
	if disc.Discriminator != "kind" || disc.Elements["base"].Resolve() != decoded[1] {
		t.Error("discriminated object should keep discriminator and element targets")
	}
	fn, ok := decoded[7].(*typegraph.ResourceFunctionType)
	if !ok {
		t.Fatalf("position 7 is %T, want *ResourceFunctionType", decoded[7])
	}
	if fn.Name != "listKeys" || fn.ResourceType != "res" || fn.APIVersion != "2024-01-01" {
		t.Errorf("function attributes lost: %+v", fn)
	}
	if fn.Input.Resolve() != decoded[1] || fn.Output.Resolve() != decoded[0] {
		t.Error("function input/output should resolve to positions 1 and 0")
	}
}

func TestCyclePreservation(t *testing.T) {
	f := typegraph.NewTypeFactory()
	var a, b typegraph.TypeBase
	a = f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		props.Set("b", typegraph.ObjectProperty{
			Type: typegraph.Deferred(func() typegraph.TypeBase { return b }),
		})
		return &typegraph.ObjectType{Name: "a", Properties: props}
	})
	b = f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		props.Set("a", typegraph.ObjectProperty{
			Type: typegraph.Deferred(func() typegraph.TypeBase { return a }),
		})
		return &typegraph.ObjectType{Name: "b", Properties: props}
	})

	decoded := roundTrip(t, f.GetTypes())
	decodedA := decoded[0].(*typegraph.ObjectType)
	decodedB := decoded[1].(*typegraph.ObjectType)

	pa, _ := decodedA.Properties.Get("b")
	if pa.Type.Resolve() != decodedB {
		t.Error("decoded a.b should resolve to decoded b")
	}
	pb, _ := decodedB.Properties.Get("a")
	if pb.Type.Resolve() != decodedA {
		t.Error("decoded b.a should resolve to decoded a")
	}
}

func TestSelfReference(t *testing.T) {
	f := typegraph.NewTypeFactory()
	var node typegraph.TypeBase
	node = f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		props.Set("next", typegraph.ObjectProperty{
			Type: typegraph.Deferred(func() typegraph.TypeBase { return node }),
		})
		return &typegraph.ObjectType{Name: "linked", Properties: props}
	})

	decoded := roundTrip(t, f.GetTypes())
	obj := decoded[0].(*typegraph.ObjectType)
	p, _ := obj.Properties.Get("next")
	if p.Type.Resolve() != obj {
		t.Error("self-reference should resolve to the decoded node itself")
	}
}

func TestIndexStability(t *testing.T) {
	const n = 25
	f := typegraph.NewTypeFactory()
	for i := 0; i < n; i++ {
		v := string(rune('a' + i%26))
		f.Create(func() typegraph.TypeBase {
			return &typegraph.StringLiteralType{Value: v}
		})
	}

	types := f.GetTypes()
	if len(types) != n {
		t.Fatalf("GetTypes length = %d, want %d", len(types), n)
	}
	decoded := roundTrip(t, types)
	for i := range decoded {
		want := types[i].(*typegraph.StringLiteralType).Value
		got := decoded[i].(*typegraph.StringLiteralType).Value
		if got != want {
			t.Errorf("position %d: value %q, want %q", i, got, want)
		}
	}
}

func TestDefaultsOmittedFromDocument(t *testing.T) {
	f := typegraph.NewTypeFactory()
	body := f.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInObject}
	})
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ResourceType{Name: "plain", Body: f.MustReference(body)}
	})

	var buf bytes.Buffer
	if err := Serialize(&buf, f.GetTypes()); err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	doc := buf.String()
	for _, attr := range []string{"flags", "readOnlyScopes", "writableScopes", "properties"} {
		if strings.Contains(doc, attr) {
			t.Errorf("default-valued attribute %q should be omitted, document:\n%s", attr, doc)
		}
	}
}

func TestDecodeDefaultsMissingAttributes(t *testing.T) {
	// A resource record written by a narrower encoder: no flags, no
	// readOnlyScopes.
	doc := `[
	  {"1": {"kind": 6}},
	  {"4": {"name": "plain", "body": 0}}
	]`

	decoded, err := Deserialize(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	res := decoded[1].(*typegraph.ResourceType)
	if res.Flags != typegraph.ResourceNone {
		t.Errorf("Flags = %v, want none", res.Flags)
	}
	if res.ReadOnlyScopes != nil {
		t.Errorf("ReadOnlyScopes = %v, want absent", res.ReadOnlyScopes)
	}
	if res.WritableScopes != typegraph.ScopeNone {
		t.Errorf("WritableScopes = %v, want empty", res.WritableScopes)
	}
	if res.Body == nil || res.Body.Resolve() != decoded[0] {
		t.Error("Body should resolve to position 0")
	}
}

func TestDecodeIgnoresUnknownAttributes(t *testing.T) {
	doc := `[{"6": {"value": "x", "futureAttribute": {"nested": true}}}]`
	decoded, err := Deserialize(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if got := decoded[0].(*typegraph.StringLiteralType).Value; got != "x" {
		t.Errorf("Value = %q, want x", got)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	doc := `[{"6": {"value": "x"}}, {"99": {}}]`
	decoded, err := Deserialize(strings.NewReader(doc))
	if !errors.Is(err, ErrUnsupportedVariant) {
		t.Fatalf("error = %v, want ErrUnsupportedVariant", err)
	}
	if decoded != nil {
		t.Error("failed decode must not return a partial sequence")
	}
}

func TestDecodeMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"top level not array", `{"1": {"kind": 1}}`},
		{"wrapper not object", `[42]`},
		{"wrapper zero keys", `[{}]`},
		{"wrapper two keys", `[{"1": {"kind": 1}, "2": {}}]`},
		{"non-numeric tag", `[{"builtIn": {"kind": 1}}]`},
		{"position out of range", `[{"3": {"itemType": 5}}]`},
		{"negative position", `[{"3": {"itemType": -1}}]`},
		{"wrong attribute shape", `[{"6": {"value": 42}}]`},
		{"reference not an integer", `[{"3": {"itemType": "zero"}}]`},
		{"properties not an object", `[{"2": {"properties": [1, 2]}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Deserialize(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("error = %v, want ErrMalformedDocument", err)
			}
			if decoded != nil {
				t.Error("failed decode must not return a partial sequence")
			}
		})
	}
}

func TestSerializeForeignReference(t *testing.T) {
	other := typegraph.NewTypeFactory()
	foreign := other.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInInt}
	})

	f := typegraph.NewTypeFactory()
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ArrayType{ItemType: other.MustReference(foreign)}
	})

	var buf bytes.Buffer
	err := Serialize(&buf, f.GetTypes())
	if !errors.Is(err, ErrForeignReference) {
		t.Fatalf("error = %v, want ErrForeignReference", err)
	}
}

func TestSerializeWritesNothingOnFailure(t *testing.T) {
	other := typegraph.NewTypeFactory()
	foreign := other.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInInt}
	})
	f := typegraph.NewTypeFactory()
	f.Create(func() typegraph.TypeBase {
		return &typegraph.ArrayType{ItemType: other.MustReference(foreign)}
	})

	var buf bytes.Buffer
	if err := Serialize(&buf, f.GetTypes()); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("failed serialize wrote %d bytes, want 0", buf.Len())
	}
}

func TestPropertyOrderSurvivesRoundTrip(t *testing.T) {
	f := typegraph.NewTypeFactory()
	str := f.Create(func() typegraph.TypeBase {
		return &typegraph.BuiltInType{Kind: typegraph.BuiltInString}
	})
	names := []string{"zeta", "alpha", "omega", "beta", "kappa"}
	f.Create(func() typegraph.TypeBase {
		props := typegraph.NewPropertyMap()
		for _, n := range names {
			props.Set(n, typegraph.ObjectProperty{Type: f.MustReference(str)})
		}
		return &typegraph.ObjectType{Name: "ordered", Properties: props}
	})

	decoded := roundTrip(t, f.GetTypes())
	got := decoded[1].(*typegraph.ObjectType).Properties.Names()
	if !slices.Equal(got, names) {
		t.Errorf("property order = %v, want %v", got, names)
	}
}

func TestDeserializeEmptyDocument(t *testing.T) {
	decoded, err := Deserialize(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d nodes, want 0", len(decoded))
	}
}
