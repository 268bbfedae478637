package cli

import (
	"testing"

	"github.com/typewire/typewire/pkg/typegraph"
)

func TestVariantName(t *testing.T) {
	tests := []struct {
		name string
		node typegraph.TypeBase
		want string
	}{
		{"builtin", &typegraph.BuiltInType{Kind: typegraph.BuiltInInt}, "builtin"},
		{"object", &typegraph.ObjectType{Name: "widget"}, "object"},
		{"array", &typegraph.ArrayType{}, "array"},
		{"resource", &typegraph.ResourceType{Name: "vm"}, "resource"},
		{"union", &typegraph.UnionType{}, "union"},
		{"literal", &typegraph.StringLiteralType{Value: "on"}, "literal"},
		{"discriminated", &typegraph.DiscriminatedObjectType{Name: "pet"}, "discriminated"},
		{"function", &typegraph.ResourceFunctionType{Name: "list"}, "function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := variantName(tt.node); got != tt.want {
				t.Errorf("variantName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeDetail(t *testing.T) {
	props := typegraph.NewPropertyMap()
	props.Set("name", typegraph.ObjectProperty{})

	tests := []struct {
		name string
		node typegraph.TypeBase
		want string
	}{
		{"builtin", &typegraph.BuiltInType{Kind: typegraph.BuiltInString}, "string"},
		{"object", &typegraph.ObjectType{Name: "widget", Properties: props}, "widget (1 properties)"},
		{"literal", &typegraph.StringLiteralType{Value: "on"}, `"on"`},
		{"function", &typegraph.ResourceFunctionType{ResourceType: "vm", APIVersion: "v1"}, "vm@v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeDetail(tt.node); got != tt.want {
				t.Errorf("nodeDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountVariants(t *testing.T) {
	types := []typegraph.TypeBase{
		&typegraph.BuiltInType{Kind: typegraph.BuiltInString},
		&typegraph.ObjectType{Name: "a"},
		&typegraph.BuiltInType{Kind: typegraph.BuiltInInt},
	}

	counts := countVariants(types)
	if len(counts) != 2 {
		t.Fatalf("len = %d, want 2", len(counts))
	}
	if counts[0].variant != "builtin" || counts[0].count != 2 {
		t.Errorf("counts[0] = %+v, want {builtin 2}", counts[0])
	}
	if counts[1].variant != "object" || counts[1].count != 1 {
		t.Errorf("counts[1] = %+v, want {object 1}", counts[1])
	}
}
