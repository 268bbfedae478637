package cli

import (
	"fmt"

	"github.com/typewire/typewire/pkg/typegraph"
)

// variantName returns the short display name for a node's variant.
func variantName(t typegraph.TypeBase) string {
	switch t.(type) {
	case *typegraph.BuiltInType:
		return "builtin"
	case *typegraph.ObjectType:
		return "object"
	case *typegraph.ArrayType:
		return "array"
	case *typegraph.ResourceType:
		return "resource"
	case *typegraph.UnionType:
		return "union"
	case *typegraph.StringLiteralType:
		return "literal"
	case *typegraph.DiscriminatedObjectType:
		return "discriminated"
	case *typegraph.ResourceFunctionType:
		return "function"
	default:
		return "unknown"
	}
}

// nodeDetail returns a one-line summary of a node's identifying content.
func nodeDetail(t typegraph.TypeBase) string {
	switch n := t.(type) {
	case *typegraph.BuiltInType:
		return n.Kind.String()
	case *typegraph.ObjectType:
		return fmt.Sprintf("%s (%d properties)", n.Name, n.Properties.Len())
	case *typegraph.ArrayType:
		return ""
	case *typegraph.ResourceType:
		return n.Name
	case *typegraph.UnionType:
		return fmt.Sprintf("%d elements", len(n.Elements))
	case *typegraph.StringLiteralType:
		return fmt.Sprintf("%q", n.Value)
	case *typegraph.DiscriminatedObjectType:
		return fmt.Sprintf("%s (on %s, %d elements)", n.Name, n.Discriminator, len(n.Elements))
	case *typegraph.ResourceFunctionType:
		return fmt.Sprintf("%s@%s", n.ResourceType, n.APIVersion)
	default:
		return ""
	}
}

// variantCount pairs a variant display name with its node count.
type variantCount struct {
	variant string
	count   int
}

// countVariants tallies nodes per variant, ordered by first appearance.
func countVariants(types []typegraph.TypeBase) []variantCount {
	index := make(map[string]int)
	var counts []variantCount
	for _, t := range types {
		name := variantName(t)
		if i, ok := index[name]; ok {
			counts[i].count++
			continue
		}
		index[name] = len(counts)
		counts = append(counts, variantCount{variant: name, count: 1})
	}
	return counts
}
