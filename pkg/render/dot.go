// Package render converts decoded type graphs to Graphviz DOT and SVG.
//
// Nodes are labeled with their position and variant, and every reference
// edge is labeled with the attribute it came from (property name, "item",
// "body", union element index, discriminator value). Cyclic graphs render
// fine: edges are drawn from the positional index, never by walking into
// referenced nodes.
package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/typewire/typewire/pkg/typegraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes flags, scopes and descriptions in node labels.
	// When false, only position, variant and name are shown.
	Detailed bool
}

// ToDOT converts a node sequence to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG].
func ToDOT(types []typegraph.TypeBase, opts Options) string {
	positions := make(map[typegraph.TypeBase]int, len(types))
	for i, t := range types {
		positions[t] = i
	}

	var buf bytes.Buffer
	buf.WriteString("digraph types {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i, t := range types {
		label := nodeLabel(i, t, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [label=%q%s];\n", i, label, nodeStyle(t))
	}

	buf.WriteString("\n")
	for i, t := range types {
		for _, e := range nodeEdges(t, positions) {
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q, fontsize=10];\n", i, e.target, e.label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// edge is one reference-typed attribute of a node, resolved to a position.
type edge struct {
	target int
	label  string
}

// nodeEdges lists the outgoing reference edges of a node. References that
// do not resolve into the sequence are skipped; rendering is best-effort
// and validation belongs to the codec.
func nodeEdges(t typegraph.TypeBase, positions map[typegraph.TypeBase]int) []edge {
	var edges []edge
	add := func(ref typegraph.TypeReference, label string) {
		if ref == nil {
			return
		}
		if pos, ok := positions[ref.Resolve()]; ok {
			edges = append(edges, edge{target: pos, label: label})
		}
	}

	switch n := t.(type) {
	case *typegraph.ObjectType:
		for _, name := range n.Properties.Names() {
			p, _ := n.Properties.Get(name)
			add(p.Type, name)
		}
		add(n.AdditionalProperties, "*")
	case *typegraph.ArrayType:
		add(n.ItemType, "item")
	case *typegraph.ResourceType:
		add(n.Body, "body")
	case *typegraph.UnionType:
		for i, ref := range n.Elements {
			add(ref, fmt.Sprintf("|%d", i))
		}
	case *typegraph.DiscriminatedObjectType:
		for _, name := range n.BaseProperties.Names() {
			p, _ := n.BaseProperties.Get(name)
			add(p.Type, name)
		}
		values := make([]string, 0, len(n.Elements))
		for v := range n.Elements {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			add(n.Elements[v], n.Discriminator+"="+v)
		}
	case *typegraph.ResourceFunctionType:
		add(n.Input, "input")
		add(n.Output, "output")
	}
	return edges
}

func nodeLabel(pos int, t typegraph.TypeBase, detailed bool) string {
	var parts []string
	switch n := t.(type) {
	case *typegraph.BuiltInType:
		parts = append(parts, fmt.Sprintf("%d: %s", pos, n.Kind))
	case *typegraph.ObjectType:
		parts = append(parts, fmt.Sprintf("%d: object %s", pos, n.Name))
	case *typegraph.ArrayType:
		parts = append(parts, fmt.Sprintf("%d: array", pos))
	case *typegraph.ResourceType:
		parts = append(parts, fmt.Sprintf("%d: resource %s", pos, n.Name))
		if detailed {
			parts = append(parts, "writable: "+n.WritableScopes.String())
			if n.ReadOnlyScopes != nil {
				parts = append(parts, "readOnly: "+n.ReadOnlyScopes.String())
			}
			if n.Flags != typegraph.ResourceNone {
				parts = append(parts, "flags: "+n.Flags.String())
			}
		}
	case *typegraph.UnionType:
		parts = append(parts, fmt.Sprintf("%d: union (%d)", pos, len(n.Elements)))
	case *typegraph.StringLiteralType:
		parts = append(parts, fmt.Sprintf("%d: %q", pos, n.Value))
	case *typegraph.DiscriminatedObjectType:
		parts = append(parts, fmt.Sprintf("%d: discriminated %s", pos, n.Name))
		if detailed {
			parts = append(parts, "on: "+n.Discriminator)
		}
	case *typegraph.ResourceFunctionType:
		parts = append(parts, fmt.Sprintf("%d: function %s", pos, n.Name))
		if detailed {
			parts = append(parts, n.ResourceType+"@"+n.APIVersion)
		}
	default:
		parts = append(parts, fmt.Sprintf("%d: unknown", pos))
	}
	return strings.Join(parts, "\n")
}

func nodeStyle(t typegraph.TypeBase) string {
	switch t.(type) {
	case *typegraph.BuiltInType, *typegraph.StringLiteralType:
		return ", fillcolor=lightgrey"
	case *typegraph.ResourceType, *typegraph.ResourceFunctionType:
		return ", fillcolor=lightyellow"
	default:
		return ""
	}
}
