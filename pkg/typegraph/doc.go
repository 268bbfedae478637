// Package typegraph defines the node model for serializable type graphs.
//
// # Overview
//
// A type graph is an ordered sequence of type nodes. Nodes never own one
// another: every relationship between nodes is expressed as a
// [TypeReference], a resolvable handle to a position in the sequence. This
// arena-and-index shape is what makes self-referential and mutually
// recursive type definitions representable without cyclic ownership or
// unbounded recursion.
//
// # Building Graphs
//
// Graphs are built through a [TypeFactory], which assigns each node a
// stable position in creation order:
//
//	f := typegraph.NewTypeFactory()
//	str := f.Create(func() typegraph.TypeBase {
//	    return &typegraph.BuiltInType{Kind: typegraph.BuiltInString}
//	})
//	list := f.Create(func() typegraph.TypeBase {
//	    return &typegraph.ArrayType{ItemType: f.MustReference(str)}
//	})
//	_ = list
//
// Mutually recursive definitions use [Deferred] references, which postpone
// resolution until the target node exists:
//
//	var a, b typegraph.TypeBase
//	a = f.Create(func() typegraph.TypeBase {
//	    props := typegraph.NewPropertyMap()
//	    props.Set("b", typegraph.ObjectProperty{
//	        Type: typegraph.Deferred(func() typegraph.TypeBase { return b }),
//	    })
//	    return &typegraph.ObjectType{Name: "a", Properties: props}
//	})
//	b = f.Create(func() typegraph.TypeBase {
//	    props := typegraph.NewPropertyMap()
//	    props.Set("a", typegraph.ObjectProperty{Type: typegraph.Deferred(func() typegraph.TypeBase { return a })})
//	    return &typegraph.ObjectType{Name: "b", Properties: props}
//	})
//
// # Identity
//
// Nodes are identity-based, never content-addressed. Two nodes built with
// identical attributes occupy two distinct positions, and
// [TypeFactory.GetReference] only accepts instances the same factory
// created. There is no structural deduplication; callers that want
// interning must layer it above Create.
//
// # Serialization
//
// The wire form of a graph is produced and consumed by package
// [github.com/typewire/typewire/pkg/wire], which replaces every reference
// with its integer position. Deferred references are a construction-time
// device only and never appear on the wire.
package typegraph
