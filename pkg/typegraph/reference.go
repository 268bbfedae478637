package typegraph

// TypeReference is a resolvable handle to a node in a type graph.
//
// Resolve must be idempotent: repeated calls return the same node
// identity. Resolve never mutates shared state, so a reference may be
// resolved any number of times from any number of readers.
type TypeReference interface {
	Resolve() TypeBase
}

// factoryReference points at a position inside a live factory. It stays
// valid as the factory grows.
type factoryReference struct {
	factory *TypeFactory
	index   int
}

func (r factoryReference) Resolve() TypeBase {
	return r.factory.types[r.index]
}

// sliceReference points at a position inside a fixed, fully allocated node
// sequence, such as the output of a decode pass.
type sliceReference struct {
	types []TypeBase
	index int
}

func (r sliceReference) Resolve() TypeBase {
	return r.types[r.index]
}

// ReferenceAt returns an eager reference to position index of types. The
// slice must already contain an addressable node at that position and must
// not be reallocated afterwards; callers that are still appending nodes
// should use [TypeFactory.GetReference] instead.
func ReferenceAt(types []TypeBase, index int) TypeReference {
	return sliceReference{types: types, index: index}
}

// deferredReference wraps a resolver thunk supplied by construction code.
type deferredReference struct {
	resolve func() TypeBase
}

func (r deferredReference) Resolve() TypeBase {
	return r.resolve()
}

// Deferred returns a reference that resolves through fn. It exists so that
// builder code can write "reference to X" before X has been assigned:
// capture the variable in fn and make sure nothing resolves the reference
// until the target node has been created. Resolving earlier is a caller
// bug, observable as a nil node or a nil-pointer panic inside fn.
//
// Deferred references are a construction-time device only; the wire form
// always stores a concrete position.
func Deferred(fn func() TypeBase) TypeReference {
	return deferredReference{resolve: fn}
}
