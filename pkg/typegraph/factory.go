package typegraph

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by [TypeFactory.GetReference] when the given
// instance was not created by this factory. References are identity-based,
// so only nodes the factory itself produced have a position to point at.
var ErrUnknownType = errors.New("type was not created by this factory")

// TypeFactory builds type graphs. It owns the creation order: every node
// created through [TypeFactory.Create] is appended at the next sequential
// position, exactly once, so identical Create call sequences produce
// identical positions across runs. That determinism is what makes the
// serialized form reproducible.
//
// The zero value is not usable - use [NewTypeFactory].
// TypeFactory is not safe for concurrent mutation without external
// synchronization.
type TypeFactory struct {
	types []TypeBase
	index map[TypeBase]int
}

// NewTypeFactory creates an empty factory.
func NewTypeFactory() *TypeFactory {
	return &TypeFactory{index: make(map[TypeBase]int)}
}

// Create invokes build to obtain one node, appends it at the next position
// and returns it. The build procedure may close over variables that have
// not been assigned yet, as long as any reference to them is wrapped with
// [Deferred] rather than resolved inside build.
func (f *TypeFactory) Create(build func() TypeBase) TypeBase {
	t := build()
	f.index[t] = len(f.types)
	f.types = append(f.types, t)
	return t
}

// GetReference returns an eager reference to the position previously
// assigned to exactly this instance. Returns [ErrUnknownType] if the
// instance was never produced by Create on this factory.
func (f *TypeFactory) GetReference(t TypeBase) (TypeReference, error) {
	i, ok := f.index[t]
	if !ok {
		return nil, fmt.Errorf("get reference: %w", ErrUnknownType)
	}
	return factoryReference{factory: f, index: i}, nil
}

// MustReference is like [TypeFactory.GetReference] but panics on foreign
// instances. It is intended for builder code that just created the target
// through the same factory and therefore owns the invariant.
func (f *TypeFactory) MustReference(t TypeBase) TypeReference {
	ref, err := f.GetReference(t)
	if err != nil {
		panic(err)
	}
	return ref
}

// GetTypes returns the full ordered node sequence. The returned slice is
// a read view shared with the factory and must not be modified; creating
// more nodes after the call does not affect a previously returned view.
func (f *TypeFactory) GetTypes() []TypeBase {
	return f.types
}

// Len returns the number of nodes created so far.
func (f *TypeFactory) Len() int {
	return len(f.types)
}
