package typegraph

// PropertyMap is a mapping from property name to [ObjectProperty] that
// remembers insertion order. Plain Go maps would lose the order, which is
// part of a graph's canonical form: round-tripping a graph must reproduce
// properties exactly as they were declared.
//
// The zero value is not usable - use [NewPropertyMap].
// PropertyMap is not safe for concurrent mutation.
type PropertyMap struct {
	names []string
	props map[string]ObjectProperty
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{props: make(map[string]ObjectProperty)}
}

// Set adds or replaces the property with the given name. A new name is
// appended at the end of the insertion order; replacing an existing name
// keeps its original position.
func (m *PropertyMap) Set(name string, p ObjectProperty) {
	if _, exists := m.props[name]; !exists {
		m.names = append(m.names, name)
	}
	m.props[name] = p
}

// Get returns the property with the given name and true, or the zero
// property and false if not present.
func (m *PropertyMap) Get(name string) (ObjectProperty, bool) {
	p, ok := m.props[name]
	return p, ok
}

// Names returns the property names in insertion order. The returned slice
// is shared with the map and must not be modified.
func (m *PropertyMap) Names() []string {
	if m == nil {
		return nil
	}
	return m.names
}

// Len returns the number of properties. A nil map has length 0.
func (m *PropertyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}
