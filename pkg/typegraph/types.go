package typegraph

// TypeBase is the closed set of type-graph node variants. Exactly the
// types in this package implement it; consumers switch on the concrete
// type to inspect a node.
//
// Nodes are created once (normally through a [TypeFactory]) and are
// thereafter immutable in identity and position. Attribute fields are
// fixed at construction, apart from reference fields populated through
// [Deferred] resolution shortly after.
type TypeBase interface {
	// typeNode seals the interface to this package.
	typeNode()
}

// BuiltInType is a primitive type identified by its [BuiltInKind].
type BuiltInType struct {
	Kind BuiltInKind
}

// ObjectType is a named object with ordered properties and an optional
// type for properties not listed explicitly.
type ObjectType struct {
	Name       string
	Properties *PropertyMap

	// AdditionalProperties, when non-nil, types any property not present
	// in Properties.
	AdditionalProperties TypeReference
}

// ObjectProperty describes one property of an [ObjectType] or
// [DiscriminatedObjectType]. It is an attribute of its owning node, not a
// graph node itself.
type ObjectProperty struct {
	Type        TypeReference
	Flags       PropertyFlags
	Description string
}

// ArrayType is an ordered collection of one item type.
type ArrayType struct {
	ItemType TypeReference
}

// ResourceType describes a deployable resource: its body type, the scopes
// at which it can be written, and optionally a different set of scopes at
// which it is only readable.
type ResourceType struct {
	Name           string
	WritableScopes ScopeSet

	// ReadOnlyScopes is nil when the resource has no read-only scope set.
	ReadOnlyScopes *ScopeSet

	Body  TypeReference
	Flags ResourceFlags
}

// UnionType is a value that inhabits exactly one of its element types.
// Element order is preserved.
type UnionType struct {
	Elements []TypeReference
}

// StringLiteralType matches exactly one string value.
type StringLiteralType struct {
	Value string
}

// DiscriminatedObjectType is a tagged union of object shapes. The property
// named Discriminator selects which element applies; BaseProperties are
// shared by every element.
type DiscriminatedObjectType struct {
	Name           string
	Discriminator  string
	BaseProperties *PropertyMap
	Elements       map[string]TypeReference
}

// ResourceFunctionType describes an invokable operation on a resource
// type at a given API version.
type ResourceFunctionType struct {
	Name         string
	ResourceType string
	APIVersion   string
	Input        TypeReference
	Output       TypeReference
}

func (*BuiltInType) typeNode()             {}
func (*ObjectType) typeNode()              {}
func (*ArrayType) typeNode()               {}
func (*ResourceType) typeNode()            {}
func (*UnionType) typeNode()               {}
func (*StringLiteralType) typeNode()       {}
func (*DiscriminatedObjectType) typeNode() {}
func (*ResourceFunctionType) typeNode()    {}
