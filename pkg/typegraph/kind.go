package typegraph

import "strings"

// BuiltInKind identifies a primitive type. Values are stable wire-level
// constants and must never be renumbered.
type BuiltInKind int

const (
	BuiltInAny BuiltInKind = iota + 1
	BuiltInNull
	BuiltInBool
	BuiltInInt
	BuiltInString
	BuiltInObject
	BuiltInArray
	BuiltInResourceRef
)

var builtInNames = map[BuiltInKind]string{
	BuiltInAny:         "any",
	BuiltInNull:        "null",
	BuiltInBool:        "bool",
	BuiltInInt:         "int",
	BuiltInString:      "string",
	BuiltInObject:      "object",
	BuiltInArray:       "array",
	BuiltInResourceRef: "resourceRef",
}

// String returns the lower-case name of the kind, or "unknown" for
// values outside the defined set.
func (k BuiltInKind) String() string {
	if s, ok := builtInNames[k]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether k is one of the defined built-in kinds.
func (k BuiltInKind) Valid() bool {
	_, ok := builtInNames[k]
	return ok
}

// PropertyFlags is a bitset of behavioral markers on an object property.
type PropertyFlags uint32

// PropertyNone is the default: no markers set.
const PropertyNone PropertyFlags = 0

const (
	// PropertyRequired marks a property that must be supplied.
	PropertyRequired PropertyFlags = 1 << iota
	// PropertyReadOnly marks a property that may only be read back.
	PropertyReadOnly
	// PropertyWriteOnly marks a property that is accepted but never echoed.
	PropertyWriteOnly
	// PropertyConstant marks a property that must be known up front and
	// cannot depend on late-bound values.
	PropertyConstant
)

var propertyFlagNames = []struct {
	flag PropertyFlags
	name string
}{
	{PropertyRequired, "required"},
	{PropertyReadOnly, "readOnly"},
	{PropertyWriteOnly, "writeOnly"},
	{PropertyConstant, "constant"},
}

// Has reports whether all bits in flag are set.
func (f PropertyFlags) Has(flag PropertyFlags) bool { return f&flag == flag }

// String returns a comma-separated list of set flag names, or "none".
func (f PropertyFlags) String() string {
	var parts []string
	for _, e := range propertyFlagNames {
		if f.Has(e.flag) {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ResourceFlags is a bitset of behavioral markers on a resource descriptor.
type ResourceFlags uint32

// ResourceNone is the default: no markers set.
const ResourceNone ResourceFlags = 0

// ResourceReadOnly marks a resource that can be referenced but not written.
const ResourceReadOnly ResourceFlags = 1

// Has reports whether all bits in flag are set.
func (f ResourceFlags) Has(flag ResourceFlags) bool { return f&flag == flag }

// String returns a comma-separated list of set flag names, or "none".
func (f ResourceFlags) String() string {
	if f.Has(ResourceReadOnly) {
		return "readOnly"
	}
	return "none"
}

// ScopeSet is a bitset of deployment scopes at which a resource may live.
type ScopeSet uint32

// ScopeNone is the empty scope set.
const ScopeNone ScopeSet = 0

const (
	// ScopeTenant covers the whole tenant.
	ScopeTenant ScopeSet = 1 << iota
	// ScopeOrganization covers an organization within a tenant.
	ScopeOrganization
	// ScopeProject covers a single project.
	ScopeProject
	// ScopeStack covers one deployment stack inside a project.
	ScopeStack
	// ScopeExtension covers resources attached to another resource.
	ScopeExtension
)

var scopeNames = []struct {
	scope ScopeSet
	name  string
}{
	{ScopeTenant, "tenant"},
	{ScopeOrganization, "organization"},
	{ScopeProject, "project"},
	{ScopeStack, "stack"},
	{ScopeExtension, "extension"},
}

// Has reports whether all scopes in s2 are present.
func (s ScopeSet) Has(s2 ScopeSet) bool { return s&s2 == s2 }

// String returns a comma-separated list of scope names, or "none".
func (s ScopeSet) String() string {
	var parts []string
	for _, e := range scopeNames {
		if s.Has(e.scope) {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
