package symgraph

// Kind is the closed, string-backed enumeration of declaration and
// reference kinds understood by the analyzer. It round-trips to/from
// an IndexProvider's string form through an explicit mapping table —
// never by reflection or prefix inspection.
type Kind string

const (
	KindUnknown Kind = ""

	// Type kinds
	KindClass              Kind = "class"
	KindStruct             Kind = "struct"
	KindEnum               Kind = "enum"
	KindProtocol           Kind = "protocol"
	KindTypealias          Kind = "typealias"
	KindAssociatedtype     Kind = "associatedtype"
	KindEnumElement        Kind = "enumelement"
	KindGenericTypeParam   Kind = "genericTypeParam"
	KindModule             Kind = "module"
	KindPrecedenceGroup    Kind = "precedenceGroup"

	// Extension kinds
	KindExtension          Kind = "extension"
	KindExtensionClass     Kind = "extension.class"
	KindExtensionStruct    Kind = "extension.struct"
	KindExtensionEnum      Kind = "extension.enum"
	KindExtensionProtocol  Kind = "extension.protocol"

	// Function kinds
	KindFunctionFree              Kind = "function.free"
	KindFunctionMethodInstance    Kind = "function.method.instance"
	KindFunctionMethodClass       Kind = "function.method.class"
	KindFunctionMethodStatic      Kind = "function.method.static"
	KindFunctionConstructor       Kind = "function.constructor"
	KindFunctionDestructor        Kind = "function.destructor"
	KindFunctionSubscript         Kind = "function.subscript"
	KindFunctionOperator          Kind = "function.operator"
	KindFunctionOperatorInfix     Kind = "function.operator.infix"
	KindFunctionOperatorPrefix    Kind = "function.operator.prefix"
	KindFunctionOperatorPostfix   Kind = "function.operator.postfix"
	KindFunctionAccessorGetter    Kind = "function.accessor.getter"
	KindFunctionAccessorSetter    Kind = "function.accessor.setter"
	KindFunctionAccessorWillSet   Kind = "function.accessor.willset"
	KindFunctionAccessorDidSet    Kind = "function.accessor.didset"
	KindFunctionAccessorAddress   Kind = "function.accessor.address"
	KindFunctionAccessorMutableAddress Kind = "function.accessor.mutableaddress"

	// Variable kinds
	KindVarInstance  Kind = "var.instance"
	KindVarClass     Kind = "var.class"
	KindVarStatic    Kind = "var.static"
	KindVarGlobal    Kind = "var.global"
	KindVarLocal     Kind = "var.local"
	KindVarParameter Kind = "var.parameter"
)

// classification tables — explicit, never derived from string prefixes
// (spec.md §9, Design Notes: "Kind enumeration with string backing").
var functionKinds = map[Kind]bool{
	KindFunctionFree:                   true,
	KindFunctionMethodInstance:         true,
	KindFunctionMethodClass:            true,
	KindFunctionMethodStatic:           true,
	KindFunctionConstructor:            true,
	KindFunctionDestructor:             true,
	KindFunctionSubscript:              true,
	KindFunctionOperator:               true,
	KindFunctionOperatorInfix:          true,
	KindFunctionOperatorPrefix:         true,
	KindFunctionOperatorPostfix:        true,
	KindFunctionAccessorGetter:         true,
	KindFunctionAccessorSetter:         true,
	KindFunctionAccessorWillSet:        true,
	KindFunctionAccessorDidSet:         true,
	KindFunctionAccessorAddress:        true,
	KindFunctionAccessorMutableAddress: true,
}

var variableKinds = map[Kind]bool{
	KindVarInstance:  true,
	KindVarClass:     true,
	KindVarStatic:    true,
	KindVarGlobal:    true,
	KindVarLocal:     true,
	KindVarParameter: true,
}

var extensionKinds = map[Kind]bool{
	KindExtension:         true,
	KindExtensionClass:    true,
	KindExtensionStruct:   true,
	KindExtensionEnum:     true,
	KindExtensionProtocol: true,
}

var accessorKinds = map[Kind]bool{
	KindFunctionAccessorGetter:         true,
	KindFunctionAccessorSetter:         true,
	KindFunctionAccessorWillSet:        true,
	KindFunctionAccessorDidSet:         true,
	KindFunctionAccessorAddress:        true,
	KindFunctionAccessorMutableAddress: true,
}

var typeKinds = map[Kind]bool{
	KindClass:            true,
	KindStruct:           true,
	KindEnum:             true,
	KindProtocol:         true,
	KindTypealias:        true,
	KindAssociatedtype:   true,
	KindEnumElement:      true,
	KindGenericTypeParam: true,
	KindModule:           true,
	KindPrecedenceGroup:  true,
}

// IsFunction reports whether k classifies as a function-shaped declaration.
func (k Kind) IsFunction() bool { return functionKinds[k] }

// IsVariable reports whether k classifies as a variable-shaped declaration.
func (k Kind) IsVariable() bool { return variableKinds[k] }

// IsExtension reports whether k classifies as an extension.
func (k Kind) IsExtension() bool { return extensionKinds[k] }

// IsAccessor reports whether k classifies as a property accessor.
func (k Kind) IsAccessor() bool { return accessorKinds[k] }

// IsType reports whether k classifies as a type-shaped declaration.
func (k Kind) IsType() bool { return typeKinds[k] }

// ReferenceEquivalent returns the Reference Kind equivalent to this
// Declaration Kind. Per spec.md §3, every Kind has an identical-string
// reference equivalent, so this returns k unchanged; the method keeps
// the mapping explicit at every call site.
func (k Kind) ReferenceEquivalent() Kind { return k }

// valid is the full set of recognized Kind strings, used to validate
// records arriving from an IndexProvider.
var valid = func() map[Kind]bool {
	m := make(map[Kind]bool, len(typeKinds)+len(extensionKinds)+len(functionKinds)+len(variableKinds))
	for k := range typeKinds {
		m[k] = true
	}
	for k := range extensionKinds {
		m[k] = true
	}
	for k := range functionKinds {
		m[k] = true
	}
	for k := range variableKinds {
		m[k] = true
	}
	return m
}()

// Valid reports whether k is one of the closed enumeration's members.
func (k Kind) Valid() bool { return valid[k] }

// ParseKind parses an IndexProvider's string form into a Kind,
// reporting whether it was recognized.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, valid[k]
}
