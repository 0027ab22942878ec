package schema

import "strings"

// DefaultDeprecationReason is the specification-defined reason attached when
// @deprecated is used without one. A reason equal to this text renders as a
// bare @deprecated.
const DefaultDeprecationReason = "No longer supported"

var stringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
}

var intType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
}

var floatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The `Float` scalar type represents signed double-precision fractional values.",
}

var booleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The `Boolean` scalar type represents `true` or `false`.",
}

var idType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
}

var includeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Arguments: []*InputValue{
		NewInputValue("if", "Included when true.", NonNullType(NamedType("Boolean"))),
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

var skipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Arguments: []*InputValue{
		NewInputValue("if", "Skipped when true.", NonNullType(NamedType("Boolean"))),
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

var deprecatedDirective = &Directive{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Arguments: []*InputValue{
		NewInputValue("reason",
			"Explains why this element was deprecated, usually also including a suggestion for how to access supported similar data. Formatted using the Markdown syntax, as specified by [CommonMark](https://commonmark.org/).",
			NamedType("String")).SetDefault(DefaultDeprecationReason),
	},
	Locations: []string{"FIELD_DEFINITION", "ENUM_VALUE"},
}

// IsSpecifiedScalarType reports whether name is one of the five builtin
// scalar types.
func IsSpecifiedScalarType(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

// IsSpecifiedDirective reports whether name is a specification-defined
// directive.
func IsSpecifiedDirective(name string) bool {
	switch name {
	case "include", "skip", "deprecated":
		return true
	}
	return false
}

// IsIntrospectionType reports whether name is a specification-defined
// introspection type.
func IsIntrospectionType(name string) bool { return strings.HasPrefix(name, "__") }
