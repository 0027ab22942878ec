package introspection

import (
	"github.com/hanpama/gqlcore/internal/schema"
)

// Extend returns a copy of the schema with the introspection types added and
// the __schema/__type entry points appended to the query root. The original
// schema is not modified.
func Extend(original *schema.Schema) *schema.Schema {
	extended := &schema.Schema{
		QueryType:        original.QueryType,
		MutationType:     original.MutationType,
		SubscriptionType: original.SubscriptionType,
		Types:            make(map[string]*schema.Type),
		Directives:       original.Directives,
		Description:      original.Description,
	}

	for name, typ := range original.Types {
		extended.Types[name] = typ
	}

	addIntrospectionTypes(extended)

	if queryType := extended.GetQueryType(); queryType != nil {
		queryTypeCopy := &schema.Type{
			Name:        queryType.Name,
			Kind:        queryType.Kind,
			Description: queryType.Description,
			Fields:      make([]*schema.Field, len(queryType.Fields)),
			Interfaces:  queryType.Interfaces,
		}
		copy(queryTypeCopy.Fields, queryType.Fields)

		queryTypeCopy.Fields = append(queryTypeCopy.Fields,
			schema.NewField("__schema",
				"Access the current type schema of this server.",
				schema.NonNullType(schema.NamedType("__Schema"))),
			schema.NewField("__type",
				"Request the type information of a single type.",
				schema.NamedType("__Type")).
				AddArgument(schema.NewInputValue("name",
					"The name of the type to look up.",
					schema.NonNullType(schema.NamedType("String")))),
		)

		extended.Types[queryType.Name] = queryTypeCopy
	}

	return extended
}

func addIntrospectionTypes(sch *schema.Schema) {
	sch.Types["__Schema"] = schemaType()
	sch.Types["__Type"] = typeType()
	sch.Types["__Field"] = fieldType()
	sch.Types["__InputValue"] = inputValueType()
	sch.Types["__EnumValue"] = enumValueType()
	sch.Types["__Directive"] = directiveType()
	sch.Types["__TypeKind"] = typeKindEnum()
	sch.Types["__DirectiveLocation"] = directiveLocationEnum()
}

func schemaType() *schema.Type {
	return schema.NewType("__Schema", schema.TypeKindObject,
		"A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all available types and directives on the server, as well as the entry points for query, mutation, and subscription operations.").
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("types",
			"A list of all types supported by this server.",
			schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Type")))))).
		AddField(schema.NewField("queryType",
			"The type that query operations will be rooted at.",
			schema.NonNullType(schema.NamedType("__Type")))).
		AddField(schema.NewField("mutationType",
			"If this server supports mutation, the type that mutation operations will be rooted at.",
			schema.NamedType("__Type"))).
		AddField(schema.NewField("subscriptionType",
			"If this server support subscription, the type that subscription operations will be rooted at.",
			schema.NamedType("__Type"))).
		AddField(schema.NewField("directives",
			"A list of all directives supported by this server.",
			schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Directive"))))))
}

func typeType() *schema.Type {
	return schema.NewType("__Type", schema.TypeKindObject,
		"The fundamental unit of any GraphQL Schema is the type. There are many kinds of types in GraphQL as represented by the `__TypeKind` enum.").
		AddField(schema.NewField("kind", "", schema.NonNullType(schema.NamedType("__TypeKind")))).
		AddField(schema.NewField("name", "", schema.NamedType("String"))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("specifiedByURL", "", schema.NamedType("String"))).
		AddField(schema.NewField("fields", "", schema.ListType(schema.NonNullType(schema.NamedType("__Field")))).
			AddArgument(schema.NewInputValue("includeDeprecated", "", schema.NamedType("Boolean")).SetDefault(false))).
		AddField(schema.NewField("interfaces", "", schema.ListType(schema.NonNullType(schema.NamedType("__Type"))))).
		AddField(schema.NewField("possibleTypes", "", schema.ListType(schema.NonNullType(schema.NamedType("__Type"))))).
		AddField(schema.NewField("enumValues", "", schema.ListType(schema.NonNullType(schema.NamedType("__EnumValue")))).
			AddArgument(schema.NewInputValue("includeDeprecated", "", schema.NamedType("Boolean")).SetDefault(false))).
		AddField(schema.NewField("inputFields", "", schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))).
		AddField(schema.NewField("ofType", "", schema.NamedType("__Type"))).
		AddField(schema.NewField("isOneOf", "", schema.NamedType("Boolean")))
}

func fieldType() *schema.Type {
	return schema.NewType("__Field", schema.TypeKindObject,
		"Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("args", "", schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue")))))).
		AddField(schema.NewField("type", "", schema.NonNullType(schema.NamedType("__Type")))).
		AddField(schema.NewField("isDeprecated", "", schema.NonNullType(schema.NamedType("Boolean")))).
		AddField(schema.NewField("deprecationReason", "", schema.NamedType("String")))
}

func inputValueType() *schema.Type {
	return schema.NewType("__InputValue", schema.TypeKindObject,
		"Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("type", "", schema.NonNullType(schema.NamedType("__Type")))).
		AddField(schema.NewField("defaultValue",
			"A GraphQL-formatted string representing the default value for this input value.",
			schema.NamedType("String")))
}

func enumValueType() *schema.Type {
	return schema.NewType("__EnumValue", schema.TypeKindObject,
		"One possible value for a given Enum. Enum values are unique values, not a placeholder for a string or numeric value. However an Enum value is returned in a JSON response as a string.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("isDeprecated", "", schema.NonNullType(schema.NamedType("Boolean")))).
		AddField(schema.NewField("deprecationReason", "", schema.NamedType("String")))
}

func directiveType() *schema.Type {
	return schema.NewType("__Directive", schema.TypeKindObject,
		"A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("isRepeatable", "", schema.NonNullType(schema.NamedType("Boolean")))).
		AddField(schema.NewField("locations", "", schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__DirectiveLocation")))))).
		AddField(schema.NewField("args", "", schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))))
}

func typeKindEnum() *schema.Type {
	t := schema.NewType("__TypeKind", schema.TypeKindEnum,
		"An enum describing what kind of type a given `__Type` is.")
	for _, name := range []string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"} {
		t.AddEnumValue(schema.NewEnumValue(name, ""))
	}
	return t
}

func directiveLocationEnum() *schema.Type {
	t := schema.NewType("__DirectiveLocation", schema.TypeKindEnum,
		"A Directive can be adjacent to many parts of the GraphQL language, a __DirectiveLocation describes one such possible adjacencies.")
	for _, name := range []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD",
		"FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT",
		"VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT",
		"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INTERFACE", "UNION",
		"ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	} {
		t.AddEnumValue(schema.NewEnumValue(name, ""))
	}
	return t
}
