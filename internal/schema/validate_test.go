package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func messagesOf(t *testing.T, s *Schema) []string {
	t.Helper()
	var out []string
	for _, err := range Validate(s) {
		out = append(out, err.Message)
	}
	return out
}

func TestValidateAcceptsCompleteSchema(t *testing.T) {
	s := mustBuild(t, `
type Query { node: Node }
interface Node { id: ID! }
type User implements Node { id: ID! }
union Thing = User
enum Role { ADMIN }
input Filter { term: String }
`)
	require.Empty(t, Validate(s))
}

func TestValidateRequiresQueryRoot(t *testing.T) {
	s := NewSchema("")
	require.Contains(t, messagesOf(t, s), "Query root type must be provided.")
}

func TestValidateUndefinedRoot(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	require.Contains(t, messagesOf(t, s), "Query root type Query is not defined.")
}

func TestValidateRootMustBeObject(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindEnum, "").AddEnumValue(NewEnumValue("A", "")))
	require.Contains(t, messagesOf(t, s),
		"Query root type must be OBJECT type but Query is ENUM.")
}

func TestValidateEmptyCompositeTypes(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindObject, ""))
	s.AddType(NewType("Role", TypeKindEnum, ""))
	s.AddType(NewType("Filter", TypeKindInputObject, ""))
	s.AddType(NewType("Thing", TypeKindUnion, ""))

	msgs := messagesOf(t, s)
	require.Contains(t, msgs, "Type Query must define one or more fields.")
	require.Contains(t, msgs, "Enum type Role must define one or more values.")
	require.Contains(t, msgs, "Input Object type Filter must define one or more fields.")
	require.Contains(t, msgs, "Union type Thing must define one or more member types.")
}

func TestValidateUnknownTypeReferences(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindObject, "").
		AddField(NewField("a", "", NamedType("Missing")).
			AddArgument(NewInputValue("arg", "", NamedType("AlsoMissing")))))

	msgs := messagesOf(t, s)
	require.Contains(t, msgs, "Unknown type Missing referenced by field Query.a.")
	require.Contains(t, msgs, "Unknown type AlsoMissing referenced by argument arg of Query.a.")
}

func TestValidateUnionMembersMustBeObjects(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindObject, "").
		AddField(NewField("it", "", NamedType("Thing"))))
	s.AddType(NewType("Thing", TypeKindUnion, "").AddPossibleType("String"))

	require.Contains(t, messagesOf(t, s),
		"Member of union Thing type must be OBJECT type but String is SCALAR.")
}

func TestValidateInterfaceMembership(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindObject, "").
		AddField(NewField("ping", "", NamedType("Boolean"))).
		AddInterface("NotAnInterface"))
	s.AddType(NewType("NotAnInterface", TypeKindObject, "").
		AddField(NewField("x", "", NamedType("Int"))))

	require.Contains(t, messagesOf(t, s),
		"Interface of Query type must be INTERFACE type but NotAnInterface is OBJECT.")
}

func TestValidateDirectiveArguments(t *testing.T) {
	s := NewSchema("").SetQueryType("Query")
	s.AddType(NewType("Query", TypeKindObject, "").
		AddField(NewField("ping", "", NamedType("Boolean"))))
	s.AddDirective(NewDirective("tag", "").
		AddArgument(NewInputValue("name", "", NamedType("Missing"))).
		AddLocations("FIELD_DEFINITION"))

	require.Contains(t, messagesOf(t, s),
		"Unknown type Missing referenced by argument name of directive @tag.")
}

func TestValidateCollectsAllDefects(t *testing.T) {
	s := NewSchema("")
	s.AddType(NewType("Empty", TypeKindObject, ""))

	msgs := messagesOf(t, s)
	require.GreaterOrEqual(t, len(msgs), 2)
}
