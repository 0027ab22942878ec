package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hanpama/gqlcore/internal/schema"
)

// Response keys must follow query order, including aliases and fragments.
func TestOrdering_FieldOrderAndAliases(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("a", "", schema.NamedType("String")),
		schema.NewField("b", "", schema.NamedType("String")),
		schema.NewField("c", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
		"Query.c": NewMockValueResolver("C"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, "{ c first: a b second: a }")

	gotRes := runToCompletion(t, exec, doc, "", nil, nil)
	if len(gotRes.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", gotRes.Errors)
	}

	want := map[string]any{"c": "C", "first": "A", "b": "B", "second": "A"}
	if diff := cmp.Diff(want, gotRes.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	// Resolution order follows collection order.
	var fieldOrder []string
	for _, c := range rt.GetCalls() {
		fieldOrder = append(fieldOrder, c.Field)
	}
	if diff := cmp.Diff([]string{"c", "a", "b", "a"}, fieldOrder); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdering_FragmentsAndTypename(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("a", "", schema.NamedType("String")),
		schema.NewField("b", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `
		query {
			__typename
			...F
			b
		}
		fragment F on Query { a }
	`)

	gotRes := runToCompletion(t, exec, doc, "", nil, nil)
	if len(gotRes.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", gotRes.Errors)
	}
	want := map[string]any{"__typename": "Query", "a": "A", "b": "B"}
	if diff := cmp.Diff(want, gotRes.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdering_SkipIncludeDirectives(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("a", "", schema.NamedType("String")),
		schema.NewField("b", "", schema.NamedType("String")),
		schema.NewField("c", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
		"Query.c": NewMockValueResolver("C"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `
		query ($skipA: Boolean!, $incB: Boolean!) {
			a @skip(if: $skipA)
			b @include(if: $incB)
			c
		}
	`)

	gotRes := runToCompletion(t, exec, doc, "", map[string]any{"skipA": true, "incB": false}, nil)
	if len(gotRes.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", gotRes.Errors)
	}
	want := map[string]any{"c": "C"}
	if diff := cmp.Diff(want, gotRes.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

// Inline fragments on interfaces and unions apply by implementation and
// membership, not only by exact name.
func TestOrdering_AbstractFragmentApplication(t *testing.T) {
	node := schema.NewType("Node", schema.TypeKindInterface, "").
		AddField(schema.NewField("id", "", schema.NamedType("ID")))
	node.AddPossibleType("User")
	user := newObjectType("User",
		schema.NewField("id", "", schema.NamedType("ID")),
		schema.NewField("name", "", schema.NamedType("String")),
	).AddInterface("Node")

	sch := newSchemaWithQueryType(
		newObjectType("Query", schema.NewField("node", "", schema.NamedType("Node"))),
		node, user,
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.node": NewMockValueResolver(map[string]any{"__typename": "User"}),
		"User.id":    NewMockValueResolver("u1"),
		"User.name":  NewMockValueResolver("Ada"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `
		{
			node {
				... on Node { id }
				... on User { name }
			}
		}
	`)

	gotRes := runToCompletion(t, exec, doc, "", nil, nil)
	if len(gotRes.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", gotRes.Errors)
	}
	want := map[string]any{"node": map[string]any{"id": "u1", "name": "Ada"}}
	if diff := cmp.Diff(want, gotRes.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
