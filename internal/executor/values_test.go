package executor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hanpama/gqlcore/internal/schema"
)

func TestValues_ArgumentCoercionAndDefaults(t *testing.T) {
	greet := schema.NewField("greet", "", schema.NamedType("String")).
		AddArgument(schema.NewInputValue("name", "", schema.NamedType("String")).SetDefault("world")).
		AddArgument(schema.NewInputValue("loud", "", schema.NamedType("Boolean"))).
		AddArgument(schema.NewInputValue("tag", "", schema.NamedType("String")).SetDefault(nil))
	sch := newSchemaWithQueryType(newObjectType("Query", greet))

	var gotArgs map[string]any
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.greet": func(ctx context.Context, src any, args map[string]any) (any, error) {
			gotArgs = args
			return "hi", nil
		},
	})
	exec := NewExecutor(rt, sch)

	t.Run("declared defaults apply", func(t *testing.T) {
		doc := mustParseQuery(t, "{ greet }")
		res := runToCompletion(t, exec, doc, "", nil, nil)
		if len(res.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		// "name" gets its declared default, "tag" its explicit null default.
		// "loud" declares no default and must stay absent.
		want := map[string]any{"name": "world", "tag": nil}
		if diff := cmp.Diff(want, gotArgs); diff != "" {
			t.Fatalf("args mismatch (-want +got):\n%s", diff)
		}
		if _, present := gotArgs["loud"]; present {
			t.Fatalf("argument without default leaked into args: %v", gotArgs)
		}
	})

	t.Run("provided values win", func(t *testing.T) {
		doc := mustParseQuery(t, `{ greet(name: "go", loud: true) }`)
		res := runToCompletion(t, exec, doc, "", nil, nil)
		if len(res.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		want := map[string]any{"name": "go", "loud": true, "tag": nil}
		if diff := cmp.Diff(want, gotArgs); diff != "" {
			t.Fatalf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("variables substitute", func(t *testing.T) {
		doc := mustParseQuery(t, `query ($n: String) { greet(name: $n) }`)
		res := runToCompletion(t, exec, doc, "", map[string]any{"n": "var"}, nil)
		if len(res.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		if gotArgs["name"] != "var" {
			t.Fatalf("expected variable substitution, got %v", gotArgs)
		}
	})
}

func TestValues_VariableCoercionErrors(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("a", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
	})
	exec := NewExecutor(rt, sch)

	t.Run("missing required variable", func(t *testing.T) {
		doc := mustParseQuery(t, "query ($x: String!) { a }")
		res, pending := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		if pending != nil {
			t.Fatalf("variable errors must fail synchronously")
		}
		if res.Data != nil || len(res.Errors) != 1 {
			t.Fatalf("expected data-less single-error result, got %+v", res)
		}
	})

	t.Run("null for non-null variable", func(t *testing.T) {
		doc := mustParseQuery(t, "query ($x: String!) { a }")
		res, _ := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"x": nil}, nil)
		if res == nil || len(res.Errors) != 1 {
			t.Fatalf("expected single-error result, got %+v", res)
		}
	})

	t.Run("default fills missing variable", func(t *testing.T) {
		doc := mustParseQuery(t, `query ($x: String = "d") { a }`)
		res := runToCompletion(t, exec, doc, "", nil, nil)
		if len(res.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
	})

	t.Run("int coercion", func(t *testing.T) {
		sch2 := newSchemaWithQueryType(newObjectType("Query",
			schema.NewField("n", "", schema.NamedType("Int")).
				AddArgument(schema.NewInputValue("v", "", schema.NamedType("Int"))),
		))
		var got map[string]any
		rt2 := NewMockRuntime(map[string]MockResolver{
			"Query.n": func(ctx context.Context, src any, args map[string]any) (any, error) {
				got = args
				return args["v"], nil
			},
		})
		exec2 := NewExecutor(rt2, sch2)
		doc := mustParseQuery(t, "query ($v: Int) { n(v: $v) }")
		// JSON-decoded numbers arrive as float64 and coerce to int.
		res := runToCompletion(t, exec2, doc, "", map[string]any{"v": float64(7)}, nil)
		if len(res.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		if got["v"] != 7 {
			t.Fatalf("expected int 7, got %v (%T)", got["v"], got["v"])
		}
	})
}
