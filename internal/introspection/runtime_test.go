package introspection

import (
	"context"
	"testing"

	"github.com/hanpama/gqlcore/internal/executor"
	"github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// noopRuntime implements executor.Runtime with no behaviour.
type noopRuntime struct{}

func (noopRuntime) IsAsyncField(string, string) bool { return false }

func (noopRuntime) ResolveSync(context.Context, string, string, any, map[string]any) (any, error) {
	return nil, nil
}

func (noopRuntime) BatchResolveAsync(context.Context, []executor.AsyncResolveTask) []executor.AsyncResolveResult {
	return nil
}

func (noopRuntime) ResolveType(context.Context, string, any) (string, error) {
	return "", nil
}

func (noopRuntime) SerializeLeafValue(_ context.Context, _ string, value any) (any, error) {
	return value, nil
}

func buildSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sdl := `
type Query {
  hello(name: String = "world"): String
  old: Int @deprecated
}
`
	sch, err := schema.BuildFromSDL("test", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return sch
}

func execute(t *testing.T, sch *schema.Schema, query string) map[string]any {
	t.Helper()
	wrapper := Wrap(noopRuntime{}, sch)
	exec := executor.NewExecutor(wrapper.Runtime, wrapper.Schema)
	doc, err := language.ParseQuery(query)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, pending := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
	if pending != nil {
		t.Fatalf("introspection must resolve synchronously")
	}
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	return res.Data.(map[string]any)
}

func TestIntrospectionEnabled(t *testing.T) {
	data := execute(t, buildSchema(t), "{__schema{queryType{name}}}")
	schData := data["__schema"].(map[string]any)
	qt := schData["queryType"].(map[string]any)
	if qt["name"].(string) != "Query" {
		t.Fatalf("queryType.name = %v", qt["name"])
	}
}

func TestTypenameField(t *testing.T) {
	sch := buildSchema(t)
	// __typename works without the introspection wrapper
	exec := executor.NewExecutor(noopRuntime{}, sch)
	doc, err := language.ParseQuery("{__typename}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, _ := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	data := res.Data.(map[string]any)
	if data["__typename"] != "Query" {
		t.Fatalf("expected __typename to be Query, got %v", data["__typename"])
	}
}

func TestTypeQueryFieldsAndDeprecation(t *testing.T) {
	data := execute(t, buildSchema(t), `{
		__type(name: "Query") {
			kind
			name
			fields { name }
			all: fields(includeDeprecated: true) { name isDeprecated deprecationReason }
		}
	}`)
	typ := data["__type"].(map[string]any)
	if typ["kind"] != "OBJECT" || typ["name"] != "Query" {
		t.Fatalf("unexpected type header: %v", typ)
	}
	fields := typ["fields"].([]any)
	if len(fields) != 1 {
		t.Fatalf("deprecated field leaked into default field list: %v", fields)
	}
	all := typ["all"].([]any)
	if len(all) != 2 {
		t.Fatalf("expected both fields with includeDeprecated: %v", all)
	}
	old := all[1].(map[string]any)
	if old["isDeprecated"] != true || old["deprecationReason"] == nil {
		t.Fatalf("deprecation not reported: %v", old)
	}
}

func TestInputValueDefaultRendersAsLiteral(t *testing.T) {
	data := execute(t, buildSchema(t), `{
		__type(name: "Query") {
			fields {
				args { name defaultValue }
			}
		}
	}`)
	typ := data["__type"].(map[string]any)
	fields := typ["fields"].([]any)
	args := fields[0].(map[string]any)["args"].([]any)
	arg := args[0].(map[string]any)
	if arg["name"] != "name" {
		t.Fatalf("unexpected arg: %v", arg)
	}
	if arg["defaultValue"] != `"world"` {
		t.Fatalf("defaultValue = %v, want quoted literal", arg["defaultValue"])
	}
}

func TestTypeRefUnwrapsThroughOfType(t *testing.T) {
	sdl := `
type Query {
  items: [String!]!
}
`
	sch, err := schema.BuildFromSDL("test", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	data := execute(t, sch, `{
		__type(name: "Query") {
			fields {
				type { kind ofType { kind ofType { kind name } } }
			}
		}
	}`)
	typ := data["__type"].(map[string]any)
	ref := typ["fields"].([]any)[0].(map[string]any)["type"].(map[string]any)
	if ref["kind"] != "NON_NULL" {
		t.Fatalf("outer kind = %v", ref["kind"])
	}
	list := ref["ofType"].(map[string]any)
	if list["kind"] != "LIST" {
		t.Fatalf("middle kind = %v", list["kind"])
	}
	inner := list["ofType"].(map[string]any)
	if inner["kind"] != "NON_NULL" {
		t.Fatalf("inner kind = %v", inner["kind"])
	}
}
