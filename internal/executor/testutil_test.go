package executor

import (
	"context"
	"testing"

	"github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// runToCompletion executes the request and awaits the pending handle when the
// execution could not complete synchronously.
func runToCompletion(t *testing.T, exec *Executor, doc *language.QueryDocument, operationName string, vars map[string]any, root any) *ExecutionResult {
	t.Helper()
	res, pending := exec.ExecuteRequest(context.Background(), doc, operationName, vars, root)
	if pending != nil {
		if res != nil {
			t.Fatalf("ExecuteRequest returned both a result and a pending handle")
		}
		return pending.Await(context.Background())
	}
	return res
}

func newSchemaWithQueryType(query *schema.Type, additional ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	if query != nil {
		sch.SetQueryType(query.Name)
		sch.AddType(query)
	}
	for _, t := range additional {
		sch.AddType(t)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		t.AddField(field)
	}
	return t
}
