package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/hanpama/gqlcore/internal/schema"
)

// blockingResolver parks until the execution context is cancelled.
func blockingResolver(ctx context.Context, src any, args map[string]any) (any, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestContext_CancelPendingExecution(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("slow", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.slow": blockingResolver,
	})
	rt.SetAsyncField("Query", "slow", true)
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, "{ slow }")

	res, pending := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
	if res != nil || pending == nil {
		t.Fatalf("expected pending execution")
	}

	pending.Cancel()
	final := pending.Await(context.Background())
	if len(final.Errors) == 0 {
		t.Fatalf("expected cancellation error")
	}
	if !strings.Contains(final.Errors[0].Message, "context canceled") {
		t.Fatalf("unexpected error: %v", final.Errors[0])
	}
}

func TestContext_AwaitHonorsCallerContext(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("slow", "", schema.NamedType("String")),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.slow": blockingResolver,
	})
	rt.SetAsyncField("Query", "slow", true)
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, "{ slow }")

	_, pending := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	awaitCtx, cancel := context.WithCancel(context.Background())
	cancel()
	final := pending.Await(awaitCtx)
	if final.Data != nil {
		t.Fatalf("expected data-less result on expired context")
	}
	if len(final.Errors) != 1 || !strings.Contains(final.Errors[0].Message, "context canceled") {
		t.Fatalf("unexpected errors: %v", final.Errors)
	}
}
