package graphql_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlcore/internal/executor"
	"github.com/hanpama/gqlcore/internal/graphql"
	"github.com/hanpama/gqlcore/internal/schema"
)

const testSDL = `
type Query {
  hello: String
  answer: Int!
}
`

func buildTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL("test", testSDL)
	require.NoError(t, err)
	return s
}

func newTestRuntime() *executor.MockRuntime {
	return executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.hello":  executor.NewMockValueResolver("world"),
		"Query.answer": executor.NewMockValueResolver(42),
	})
}

func TestDo_HappyPath(t *testing.T) {
	rt := newTestRuntime()
	res := graphql.Do(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ hello answer }",
	})
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"hello": "world", "answer": 42}, res.Data)
}

func TestDo_InvalidSchemaShortCircuits(t *testing.T) {
	// A schema without a query root fails phase 1; the runtime is never
	// consulted even though the source is unparseable too.
	rt := newTestRuntime()
	broken := schema.NewSchema("")
	res := graphql.Do(context.Background(), graphql.Params{
		Schema:  broken,
		Runtime: rt,
		Source:  "{{{ not a query",
	})
	require.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	require.Contains(t, res.Errors[0].Message, "Query root")
	require.Empty(t, rt.GetCalls())
}

func TestDo_ParseErrorShortCircuits(t *testing.T) {
	rt := newTestRuntime()
	res := graphql.Do(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ hello",
	})
	require.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	require.Empty(t, rt.GetCalls())
}

func TestDo_ValidationErrorShortCircuits(t *testing.T) {
	rt := newTestRuntime()
	res := graphql.Do(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ nope }",
	})
	require.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	require.True(t, strings.Contains(res.Errors[0].Message, "nope"))
	require.Empty(t, rt.GetCalls())
}

func TestDo_HandBuiltSchemaValidatesDocuments(t *testing.T) {
	// A schema assembled in code has no parser-side source; the pipeline
	// derives one by rendering the schema back to SDL.
	s := schema.NewSchema("").SetQueryType("Query").AddType(
		schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hello", "", schema.NamedType("String"))),
	)
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.hello": executor.NewMockValueResolver("world"),
	})

	res := graphql.Do(context.Background(), graphql.Params{
		Schema: s, Runtime: rt, Source: "{ hello }",
	})
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"hello": "world"}, res.Data)

	res = graphql.Do(context.Background(), graphql.Params{
		Schema: s, Runtime: rt, Source: "{ nope }",
	})
	require.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
}

func TestDo_AwaitsAsyncResolvers(t *testing.T) {
	rt := newTestRuntime()
	rt.SetAsyncField("Query", "hello", true)
	res := graphql.Do(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ hello }",
	})
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"hello": "world"}, res.Data)
}

func TestDoSync_CompletesForSyncResolvers(t *testing.T) {
	rt := newTestRuntime()
	res := graphql.DoSync(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ answer }",
	})
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"answer": 42}, res.Data)
}

func TestDoSync_PanicsOnAsyncResolver(t *testing.T) {
	rt := newTestRuntime()
	rt.SetAsyncField("Query", "answer", true)
	require.PanicsWithValue(t, "graphql: execution failed to complete synchronously", func() {
		graphql.DoSync(context.Background(), graphql.Params{
			Schema:  buildTestSchema(t),
			Runtime: rt,
			Source:  "{ answer }",
		})
	})
}

func TestPerform_DualityIsExclusive(t *testing.T) {
	rt := newTestRuntime()
	res, pending := graphql.Perform(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ hello }",
	})
	require.NotNil(t, res)
	require.Nil(t, pending)

	rt.SetAsyncField("Query", "hello", true)
	res, pending = graphql.Perform(context.Background(), graphql.Params{
		Schema:  buildTestSchema(t),
		Runtime: rt,
		Source:  "{ hello }",
	})
	require.Nil(t, res)
	require.NotNil(t, pending)
	final := pending.Await(context.Background())
	require.Equal(t, map[string]any{"hello": "world"}, final.Data)
}
