// Package graphql wires schema validation, query parsing, document
// validation, and execution into a single request pipeline. Each phase
// short-circuits: a failing phase returns its errors as the final result and
// no later phase runs.
package graphql

import (
	"context"

	"github.com/hanpama/gqlcore/internal/executor"
	"github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/render"
	"github.com/hanpama/gqlcore/internal/schema"
)

// Params carries one GraphQL request through the pipeline.
type Params struct {
	// Schema is the type system the request executes against.
	Schema *schema.Schema
	// Runtime provides field resolution, abstract-type resolution, and leaf
	// serialization.
	Runtime executor.Runtime
	// Source is the GraphQL request document text.
	Source string
	// OperationName selects the operation when Source defines several.
	OperationName string
	// VariableValues are the raw, JSON-decoded request variables.
	VariableValues map[string]any
	// RootValue is the source value for root fields.
	RootValue any
}

// Perform runs the pipeline and exposes the sync/async duality directly:
// exactly one of the immediate result or the pending handle is non-nil.
// Every failure before execution yields an immediate result.
func Perform(ctx context.Context, p Params) (*executor.ExecutionResult, *executor.Pending) {
	// Phase 1: the schema must be internally valid before anything else.
	if errs := schema.Validate(p.Schema); len(errs) > 0 {
		return executor.ErrorResult(errs...), nil
	}
	astSchema, err := sourceSchema(p.Schema)
	if err != nil {
		return executor.ErrorResult(language.WrapError(err)), nil
	}

	// Phase 2: parse. Parser errors pass through unchanged; anything else is
	// wrapped so the original error stays reachable.
	document, err := language.ParseQuery(p.Source)
	if err != nil {
		return executor.ErrorResult(language.WrapError(err)), nil
	}

	// Phase 3: validate the document against the schema.
	if errs := language.Validate(astSchema, document); len(errs) > 0 {
		return executor.ErrorResult(errs...), nil
	}

	// Phase 4: execute.
	exec := executor.NewExecutor(p.Runtime, p.Schema)
	return exec.ExecuteRequest(ctx, document, p.OperationName, p.VariableValues, p.RootValue)
}

// Do runs the pipeline and awaits asynchronous completion when needed.
func Do(ctx context.Context, p Params) *executor.ExecutionResult {
	res, pending := Perform(ctx, p)
	if pending != nil {
		return pending.Await(ctx)
	}
	return res
}

// DoSync runs the pipeline under the guarantee that no asynchronous resolver
// participates. If execution returns a pending handle anyway, the pending
// work is cancelled and DoSync panics: a caller choosing the synchronous
// entry point against async resolvers is a programming error, not a request
// error.
func DoSync(ctx context.Context, p Params) *executor.ExecutionResult {
	res, pending := Perform(ctx, p)
	if pending != nil {
		pending.Cancel()
		panic("graphql: execution failed to complete synchronously")
	}
	return res
}

// sourceSchema returns the parser-side schema used for document validation.
// Schemas built from SDL carry it already; hand-built schemas derive it by
// rendering themselves back to SDL and loading that.
func sourceSchema(s *schema.Schema) (*language.ASTSchema, error) {
	if src := s.Source(); src != nil {
		return src, nil
	}
	return language.LoadSchema("schema", render.Schema(s))
}
