package executor

import (
	"context"

	"github.com/hanpama/gqlcore/internal/language"
)

// Pending is the handle for an execution that could not complete
// synchronously because at least one involved field resolver is
// asynchronous. Exactly one of {immediate result, Pending} is returned by
// ExecuteRequest, making the sync/async duality explicit to callers.
type Pending struct {
	done   chan *ExecutionResult
	cancel context.CancelFunc
}

// Await blocks until the execution completes and returns its result. If ctx
// expires first the pending work is cancelled and the context error is
// returned as the result's only error.
func (p *Pending) Await(ctx context.Context) *ExecutionResult {
	select {
	case res := <-p.done:
		return res
	case <-ctx.Done():
		p.cancel()
		return ErrorResult(language.WrapError(ctx.Err()))
	}
}

// Cancel abandons the pending execution. It is best-effort and
// fire-and-forget: the underlying resolvers observe context cancellation,
// but no guarantee is made that work stops, only that the result is
// discarded.
func (p *Pending) Cancel() { p.cancel() }
