package executor

import "github.com/hanpama/gqlcore/internal/language"

// ExecutionResult is the uniform outcome of a request: an optional data
// payload plus an ordered sequence of structured errors. It is created
// fresh per invocation and never mutated after being returned.
type ExecutionResult struct {
	Data   any                `json:"data"`
	Errors language.ErrorList `json:"errors,omitempty"`
}

// ErrorResult builds a data-less result from the given errors.
func ErrorResult(errs ...*language.Error) *ExecutionResult {
	return &ExecutionResult{Data: nil, Errors: language.ErrorList(errs)}
}
