package language

import "github.com/vektah/gqlparser/v2/gqlerror"

// Error is the structured GraphQL error carried through every phase of the
// request pipeline and serialized into responses.
type Error = gqlerror.Error

// ErrorList is an ordered sequence of structured errors.
type ErrorList = gqlerror.List

// WrapError folds an arbitrary failure into a structured error, preserving
// the original for diagnostics. A structured error passes through unchanged.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}
	if gqlErr, ok := err.(*Error); ok {
		return gqlErr
	}
	return &Error{Err: err, Message: err.Error()}
}
