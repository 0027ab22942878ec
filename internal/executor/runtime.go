package executor

import (
	"context"
)

// Runtime is the host integration surface for field resolution, batching,
// abstract-type resolution, and leaf-value serialization.
//
// Contract:
//   - The Executor performs breadth-first execution. At each depth it drains
//     all synchronous fields first via ResolveSync, then calls
//     BatchResolveAsync once with every async task collected at that depth.
//   - Whether a field is synchronous or asynchronous is a property of its
//     resolver, so the Executor asks IsAsyncField before resolving.
//     ResolveSync is never invoked for async fields, and BatchResolveAsync
//     is only invoked when at least one async field exists at the depth.
//   - Errors returned from any method become located GraphQL errors; a
//     Non-Null field propagates the resulting null to the nearest nullable
//     ancestor.
//   - BatchResolveAsync must return one result per task, in task order.
//     Failures are per element; the batch as a whole never fails.
//   - Implementations must be safe for concurrent use and must not mutate
//     source or args values. Cancellation is conveyed through ctx only.
type Runtime interface {
	// IsAsyncField reports whether resolving objectType.field requires
	// asynchronous work.
	IsAsyncField(objectType, field string) bool

	// ResolveSync resolves a synchronous field value immediately.
	// Returning (nil, nil) produces a GraphQL null for nullable fields.
	ResolveSync(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error)

	// BatchResolveAsync resolves one execution depth of async field tasks.
	// len(results) must equal len(tasks) and results[i] corresponds to
	// tasks[i].
	BatchResolveAsync(ctx context.Context, tasks []AsyncResolveTask) []AsyncResolveResult

	// ResolveType determines the concrete object type name for a value of
	// an abstract (interface or union) type.
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value. For enums, return the symbolic name as a string.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}

// AsyncResolveTask is one async field resolution collected at the current
// execution depth.
type AsyncResolveTask struct {
	// ObjectType is the parent GraphQL object type name for the field.
	ObjectType string
	// Field is the GraphQL field name to resolve.
	Field string
	// Source is the parent object value (nil for root fields).
	Source any
	// Args are the field arguments, coerced to Go values per the schema.
	Args map[string]any
}

// AsyncResolveResult is the outcome of one AsyncResolveTask.
type AsyncResolveResult struct {
	// Value is the resolved raw value prior to completion, or nil on error.
	Value any
	// Error is specific to this element; other elements in the same batch
	// are unaffected.
	Error error
}
