// Package executor implements a breadth-first, batch-friendly GraphQL executor
// with explicit runtime hooks for synchronous resolution, depth-wise batching of
// asynchronous work, abstract-type resolution, and leaf serialization.
//
// # Overview
//
// The executor follows a level-by-level execution model designed to:
//   - Expand synchronous fields immediately without adding batch depth.
//   - Collect asynchronous fields encountered at the current depth and
//     resolve them in a single call to Runtime.BatchResolveAsync.
//   - Complete values per the usual GraphQL rules (lists, leafs, objects,
//     abstract types), including Non-Null null propagation.
//   - Accumulate located errors while allowing partial success.
//
// Whether a field is synchronous or asynchronous is a property of its
// resolver, not of the schema, so the executor asks Runtime.IsAsyncField
// before resolving each field.
//
// # Sync/Async Duality
//
// ExecuteRequest returns exactly one of an immediate *ExecutionResult or a
// *Pending handle. When every reached field resolves synchronously the full
// result is available on return and no goroutine is spawned. When at least
// one async field participates, the depth-wise batch loop continues on a
// background goroutine and the caller awaits or cancels the Pending handle.
//
// # Execution Loop
//
// Each depth proceeds in three steps:
//
//	A. Sync expansion: sync fields resolve via Runtime.ResolveSync and their
//	   object results keep expanding downward immediately. Async fields are
//	   queued as AsyncResolveTasks without executing.
//	B. Batch execution: all tasks queued at this depth go to
//	   Runtime.BatchResolveAsync in one ordered call, after dropping tasks
//	   under paths already nullified by Non-Null propagation.
//	C. Completion: each batch result runs value completion; object results
//	   queue their async subfields for the next depth.
//
// A purely synchronous descent never increments batch depth, so a request
// whose async fields reach depth d calls BatchResolveAsync exactly d times.
//
// # Errors and Partial Success
//
// Errors become located GraphQL errors (message + response path). A null or
// error at a Non-Null field propagates null to the nearest nullable ancestor
// and prunes any queued work beneath it; elsewhere the field becomes null and
// execution continues. Batch elements fail independently.
package executor
