package executor

import (
	"context"
	"fmt"
)

// MapRuntime is an all-synchronous Runtime that reads field values out of
// map[string]any sources. It serves hand-built schemas backed by plain data,
// such as a JSON document loaded at startup.
type MapRuntime struct {
	// Root is the source value for root fields when the request provides no
	// root value of its own.
	Root map[string]any
}

func NewMapRuntime(root map[string]any) *MapRuntime {
	return &MapRuntime{Root: root}
}

// IsAsyncField always reports false; every field resolves in place.
func (r *MapRuntime) IsAsyncField(objectType, field string) bool { return false }

// ResolveSync looks the field up by name in the source map. A nil source
// falls back to the configured root map.
func (r *MapRuntime) ResolveSync(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	if source == nil {
		source = r.Root
	}
	m, ok := source.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot resolve field %q on %T source", field, source)
	}
	return m[field], nil
}

// BatchResolveAsync is never reached because IsAsyncField is always false.
// It still satisfies the contract by resolving each task through ResolveSync.
func (r *MapRuntime) BatchResolveAsync(ctx context.Context, tasks []AsyncResolveTask) []AsyncResolveResult {
	results := make([]AsyncResolveResult, len(tasks))
	for i, t := range tasks {
		v, err := r.ResolveSync(ctx, t.ObjectType, t.Field, t.Source, t.Args)
		results[i] = AsyncResolveResult{Value: v, Error: err}
	}
	return results
}

// ResolveType reads the conventional __typename key from map values.
func (r *MapRuntime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if m, ok := value.(map[string]any); ok {
		if typename, ok := m["__typename"].(string); ok {
			return typename, nil
		}
	}
	return "", fmt.Errorf("cannot resolve concrete type for value of abstract type %s", abstractType)
}

// SerializeLeafValue passes leaf values through unchanged; map-backed data is
// assumed to already be JSON-safe.
func (r *MapRuntime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	return value, nil
}
