// Package invalid defines the process-wide "no value supplied" sentinel.
//
// The sentinel is distinct from nil: a nil default value means an explicit
// null default, while invalid.Value means no default was declared at all.
// It is created once, never mutated, and compared by identity.
package invalid

// sentinelType is unexported so invalid.Value is the only reachable instance;
// it can never collide with any other "empty" value.
type sentinelType struct{}

func (sentinelType) String() string { return "INVALID" }

// Value is the singleton sentinel.
var Value any = sentinelType{}

// Is reports whether v is the sentinel. It is false for nil, zero values,
// empty strings, and every other value.
func Is(v any) bool {
	_, ok := v.(sentinelType)
	return ok
}
