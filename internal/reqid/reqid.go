// Package reqid tags request contexts with a random identifier so that
// events published at different stages of one request can be correlated.
package reqid

import (
	"context"
	"math/rand"
	"strconv"
)

type key struct{}

// NewContext returns a copy of parent carrying a fresh random request ID,
// along with the ID itself.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int63()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the request ID from ctx, reporting whether one was
// present.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

// String formats an ID the way it appears in headers and log fields.
func String(id int64) string { return strconv.FormatInt(id, 10) }
