// Package events defines the event payloads published on the bus by the
// HTTP handler and the request pipeline.
package events

import (
	"net/http"
	"time"

	"github.com/hanpama/gqlcore/internal/language"
)

// HTTPStart is published when a request reaches the GraphQL endpoint.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is published after the response has been written.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}

// GraphQLStart is published before an operation enters the pipeline.
type GraphQLStart struct {
	Query         string
	OperationName string
}

// GraphQLFinish is published once the operation result is complete,
// including results that failed in parsing or validation.
type GraphQLFinish struct {
	Query         string
	OperationName string
	Errors        language.ErrorList
	Duration      time.Duration
}
