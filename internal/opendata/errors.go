// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import "fmt"

// FailureClass classifies a terminal source-query failure. The pipeline
// relies on this to decide between a transient-error message and a hard
// failure, so the mapping from status ranges is a contract.
type FailureClass int

const (
	FailureUnknown FailureClass = iota
	FailureRedirect
	FailureClient
	FailureServer
)

func (c FailureClass) String() string {
	switch c {
	case FailureRedirect:
		return "redirect"
	case FailureClient:
		return "client error"
	case FailureServer:
		return "server error"
	default:
		return "unknown"
	}
}

// ClassifyStatus maps a terminal HTTP status to a failure class.
func ClassifyStatus(status int) FailureClass {
	switch {
	case status >= 300 && status < 400:
		return FailureRedirect
	case status >= 400 && status < 500:
		return FailureClient
	case status >= 500 && status < 600:
		return FailureServer
	default:
		return FailureUnknown
	}
}

// QueryError is a classified source-query failure carrying the offending
// query string.
type QueryError struct {
	Class   FailureClass
	Dataset string
	Query   string
	Status  int
	Err     error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s query failed: %s (HTTP %d) for %q", e.Dataset, e.Class, e.Status, e.Query)
	}
	return fmt.Sprintf("%s query failed: %s for %q: %v", e.Dataset, e.Class, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth telling the user to try
// again later, as opposed to a hard failure in the request itself.
func (e *QueryError) Transient() bool {
	return e.Class == FailureServer || e.Class == FailureUnknown
}
