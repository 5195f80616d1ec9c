package httputil

import (
	"context"
	"errors"
	"net/http"
)

// Outcome is what a client is told about a failed request.
type Outcome struct {
	Status  int
	Message string
}

// ServerFault reports whether the failure lies with this service or its upstreams
// rather than with the request.
func (o Outcome) ServerFault() bool {
	return o.Status >= http.StatusInternalServerError
}

// Rule sends errors matching Target to Status. With ShowCause the error text
// replaces Message, so the caller learns what exactly was rejected.
type Rule struct {
	Target    error
	Status    int
	Message   string
	ShowCause bool
}

// ErrorTable resolves errors against an ordered rule list.
//
// Resolution order:
//   - a nil error is 200
//   - an expired deadline is 504 and a cancelled request 503, whatever else it wraps
//   - the first rule whose Target matches via errors.Is
//   - the fallback
//
// Errors often wrap several sentinels, so list narrow rules before broad ones.
type ErrorTable struct {
	rules    []Rule
	fallback Outcome
}

// NewErrorTable builds a table. A zero fallback status becomes 500.
func NewErrorTable(fallback Outcome, rules ...Rule) *ErrorTable {
	if fallback.Status == 0 {
		fallback = Outcome{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
	return &ErrorTable{rules: rules, fallback: fallback}
}

// Resolve picks the outcome for err.
func (t *ErrorTable) Resolve(err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Status: http.StatusOK}
	case errors.Is(err, context.DeadlineExceeded):
		return Outcome{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	case errors.Is(err, context.Canceled):
		return Outcome{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}
	for _, rule := range t.rules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		out := Outcome{Status: rule.Status, Message: rule.Message}
		if rule.ShowCause {
			out.Message = err.Error()
		}
		return out
	}
	return t.fallback
}
