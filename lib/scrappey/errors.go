package scrappey

import (
	"fmt"
)

// ErrorKind partitions request failures by how the dispatcher must treat
// them. Auth failures are terminal for the whole client; everything else is
// retryable.
type ErrorKind int

const (
	KindRequest ErrorKind = iota
	KindTimeout
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindTimeout:
		return "timeout"
	default:
		return "request"
	}
}

// Error is the failure type produced by scrape attempts. It carries the
// vendor's error code and message when the API reported the failure in its
// response body, and the underlying cause when the failure happened at the
// transport layer.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	// URL is the target url of the scrape that failed, not the API endpoint.
	URL string
	// Attempts is how many attempts were made before giving up.
	Attempts int
	// Transport marks timeouts hit at the HTTP layer, as opposed to
	// timeouts the vendor reported inside a decoded response body.
	Transport bool
	// APIResponse is the decoded response body, when there was one.
	APIResponse map[string]any

	cause error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	prefix := "scrappey"
	if e.Code != "" {
		prefix = fmt.Sprintf("scrappey [%s]", e.Code)
	}
	if e.Attempts > 1 {
		return fmt.Sprintf("%s: failed after %d attempts: %s", prefix, e.Attempts, msg)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the dispatcher is allowed to retry after this
// failure. All non-auth failures retry.
func (e *Error) Retryable() bool {
	return e.Kind != KindAuth
}
