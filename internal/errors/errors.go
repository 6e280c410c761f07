// Package errors defines typed errors with categories for user-friendly reporting.
// The categories mirror how the client surfaces a failure: inline form errors,
// a rejected login, an expired session that sends the operator back to login,
// a backend or network failure shown as a notification, or local storage trouble.
//
// Producers either wrap with Wrap/New or implement ErrorKind() on their own
// error types; KindOf understands both.
package errors

import (
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Unknown is reported for errors nobody categorized.
	Unknown Kind = "unknown"
	// Validation marks field-level form errors that never reached the network.
	Validation Kind = "validation"
	// InvalidCredentials marks a login the backend rejected.
	InvalidCredentials Kind = "invalid_credentials"
	// SessionExpired marks an authenticated call rejected with 401.
	SessionExpired Kind = "session_expired"
	// Backend marks any other non-2xx backend response.
	Backend Kind = "backend"
	// Network marks transport failures (DNS, refused, timeout, TLS).
	Network Kind = "network"
	// Storage marks credential store failures.
	Storage Kind = "storage"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the category of err. An explicit *E wins over a typed error
// further down the chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	var k interface{ ErrorKind() Kind }
	if stderrors.As(err, &k) {
		return k.ErrorKind()
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return Network
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return Network
	}
	return Unknown
}
