// Package platform specifies the boundary to the authenticator capability:
// an opaque subsystem that accepts a native credential-creation request and
// returns either a credential, no result, or a named failure signal.
package platform

import (
	"context"

	"github.com/go-ctap/webauthn/pkg/webauthntypes"
)

// SignalName is the closed set of failure categories a platform capability
// may raise. Names outside this set are tolerated and classified as
// unrecognized downstream.
type SignalName string

const (
	SignalAbortError        SignalName = "AbortError"
	SignalConstraintError   SignalName = "ConstraintError"
	SignalInvalidStateError SignalName = "InvalidStateError"
	SignalNotAllowedError   SignalName = "NotAllowedError"
	SignalNotSupportedError SignalName = "NotSupportedError"
	SignalSecurityError     SignalName = "SecurityError"
	SignalTypeError         SignalName = "TypeError"
	SignalUnknownError      SignalName = "UnknownError"
)

// Recognized reports whether n belongs to the enumerated signal set.
func (n SignalName) Recognized() bool {
	switch n {
	case SignalAbortError,
		SignalConstraintError,
		SignalInvalidStateError,
		SignalNotAllowedError,
		SignalNotSupportedError,
		SignalSecurityError,
		SignalTypeError,
		SignalUnknownError:
		return true
	default:
		return false
	}
}

// Signal is a named failure raised by the platform capability instead of a
// result, optionally carrying the platform's own human-readable message.
type Signal struct {
	Name    SignalName
	Message string
}

func NewSignal(name SignalName, message string) *Signal {
	return &Signal{
		Name:    name,
		Message: message,
	}
}

func (s *Signal) Error() string {
	if s.Message == "" {
		return string(s.Name)
	}
	return string(s.Name) + ": " + s.Message
}

// Authenticator is the platform capability invoked once per ceremony.
type Authenticator interface {
	// Available reports whether the credential-creation capability exists
	// at all. It is consulted before every ceremony; no caching is assumed.
	Available() bool

	// Create performs one credential registration. It returns the new
	// credential, or (nil, nil) when the ceremony ended without a usable
	// result, or a *Signal describing the failure. Implementations should
	// honor ctx cancellation but are not required to.
	Create(ctx context.Context, options *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error)
}
