package ceremony

import (
	"errors"

	"github.com/go-ctap/webauthn/pkg/platform"
)

var (
	// ErrNotSupported is returned when the platform capability is absent;
	// no authenticator invocation is attempted.
	ErrNotSupported = errors.New("ceremony: WebAuthn is not supported in this browser")
	// ErrCeremonyIncomplete is returned when the platform resolved without
	// an error but produced no usable credential.
	ErrCeremonyIncomplete = errors.New("ceremony: registration was not completed")
)

// ClassifiedError is a platform failure signal translated into a precise
// diagnostic. Message always carries the original signal name, so callers
// can pattern-match on it even though the type is uniform.
type ClassifiedError struct {
	Name    platform.SignalName
	Message string
}

func newClassifiedError(name platform.SignalName, message string) *ClassifiedError {
	if message == "" {
		message = "registration failed"
	}

	return &ClassifiedError{
		Name:    name,
		Message: message + " (see: " + string(name) + ")",
	}
}

func (e *ClassifiedError) Error() string {
	return "ceremony: " + e.Message
}
