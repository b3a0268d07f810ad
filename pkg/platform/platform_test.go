package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalError(t *testing.T) {
	assert.Equal(t, "NotAllowedError", NewSignal(SignalNotAllowedError, "").Error())
	assert.Equal(t, "SecurityError: origin mismatch", NewSignal(SignalSecurityError, "origin mismatch").Error())
}

func TestSignalNameRecognized(t *testing.T) {
	assert.True(t, SignalAbortError.Recognized())
	assert.True(t, SignalUnknownError.Recognized())
	assert.False(t, SignalName("DataCloneError").Recognized())
	assert.False(t, SignalName("").Recognized())
}
