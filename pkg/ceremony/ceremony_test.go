package ceremony

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-ctap/webauthn/pkg/base64url"
	"github.com/go-ctap/webauthn/pkg/platform"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthenticator scripts the platform capability for orchestrator tests.
type stubAuthenticator struct {
	unavailable bool
	create      func(ctx context.Context, options *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error)

	invocations int
}

func (s *stubAuthenticator) Available() bool {
	return !s.unavailable
}

func (s *stubAuthenticator) Create(ctx context.Context, options *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
	s.invocations++
	return s.create(ctx, options)
}

func testWireOptions() *wire.CredentialCreationOptions {
	return &wire.CredentialCreationOptions{
		Challenge: base64url.Encode([]byte("fizz")),
		RP:        wire.RelyingPartyEntity{ID: "example.com", Name: "Example"},
		User: wire.UserEntity{
			ID:   base64url.Encode([]byte("5678")),
			Name: "username",
		},
		PubKeyCredParams: []wire.CredentialParameter{
			{Type: webauthntypes.PublicKeyCredentialTypePublicKey, Alg: -7},
		},
	}
}

func TestRegisterCapabilityAbsent(t *testing.T) {
	authn := &stubAuthenticator{unavailable: true}
	client := NewClient(authn, "https://login.example.com")

	_, err := client.Register(context.Background(), testWireOptions())
	require.ErrorIs(t, err, ErrNotSupported)
	assert.Contains(t, err.Error(), "not supported in this browser")
	assert.Zero(t, authn.invocations, "no platform invocation may happen without the capability")
}

func TestRegisterSuccess(t *testing.T) {
	authn := &stubAuthenticator{
		create: func(_ context.Context, options *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			assert.Equal(t, []byte("fizz"), options.Challenge)

			return &webauthntypes.PublicKeyCredential{
				ID:    "foobar",
				RawID: []byte("foobar"),
				Type:  webauthntypes.PublicKeyCredentialTypePublicKey,
				Response: webauthntypes.AuthenticatorAttestationResponse{
					AttestationObject: []byte("mockAtte"),
					ClientDataJSON:    []byte("mockClie"),
				},
			}, nil
		},
	}
	client := NewClient(authn, "https://login.example.com")

	resp, err := client.Register(context.Background(), testWireOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, authn.invocations)
	assert.Equal(t, "Zm9vYmFy", resp.RawID)
	assert.Equal(t, "bW9ja0F0dGU", resp.Response.AttestationObject)
	assert.Equal(t, "bW9ja0NsaWU", resp.Response.ClientDataJSON)
	assert.NotNil(t, resp.ClientExtensionResults)
}

func TestRegisterNullResult(t *testing.T) {
	authn := &stubAuthenticator{
		create: func(context.Context, *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			return nil, nil
		},
	}
	client := NewClient(authn, "https://login.example.com")

	_, err := client.Register(context.Background(), testWireOptions())
	require.ErrorIs(t, err, ErrCeremonyIncomplete)
	assert.Contains(t, err.Error(), "not completed")
}

func TestRegisterClassifiesSignals(t *testing.T) {
	authn := &stubAuthenticator{
		create: func(context.Context, *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			return nil, platform.NewSignal(platform.SignalInvalidStateError, "")
		},
	}
	client := NewClient(authn, "https://login.example.com")

	_, err := client.Register(context.Background(), testWireOptions())
	require.Error(t, err)

	var cerr *ClassifiedError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, platform.SignalInvalidStateError, cerr.Name)
	assert.Contains(t, cerr.Message, "previously registered")
	assert.Contains(t, cerr.Message, "InvalidStateError")
	assert.Equal(t, 1, authn.invocations)
}

func TestRegisterPassesThroughUnknownErrors(t *testing.T) {
	plain := errors.New("hid transport exploded")
	authn := &stubAuthenticator{
		create: func(context.Context, *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			return nil, plain
		},
	}
	client := NewClient(authn, "https://login.example.com")

	_, err := client.Register(context.Background(), testWireOptions())
	require.ErrorIs(t, err, plain)

	var cerr *ClassifiedError
	assert.False(t, errors.As(err, &cerr))
}

func TestRegisterDecodeErrorBeforeInvocation(t *testing.T) {
	authn := &stubAuthenticator{
		create: func(context.Context, *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			return nil, nil
		},
	}
	client := NewClient(authn, "https://login.example.com")

	options := testWireOptions()
	options.Challenge = "%%%"
	_, err := client.Register(context.Background(), options)

	var decodeErr *base64url.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Zero(t, authn.invocations)
}

func TestRegisterContextCancellation(t *testing.T) {
	release := make(chan struct{})
	authn := &stubAuthenticator{
		create: func(_ context.Context, _ *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
			// simulates an authenticator stuck waiting for user presence,
			// so the abort branch is the only one that can become ready
			<-release
			return nil, platform.NewSignal(platform.SignalNotAllowedError, "")
		},
	}
	defer close(release)

	client := NewClient(authn, "https://login.example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Register(ctx, testWireOptions())
	require.Error(t, err)

	var cerr *ClassifiedError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, platform.SignalAbortError, cerr.Name)
	assert.Contains(t, cerr.Message, "aborted via abort signal")
}
