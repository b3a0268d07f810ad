// Package ceremony orchestrates the client side of the WebAuthn
// registration ceremony: it translates server-issued wire options into the
// platform-native request, invokes the authenticator capability exactly
// once, and normalizes both success and failure into transport-safe shapes.
package ceremony

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-ctap/webauthn/pkg/platform"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Client runs registration ceremonies against one platform capability on
// behalf of one web origin. A Client is safe for sequential reuse; each
// ceremony allocates its own request and response values and shares nothing
// with other ceremonies.
type Client struct {
	authenticator platform.Authenticator
	origin        string
	logger        *slog.Logger
}

// NewClient returns a ceremony client. origin is the caller's web origin,
// e.g. "https://login.example.com"; the error classifier consults it to
// disambiguate SecurityError causes.
func NewClient(authenticator platform.Authenticator, origin string, opts ...Option) *Client {
	oo := newOptions(opts...)

	return &Client{
		authenticator: authenticator,
		origin:        origin,
		logger:        oo.Logger,
	}
}

// Register runs one registration ceremony: capability check, request
// translation, a single authenticator invocation, then response encoding or
// error classification. Ceremonies are one-shot; nothing is retried.
//
// Canceling ctx abandons the ceremony and surfaces it as an AbortError
// classification. The context is also handed to the platform capability so
// well-behaved implementations stop prompting.
func (c *Client) Register(ctx context.Context, options *wire.CredentialCreationOptions) (*wire.RegistrationResponse, error) {
	if !c.authenticator.Available() {
		return nil, ErrNotSupported
	}

	native, err := buildCreationOptions(options)
	if err != nil {
		return nil, err
	}

	ceremonyID := uuid.NewString()
	c.logger.Debug("invoking authenticator",
		"ceremony_id", ceremonyID,
		"rp_id", native.RP.ID,
		"user", native.User.Name,
	)

	result := make(chan mo.Either[*webauthntypes.PublicKeyCredential, error], 1)
	go func() {
		cred, err := c.authenticator.Create(ctx, native)
		if err != nil {
			result <- mo.Right[*webauthntypes.PublicKeyCredential, error](err)
			return
		}
		result <- mo.Left[*webauthntypes.PublicKeyCredential, error](cred)
	}()

	select {
	case <-ctx.Done():
		c.logger.Debug("ceremony aborted", "ceremony_id", ceremonyID, "cause", ctx.Err())
		return nil, classify(platform.NewSignal(platform.SignalAbortError, ctx.Err().Error()), native, c.origin)

	case res := <-result:
		if resErr, ok := res.Right(); ok {
			var sig *platform.Signal
			if errors.As(resErr, &sig) {
				cerr := classify(sig, native, c.origin)
				c.logger.Debug("ceremony failed",
					"ceremony_id", ceremonyID,
					"signal", string(sig.Name),
					"recognized", sig.Name.Recognized(),
				)
				return nil, cerr
			}

			return nil, fmt.Errorf("ceremony: authenticator: %w", resErr)
		}

		resp, err := encodeRegistration(res.MustLeft())
		if err != nil {
			return nil, err
		}
		c.logger.Debug("ceremony succeeded", "ceremony_id", ceremonyID, "credential_id", resp.ID)

		return resp, nil
	}
}
