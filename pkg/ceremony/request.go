package ceremony

import (
	"fmt"

	"github.com/go-ctap/webauthn/pkg/base64url"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"

	"github.com/ldclabs/cose/key"
	"github.com/samber/lo"
)

// buildCreationOptions translates wire creation options into the
// platform-native request: challenge, user.id and excluded credential ids
// are decoded from base64url, everything else passes through unmodified.
// No validation of pubKeyCredParams or field lengths happens here; support
// for the requested parameters is the platform's call.
func buildCreationOptions(options *wire.CredentialCreationOptions) (*webauthntypes.PublicKeyCredentialCreationOptions, error) {
	challenge, err := base64url.Decode(options.Challenge)
	if err != nil {
		return nil, fmt.Errorf("ceremony: decode challenge: %w", err)
	}

	userID, err := base64url.Decode(options.User.ID)
	if err != nil {
		return nil, fmt.Errorf("ceremony: decode user.id: %w", err)
	}

	native := &webauthntypes.PublicKeyCredentialCreationOptions{
		RP: webauthntypes.PublicKeyCredentialRpEntity{
			ID:   options.RP.ID,
			Name: options.RP.Name,
		},
		User: webauthntypes.PublicKeyCredentialUserEntity{
			ID:          userID,
			Name:        options.User.Name,
			DisplayName: options.User.DisplayName,
		},
		Challenge: challenge,
		PubKeyCredParams: lo.Map(options.PubKeyCredParams,
			func(p wire.CredentialParameter, _ int) webauthntypes.PublicKeyCredentialParameters {
				return webauthntypes.PublicKeyCredentialParameters{
					Type:      p.Type,
					Algorithm: key.Alg(p.Alg),
				}
			}),
		Timeout:     options.Timeout,
		Attestation: options.Attestation,
	}

	if len(options.ExcludeCredentials) > 0 {
		native.ExcludeCredentials = make([]webauthntypes.PublicKeyCredentialDescriptor, 0, len(options.ExcludeCredentials))
		for _, cred := range options.ExcludeCredentials {
			id, err := base64url.Decode(cred.ID)
			if err != nil {
				return nil, fmt.Errorf("ceremony: decode excludeCredentials id: %w", err)
			}

			native.ExcludeCredentials = append(native.ExcludeCredentials, webauthntypes.PublicKeyCredentialDescriptor{
				Type:       cred.Type,
				ID:         id,
				Transports: cred.Transports,
			})
		}
	}

	if sel := options.AuthenticatorSelection; sel != nil {
		native.AuthenticatorSelection = &webauthntypes.AuthenticatorSelectionCriteria{
			AuthenticatorAttachment: sel.AuthenticatorAttachment,
			ResidentKey:             sel.ResidentKey,
			RequireResidentKey:      sel.RequireResidentKey,
			UserVerification:        sel.UserVerification,
		}
	}

	// The platform must not see an empty extension map where none was requested.
	if len(options.Extensions) > 0 {
		native.Extensions = make(map[webauthntypes.ExtensionIdentifier]any, len(options.Extensions))
		for ident, input := range options.Extensions {
			native.Extensions[webauthntypes.ExtensionIdentifier(ident)] = input
		}
	}

	return native, nil
}
