package ceremony

import (
	"github.com/go-ctap/webauthn/pkg/base64url"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"
)

// encodeRegistration re-encodes the platform's credential into the
// transport-safe wire shape. Unlike the request side, the extension-result
// map is always present, empty when the platform reported none.
func encodeRegistration(cred *webauthntypes.PublicKeyCredential) (*wire.RegistrationResponse, error) {
	if cred == nil {
		return nil, ErrCeremonyIncomplete
	}

	extensionResults := make(map[string]any)
	for ident, output := range cred.GetClientExtensionResults() {
		extensionResults[string(ident)] = output
	}

	return &wire.RegistrationResponse{
		ID:    cred.ID,
		RawID: base64url.Encode(cred.RawID),
		Type:  cred.Type,
		Response: wire.AttestationResponse{
			ClientDataJSON:    base64url.Encode(cred.Response.ClientDataJSON),
			AttestationObject: base64url.Encode(cred.Response.AttestationObject),
			Transports:        cred.Response.Transports,
		},
		ClientExtensionResults: extensionResults,
	}, nil
}
