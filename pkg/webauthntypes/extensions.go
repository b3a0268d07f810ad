package webauthntypes

// CredentialPropertiesOutput is the client extension output for credProps.
// https://www.w3.org/TR/webauthn-3/#sctn-authenticator-credential-properties-extension
type CredentialPropertiesOutput struct {
	ResidentKey bool `json:"rk"`
}
