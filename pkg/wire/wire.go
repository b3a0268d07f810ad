// Package wire defines the text-safe JSON shapes exchanged with a relying
// party server: the same dictionaries as package webauthntypes, with every
// binary-bearing field carried as padding-free base64url text.
// https://www.w3.org/TR/webauthn-3/#sctn-parseCreationOptionsFromJSON
package wire

import "github.com/go-ctap/webauthn/pkg/webauthntypes"

// RelyingPartyEntity mirrors webauthntypes.PublicKeyCredentialRpEntity.
type RelyingPartyEntity struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserEntity mirrors webauthntypes.PublicKeyCredentialUserEntity with a
// base64url id.
type UserEntity struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// CredentialParameter mirrors webauthntypes.PublicKeyCredentialParameters.
// Alg is a COSE algorithm identifier.
type CredentialParameter struct {
	Type webauthntypes.PublicKeyCredentialType `json:"type"`
	Alg  int64                                 `json:"alg"`
}

// CredentialDescriptor mirrors webauthntypes.PublicKeyCredentialDescriptor
// with a base64url id.
type CredentialDescriptor struct {
	Type       webauthntypes.PublicKeyCredentialType  `json:"type"`
	ID         string                                 `json:"id"`
	Transports []webauthntypes.AuthenticatorTransport `json:"transports,omitempty"`
}

// AuthenticatorSelection mirrors webauthntypes.AuthenticatorSelectionCriteria.
type AuthenticatorSelection struct {
	AuthenticatorAttachment webauthntypes.AuthenticatorAttachment     `json:"authenticatorAttachment,omitempty"`
	ResidentKey             webauthntypes.ResidentKeyRequirement      `json:"residentKey,omitempty"`
	RequireResidentKey      bool                                      `json:"requireResidentKey,omitempty"`
	UserVerification        webauthntypes.UserVerificationRequirement `json:"userVerification,omitempty"`
}

// CredentialCreationOptions is the server-issued registration challenge as
// it arrives over the wire. Challenge, User.ID and every excluded
// credential id are base64url strings.
type CredentialCreationOptions struct {
	RP                     RelyingPartyEntity                            `json:"rp"`
	User                   UserEntity                                    `json:"user"`
	Challenge              string                                        `json:"challenge"`
	PubKeyCredParams       []CredentialParameter                         `json:"pubKeyCredParams"`
	Timeout                uint64                                        `json:"timeout,omitempty"`
	ExcludeCredentials     []CredentialDescriptor                        `json:"excludeCredentials,omitempty"`
	AuthenticatorSelection *AuthenticatorSelection                       `json:"authenticatorSelection,omitempty"`
	Attestation            webauthntypes.AttestationConveyancePreference `json:"attestation,omitempty"`
	Extensions             map[string]any                                `json:"extensions,omitempty"`
}

// AttestationResponse carries the authenticator output of a successful
// registration, re-encoded for transport.
type AttestationResponse struct {
	ClientDataJSON    string                                 `json:"clientDataJSON"`
	AttestationObject string                                 `json:"attestationObject"`
	Transports        []webauthntypes.AuthenticatorTransport `json:"transports,omitempty"`
}

// RegistrationResponse is the transport-safe ceremony result returned to the
// caller for the server round-trip. ClientExtensionResults is always
// present, empty when the platform reported none.
type RegistrationResponse struct {
	ID                     string                                `json:"id"`
	RawID                  string                                `json:"rawId"`
	Type                   webauthntypes.PublicKeyCredentialType `json:"type"`
	Response               AttestationResponse                   `json:"response"`
	ClientExtensionResults map[string]any                        `json:"clientExtensionResults"`
}

// CollectedClientData is the contextual binding serialized by the client
// into clientDataJSON during a ceremony.
// https://www.w3.org/TR/webauthn-3/#dictdef-collectedclientdata
type CollectedClientData struct {
	Type        string `json:"type"`
	Challenge   string `json:"challenge"`
	Origin      string `json:"origin"`
	CrossOrigin bool   `json:"crossOrigin,omitempty"`
}
