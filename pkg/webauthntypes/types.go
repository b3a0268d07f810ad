// Package webauthntypes holds the platform-native WebAuthn data model: the
// shapes an authenticator capability consumes and produces, with every
// binary-bearing field as a raw byte sequence.
package webauthntypes

import "github.com/ldclabs/cose/key"

type (
	// PublicKeyCredentialType defines the valid credential types.
	// https://www.w3.org/TR/webauthn-3/#enumdef-publickeycredentialtype
	PublicKeyCredentialType string
	// AuthenticatorTransport defines hints as to how clients might communicate
	// with a particular authenticator in order to obtain an assertion for a specific credential.
	// https://www.w3.org/TR/webauthn-3/#enumdef-authenticatortransport
	AuthenticatorTransport string
	// AuthenticatorAttachment describes an authenticator's attachment modality.
	// https://www.w3.org/TR/webauthn-3/#enumdef-authenticatorattachment
	AuthenticatorAttachment string
	// ResidentKeyRequirement expresses how strongly the relying party wants a
	// client-side discoverable credential.
	// https://www.w3.org/TR/webauthn-3/#enumdef-residentkeyrequirement
	ResidentKeyRequirement string
	// UserVerificationRequirement describes the relying party's user verification requirements.
	// https://www.w3.org/TR/webauthn-3/#enumdef-userverificationrequirement
	UserVerificationRequirement string
	// AttestationConveyancePreference states a preference regarding attestation conveyance.
	// https://www.w3.org/TR/webauthn-3/#enumdef-attestationconveyancepreference
	AttestationConveyancePreference string
	// AttestationStatementFormatIdentifier is an enum consisting of IANA registered Attestation Statement Format Identifiers.
	// https://www.iana.org/assignments/webauthn/webauthn.xhtml
	AttestationStatementFormatIdentifier string
	// ExtensionIdentifier is an enum consisting of IANA registered Extension Identifiers.
	// https://www.iana.org/assignments/webauthn/webauthn.xhtml
	ExtensionIdentifier string
)

const (
	PublicKeyCredentialTypePublicKey PublicKeyCredentialType = "public-key"
)

const (
	AuthenticatorTransportUSB       AuthenticatorTransport = "usb"
	AuthenticatorTransportNFC       AuthenticatorTransport = "nfc"
	AuthenticatorTransportBLE       AuthenticatorTransport = "ble"
	AuthenticatorTransportSmartCard AuthenticatorTransport = "smart-card"
	AuthenticatorTransportHybrid    AuthenticatorTransport = "hybrid"
	AuthenticatorTransportInternal  AuthenticatorTransport = "internal"
)

const (
	AuthenticatorAttachmentPlatform      AuthenticatorAttachment = "platform"
	AuthenticatorAttachmentCrossPlatform AuthenticatorAttachment = "cross-platform"
)

const (
	ResidentKeyRequirementDiscouraged ResidentKeyRequirement = "discouraged"
	ResidentKeyRequirementPreferred   ResidentKeyRequirement = "preferred"
	ResidentKeyRequirementRequired    ResidentKeyRequirement = "required"
)

const (
	UserVerificationRequired    UserVerificationRequirement = "required"
	UserVerificationPreferred   UserVerificationRequirement = "preferred"
	UserVerificationDiscouraged UserVerificationRequirement = "discouraged"
)

const (
	AttestationConveyancePreferenceNone       AttestationConveyancePreference = "none"
	AttestationConveyancePreferenceIndirect   AttestationConveyancePreference = "indirect"
	AttestationConveyancePreferenceDirect     AttestationConveyancePreference = "direct"
	AttestationConveyancePreferenceEnterprise AttestationConveyancePreference = "enterprise"
)

const (
	AttestationStatementFormatIdentifierPacked  AttestationStatementFormatIdentifier = "packed"
	AttestationStatementFormatIdentifierTPM     AttestationStatementFormatIdentifier = "tpm"
	AttestationStatementFormatIdentifierFIDOU2F AttestationStatementFormatIdentifier = "fido-u2f"
	AttestationStatementFormatIdentifierApple   AttestationStatementFormatIdentifier = "apple"
	AttestationStatementFormatIdentifierNone    AttestationStatementFormatIdentifier = "none"
)

const (
	ExtensionIdentifierAppID                  ExtensionIdentifier = "appid"
	ExtensionIdentifierAppIDExclude           ExtensionIdentifier = "appidExclude"
	ExtensionIdentifierUserVerificationMethod ExtensionIdentifier = "uvm"
	ExtensionIdentifierCredentialProperties   ExtensionIdentifier = "credProps"
	ExtensionIdentifierCredentialProtection   ExtensionIdentifier = "credProtect"
	ExtensionIdentifierLargeBlob              ExtensionIdentifier = "largeBlob"
	ExtensionIdentifierMinPinLength           ExtensionIdentifier = "minPinLength"
)

// PublicKeyCredentialRpEntity is used to supply additional Relying Party attributes when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialrpentity
type PublicKeyCredentialRpEntity struct {
	ID   string
	Name string
}

// PublicKeyCredentialUserEntity is used to supply additional user account attributes when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialuserentity
type PublicKeyCredentialUserEntity struct {
	ID          []byte
	Name        string
	DisplayName string
}

// PublicKeyCredentialDescriptor identifies a specific public key credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialdescriptor
type PublicKeyCredentialDescriptor struct {
	Type       PublicKeyCredentialType
	ID         []byte
	Transports []AuthenticatorTransport
}

// PublicKeyCredentialParameters is used to supply additional parameters when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialparameters
type PublicKeyCredentialParameters struct {
	Type      PublicKeyCredentialType
	Algorithm key.Alg
}

// AuthenticatorSelectionCriteria lets a relying party filter eligible authenticators.
// https://www.w3.org/TR/webauthn-3/#dictdef-authenticatorselectioncriteria
type AuthenticatorSelectionCriteria struct {
	AuthenticatorAttachment AuthenticatorAttachment
	ResidentKey             ResidentKeyRequirement
	RequireResidentKey      bool
	UserVerification        UserVerificationRequirement
}

// PublicKeyCredentialCreationOptions is the native credential-creation
// request handed to the platform authenticator. Challenge, User.ID and
// every ExcludeCredentials id are raw byte sequences.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialcreationoptions
type PublicKeyCredentialCreationOptions struct {
	RP                     PublicKeyCredentialRpEntity
	User                   PublicKeyCredentialUserEntity
	Challenge              []byte
	PubKeyCredParams       []PublicKeyCredentialParameters
	Timeout                uint64
	ExcludeCredentials     []PublicKeyCredentialDescriptor
	AuthenticatorSelection *AuthenticatorSelectionCriteria
	Attestation            AttestationConveyancePreference
	// Extensions is nil when the caller requested none; the platform must
	// never observe an empty map where no extensions were asked for.
	Extensions map[ExtensionIdentifier]any
}

// AuthenticatorAttestationResponse is the authenticator's output for a
// successful credential registration.
// https://www.w3.org/TR/webauthn-3/#authenticatorattestationresponse
type AuthenticatorAttestationResponse struct {
	ClientDataJSON    []byte
	AttestationObject []byte
	Transports        []AuthenticatorTransport
}

// PublicKeyCredential is the platform's success result for one ceremony.
// May be nil, signaling an incomplete ceremony.
// https://www.w3.org/TR/webauthn-3/#iface-pkcredential
type PublicKeyCredential struct {
	ID                     string
	RawID                  []byte
	Type                   PublicKeyCredentialType
	Response               AuthenticatorAttestationResponse
	ClientExtensionResults map[ExtensionIdentifier]any
}

// GetClientExtensionResults returns the client extension output map, never
// nil, mirroring the accessor the Web API exposes.
// https://www.w3.org/TR/webauthn-3/#dom-publickeycredential-getclientextensionresults
func (c *PublicKeyCredential) GetClientExtensionResults() map[ExtensionIdentifier]any {
	if c.ClientExtensionResults == nil {
		return map[ExtensionIdentifier]any{}
	}

	return c.ClientExtensionResults
}
