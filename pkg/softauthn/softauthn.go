// Package softauthn is an in-process software authenticator implementing
// the platform capability. It produces none-format attestation objects with
// real ES256 credential keys and raises the same failure signals a browser
// surfaces, which makes it suitable for examples and end-to-end tests.
package softauthn

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/go-ctap/webauthn/pkg/attestation"
	"github.com/go-ctap/webauthn/pkg/base64url"
	"github.com/go-ctap/webauthn/pkg/platform"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
	coseecdsa "github.com/ldclabs/cose/key/ecdsa"
	"github.com/samber/lo"
)

// Authenticator is a software platform capability bound to one web origin.
// It remembers every credential it has created, so excluded-credential
// matches surface as InvalidStateError on later ceremonies.
type Authenticator struct {
	AAGUID     uuid.UUID
	Origin     string
	Transports []webauthntypes.AuthenticatorTransport
	// Disabled makes Available report false, simulating a client without
	// the WebAuthn capability.
	Disabled bool

	encMode cbor.EncMode

	mu          sync.Mutex
	credentials map[string]struct{}
	signCount   uint32
}

func New(origin string) *Authenticator {
	encMode, _ := cbor.CTAP2EncOptions().EncMode()

	return &Authenticator{
		AAGUID:      uuid.New(),
		Origin:      origin,
		Transports:  []webauthntypes.AuthenticatorTransport{webauthntypes.AuthenticatorTransportInternal},
		encMode:     encMode,
		credentials: make(map[string]struct{}),
	}
}

func (a *Authenticator) Available() bool {
	return !a.Disabled
}

// Create performs one credential registration, enforcing the data-model
// invariants a browser enforces before reaching the authenticator.
func (a *Authenticator) Create(ctx context.Context, options *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.PublicKeyCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, platform.NewSignal(platform.SignalAbortError, err.Error())
	}

	if n := len(options.User.ID); n < 1 || n > 64 {
		return nil, platform.NewSignal(platform.SignalTypeError,
			fmt.Sprintf("user.id must decode to between 1 and 64 bytes, got %d", n))
	}
	if len(options.Challenge) == 0 {
		return nil, platform.NewSignal(platform.SignalUnknownError, "empty challenge")
	}

	supported := lo.SomeBy(options.PubKeyCredParams, func(p webauthntypes.PublicKeyCredentialParameters) bool {
		return p.Type == webauthntypes.PublicKeyCredentialTypePublicKey &&
			p.Algorithm == key.Alg(iana.AlgorithmES256)
	})
	if !supported {
		return nil, platform.NewSignal(platform.SignalNotSupportedError,
			"none of the requested pubKeyCredParams are supported")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, excluded := range options.ExcludeCredentials {
		if _, ok := a.credentials[string(excluded.ID)]; ok {
			return nil, platform.NewSignal(platform.SignalInvalidStateError,
				"a credential matching excludeCredentials already exists on this authenticator")
		}
	}

	clientDataJSON, err := json.Marshal(wire.CollectedClientData{
		Type:      "webauthn.create",
		Challenge: base64url.Encode(options.Challenge),
		Origin:    a.Origin,
	})
	if err != nil {
		return nil, platform.NewSignal(platform.SignalUnknownError, err.Error())
	}

	credentialID := make([]byte, 32)
	if _, err := rand.Read(credentialID); err != nil {
		return nil, platform.NewSignal(platform.SignalUnknownError, err.Error())
	}

	attObj, err := a.buildAttestationObject(options, credentialID)
	if err != nil {
		return nil, platform.NewSignal(platform.SignalUnknownError, err.Error())
	}

	extensionResults := map[webauthntypes.ExtensionIdentifier]any{}
	if _, ok := options.Extensions[webauthntypes.ExtensionIdentifierCredentialProperties]; ok {
		sel := options.AuthenticatorSelection
		extensionResults[webauthntypes.ExtensionIdentifierCredentialProperties] = webauthntypes.CredentialPropertiesOutput{
			ResidentKey: sel != nil &&
				(sel.RequireResidentKey || sel.ResidentKey == webauthntypes.ResidentKeyRequirementRequired),
		}
	}

	a.credentials[string(credentialID)] = struct{}{}

	return &webauthntypes.PublicKeyCredential{
		ID:    base64url.Encode(credentialID),
		RawID: credentialID,
		Type:  webauthntypes.PublicKeyCredentialTypePublicKey,
		Response: webauthntypes.AuthenticatorAttestationResponse{
			ClientDataJSON:    clientDataJSON,
			AttestationObject: attObj,
			Transports:        a.Transports,
		},
		ClientExtensionResults: extensionResults,
	}, nil
}

func (a *Authenticator) buildAttestationObject(options *webauthntypes.PublicKeyCredentialCreationOptions, credentialID []byte) ([]byte, error) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cannot generate credential P-256 keypair: %w", err)
	}

	coseKey, err := coseecdsa.KeyFromPublic(&privKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("cannot convert credential public key to COSE_Key: %w", err)
	}
	if err := coseKey.Set(iana.KeyParameterAlg, iana.AlgorithmES256); err != nil {
		return nil, fmt.Errorf("cannot set alg parameter for COSE_Key: %w", err)
	}
	// Attested credential data carries only the required key parameters.
	delete(coseKey, iana.KeyParameterKid)

	keyBytes, err := a.encMode.Marshal(coseKey)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal COSE_Key: %w", err)
	}

	rpIDHash := sha256.Sum256([]byte(a.rpID(options)))
	a.signCount++

	flags := attestation.FlagUserPresent |
		attestation.FlagUserVerified |
		attestation.FlagAttestedCredentialDataIncluded

	authData := make([]byte, 0, 37+16+2+len(credentialID)+len(keyBytes))
	authData = append(authData, rpIDHash[:]...)
	authData = append(authData, byte(flags))
	authData = binary.BigEndian.AppendUint32(authData, a.signCount)
	authData = append(authData, a.AAGUID[:]...)
	authData = binary.BigEndian.AppendUint16(authData, uint16(len(credentialID)))
	authData = append(authData, credentialID...)
	authData = append(authData, keyBytes...)

	attObj, err := a.encMode.Marshal(&attestation.Object{
		Format:      webauthntypes.AttestationStatementFormatIdentifierNone,
		AuthDataRaw: authData,
		Statement:   map[string]any{},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal attestation object: %w", err)
	}

	return attObj, nil
}

// rpID resolves the effective RP ID: the requested one, or the origin's
// hostname when the request leaves it empty.
func (a *Authenticator) rpID(options *webauthntypes.PublicKeyCredentialCreationOptions) string {
	if options.RP.ID != "" {
		return options.RP.ID
	}

	u, err := url.Parse(a.Origin)
	if err != nil || u.Hostname() == "" {
		return a.Origin
	}

	return u.Hostname()
}
