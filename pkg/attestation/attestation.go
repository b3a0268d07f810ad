// Package attestation parses the CBOR attestation object carried in
// response.attestationObject of a registration result. Parsing only; the
// attestation statement is never cryptographically verified here.
package attestation

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-ctap/webauthn/pkg/webauthntypes"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/ldclabs/cose/key"
)

var ErrTruncatedAuthData = errors.New("attestation: truncated authenticator data")

type Flag byte

const (
	FlagUserPresent Flag = 1 << iota
	_
	FlagUserVerified
	FlagBackupEligible
	FlagBackupState
	_
	FlagAttestedCredentialDataIncluded
	FlagExtensionDataIncluded
)

func (f Flag) UserPresent() bool {
	return f&FlagUserPresent != 0
}
func (f Flag) UserVerified() bool {
	return f&FlagUserVerified != 0
}
func (f Flag) BackupEligible() bool {
	return f&FlagBackupEligible != 0
}
func (f Flag) BackupState() bool {
	return f&FlagBackupState != 0
}
func (f Flag) AttestedCredentialDataIncluded() bool {
	return f&FlagAttestedCredentialDataIncluded != 0
}
func (f Flag) ExtensionDataIncluded() bool {
	return f&FlagExtensionDataIncluded != 0
}

// AttestedCredentialData is the variable-length credential block inside the
// authenticator data of a registration.
// https://www.w3.org/TR/webauthn-3/#sctn-attested-credential-data
type AttestedCredentialData struct {
	AAGUID              uuid.UUID
	CredentialID        []byte
	CredentialPublicKey key.Key
}

// AuthData is parsed authenticator data.
// https://www.w3.org/TR/webauthn-3/#sctn-authenticator-data
type AuthData struct {
	RPIDHash               []byte
	Flags                  Flag
	SignCount              uint32
	AttestedCredentialData *AttestedCredentialData
	Extensions             []byte
}

// Object is the attestation object envelope.
// https://www.w3.org/TR/webauthn-3/#attestation-object
type Object struct {
	Format      webauthntypes.AttestationStatementFormatIdentifier `cbor:"fmt"`
	AuthDataRaw []byte                                             `cbor:"authData"`
	Statement   map[string]any                                     `cbor:"attStmt"`
	AuthData    *AuthData                                          `cbor:"-"`
}

// Parse decodes an attestation object and its embedded authenticator data.
func Parse(b []byte) (*Object, error) {
	var obj *Object
	if err := cbor.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("attestation: unmarshal object: %w", err)
	}

	authData, err := ParseAuthData(obj.AuthDataRaw)
	if err != nil {
		return nil, err
	}
	obj.AuthData = authData

	return obj, nil
}

// ParseAuthData decodes raw authenticator data, including the attested
// credential data block when the AT flag is set.
func ParseAuthData(data []byte) (*AuthData, error) {
	if len(data) < 37 {
		return nil, ErrTruncatedAuthData
	}

	d := &AuthData{
		RPIDHash:  data[:32],
		Flags:     Flag(data[32]),
		SignCount: binary.BigEndian.Uint32(data[33:37]),
	}
	offset := 37

	if d.Flags.AttestedCredentialDataIncluded() {
		if len(data) < offset+18 {
			return nil, ErrTruncatedAuthData
		}
		credData := &AttestedCredentialData{
			AAGUID: uuid.UUID(data[offset : offset+16]),
		}
		offset += 16

		length := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if len(data) < offset+length {
			return nil, ErrTruncatedAuthData
		}
		credData.CredentialID = data[offset : offset+length]
		offset += length

		dec := cbor.NewDecoder(bytes.NewReader(data[offset:]))
		if err := dec.Decode(&credData.CredentialPublicKey); err != nil {
			return nil, fmt.Errorf("attestation: decode credential public key: %w", err)
		}
		offset += dec.NumBytesRead()

		d.AttestedCredentialData = credData
	}

	if d.Flags.ExtensionDataIncluded() {
		d.Extensions = data[offset:]
	}

	return d, nil
}

// PackedStatement is the decoded form of a packed attestation statement.
// https://www.w3.org/TR/webauthn-3/#sctn-packed-attestation
type PackedStatement struct {
	Algorithm key.Alg
	Signature []byte
	X509Chain [][]byte
}

// PackedStatement extracts a packed attestation statement from the
// envelope, reporting false when the object carries a different format or a
// malformed statement.
func (o *Object) PackedStatement() (*PackedStatement, bool) {
	if o.Format != webauthntypes.AttestationStatementFormatIdentifierPacked {
		return nil, false
	}

	alg, ok := o.Statement["alg"].(int64)
	if !ok {
		return nil, false
	}

	sig, ok := o.Statement["sig"].([]byte)
	if !ok {
		return nil, false
	}

	var x5c [][]byte
	if x5cRaw, ok := o.Statement["x5c"].([]any); ok {
		for _, certRaw := range x5cRaw {
			cert, ok := certRaw.([]byte)
			if !ok {
				return nil, false
			}
			x5c = append(x5c, cert)
		}
	}

	return &PackedStatement{
		Algorithm: key.Alg(alg),
		Signature: sig,
		X509Chain: x5c,
	}, true
}
