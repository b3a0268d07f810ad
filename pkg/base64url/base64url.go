// Package base64url implements the padding-free, URL-safe base64 encoding
// used for every binary field crossing the JSON wire boundary.
// https://www.w3.org/TR/webauthn-3/#base64url-encoding
package base64url

import "encoding/base64"

// DecodeError reports input that is not valid padding-free base64url.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "base64url: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode returns the base64url representation of b without padding.
// Total over any byte sequence, including the empty one.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode is the inverse of Encode. Input containing characters outside the
// URL-safe alphabet (or stray padding) yields a *DecodeError.
func Decode(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return b, nil
}
