package ceremony

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-ctap/webauthn/pkg/platform"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
)

// registrable domain shape: at least one dot-separated label plus a TLD.
var domainPattern = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*\.)+[a-z]{2,}$`)

// classify turns an opaque platform failure signal into a ClassifiedError,
// re-examining the original request (not the platform response) for the
// names that carry more than one candidate diagnostic. Unrecognized names,
// and recognized names whose request context matches no known condition,
// keep the platform's own message.
func classify(
	sig *platform.Signal,
	options *webauthntypes.PublicKeyCredentialCreationOptions,
	origin string,
) *ClassifiedError {
	switch sig.Name {
	case platform.SignalAbortError:
		return newClassifiedError(sig.Name, "registration was aborted via abort signal")

	case platform.SignalConstraintError:
		if sel := options.AuthenticatorSelection; sel != nil {
			if sel.RequireResidentKey || sel.ResidentKey == webauthntypes.ResidentKeyRequirementRequired {
				return newClassifiedError(sig.Name,
					"discoverable credentials were required but no available authenticator supported it")
			}
			if sel.UserVerification == webauthntypes.UserVerificationRequired {
				return newClassifiedError(sig.Name,
					"user verification was required but no available authenticator supported it")
			}
		}

	case platform.SignalInvalidStateError:
		return newClassifiedError(sig.Name, "the authenticator was previously registered")

	case platform.SignalNotAllowedError:
		return newClassifiedError(sig.Name, "user cancelled or the operation timed out")

	case platform.SignalNotSupportedError:
		if !containsPublicKeyParams(options.PubKeyCredParams) {
			return newClassifiedError(sig.Name, "pubKeyCredParams did not contain `public-key` entries")
		}
		return newClassifiedError(sig.Name,
			"no available authenticator supported any of the specified pubKeyCredParams algorithms")

	case platform.SignalSecurityError:
		host := originHostname(origin)
		if !isValidDomain(host) {
			return newClassifiedError(sig.Name, fmt.Sprintf("%s is an invalid domain", host))
		}
		if !rpIDCoversHost(options.RP.ID, host) {
			return newClassifiedError(sig.Name,
				fmt.Sprintf("the RP ID %q is invalid for the current domain", options.RP.ID))
		}

	case platform.SignalTypeError:
		if n := len(options.User.ID); n < 1 || n > 64 {
			return newClassifiedError(sig.Name, "user id was not between 1 and 64 characters")
		}

	case platform.SignalUnknownError:
		return newClassifiedError(sig.Name,
			"the authenticator was unable to process the specified options, or could not create a new credential")
	}

	return newClassifiedError(sig.Name, sig.Message)
}

func containsPublicKeyParams(params []webauthntypes.PublicKeyCredentialParameters) bool {
	for _, p := range params {
		if p.Type == webauthntypes.PublicKeyCredentialTypePublicKey {
			return true
		}
	}

	return false
}

// rpIDCoversHost reports whether the RP ID may be set by the origin
// hostname: equal to it, or a registrable suffix of it. An empty RP ID
// defaults to the hostname itself and is always covered.
func rpIDCoversHost(rpID, host string) bool {
	if rpID == "" {
		return true
	}

	return rpID == host || strings.HasSuffix(host, "."+rpID)
}

// originHostname extracts the hostname from an origin string such as
// "https://login.example.com:8443". Input that does not parse as a URL is
// treated as a bare hostname.
func originHostname(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return origin
	}

	return u.Hostname()
}

// isValidDomain mirrors browser behavior when deciding whether a hostname
// can set an RP ID at all: "localhost" qualifies, IP literals never do,
// anything else must look like a registrable domain.
func isValidDomain(host string) bool {
	if host == "localhost" {
		return true
	}
	if net.ParseIP(strings.Trim(host, "[]")) != nil {
		return false
	}

	return domainPattern.MatchString(strings.ToLower(host))
}
