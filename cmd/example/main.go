package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-ctap/webauthn/pkg/base64url"
	"github.com/go-ctap/webauthn/pkg/ceremony"
	"github.com/go-ctap/webauthn/pkg/softauthn"
	"github.com/go-ctap/webauthn/pkg/webauthntypes"
	"github.com/go-ctap/webauthn/pkg/wire"
)

func main() {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))

	const origin = "https://login.example.com"

	authn := softauthn.New(origin)
	client := ceremony.NewClient(authn, origin, ceremony.WithLogger(logger))

	// Normally issued by the relying party server.
	options := &wire.CredentialCreationOptions{
		Challenge: base64url.Encode([]byte("random-server-challenge")),
		RP: wire.RelyingPartyEntity{
			ID:   "example.com",
			Name: "Example Corp.",
		},
		User: wire.UserEntity{
			ID:          base64url.Encode([]byte("user-4711")),
			Name:        "alexm",
			DisplayName: "Alex M.",
		},
		PubKeyCredParams: []wire.CredentialParameter{
			{Type: webauthntypes.PublicKeyCredentialTypePublicKey, Alg: -7},
		},
		AuthenticatorSelection: &wire.AuthenticatorSelection{
			ResidentKey:      webauthntypes.ResidentKeyRequirementPreferred,
			UserVerification: webauthntypes.UserVerificationPreferred,
		},
		Attestation: webauthntypes.AttestationConveyancePreferenceNone,
		Extensions:  map[string]any{"credProps": true},
	}

	resp, err := client.Register(context.Background(), options)
	if err != nil {
		panic(err)
	}

	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
}
