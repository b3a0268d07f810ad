package base64url

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "Zm9vYmFy", Encode([]byte("foobar")))
	assert.Equal(t, "", Encode(nil))
	// URL-safe alphabet, no padding
	assert.Equal(t, "_v7-", Encode([]byte{0xfe, 0xfe, 0xfe}))
}

func TestDecode(t *testing.T) {
	b, err := Decode("Zm9vYmFy")
	require.NoError(t, err)
	assert.Equal(t, []byte("foobar"), b)

	b, err = Decode("")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"###", "Zm9vYmFy==", "_v7+"} {
		_, err := Decode(in)
		require.Error(t, err, "input %q", in)

		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr, "input %q", in)
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 65; i++ {
		b := make([]byte, i)
		_, err := r.Read(b)
		require.NoError(t, err)

		decoded, err := Decode(Encode(b))
		require.NoError(t, err)
		assert.Equal(t, b, decoded)
	}
}
