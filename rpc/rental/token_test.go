package rental

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func testTokenID(depth byte) []byte {
	h := sha256.Sum256([]byte{depth})
	return append(h[:], depth)
}

func TestTokenIDStringRoundTrip(t *testing.T) {
	for depth := byte(0); depth < MaxDepth; depth++ {
		id := testTokenID(depth)

		s, err := StringFromTokenID(id)
		require.NoError(t, err)

		decoded, err := TokenIDFromString(s)
		require.NoError(t, err)
		require.Equal(t, id, decoded)
	}
}

func TestTokenIDStringInvalid(t *testing.T) {
	_, err := StringFromTokenID(nil)
	require.Error(t, err)

	_, err = StringFromTokenID(testTokenID(0)[:TokenIDSize-1])
	require.Error(t, err)

	_, err = StringFromTokenID(testTokenID(MaxDepth))
	require.Error(t, err)

	_, err = TokenIDFromString("not base58 at all!")
	require.Error(t, err)
	require.ErrorIs(t, err, errInvalidTokenID)
}

func TestDepthOf(t *testing.T) {
	for depth := byte(0); depth < MaxDepth; depth++ {
		d, err := DepthOf(testTokenID(depth))
		require.NoError(t, err)
		require.EqualValues(t, depth, d)
	}

	_, err := DepthOf(testTokenID(MaxDepth))
	require.Error(t, err)
}
