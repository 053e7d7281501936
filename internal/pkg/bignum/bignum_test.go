//go:build unit
// +build unit

package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesRoundTrip(t *testing.T) {
	original := []byte{0x01, 0x02, 0xFF, 0x00, 0x7A}
	x := FromBytes(original)
	assert.Equal(t, original, Bytes(x))

	// Leading zeros drop in the integer view.
	x = FromBytes([]byte{0x00, 0x00, 0x2A})
	assert.Equal(t, []byte{0x2A}, Bytes(x))

	assert.Empty(t, Bytes(big.NewInt(0)))
}

func TestPaddedBytes(t *testing.T) {
	x := big.NewInt(0x2A)
	padded := PaddedBytes(x, 4)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x2A}, padded)

	// Exact fit needs no padding.
	assert.Equal(t, []byte{0x2A}, PaddedBytes(x, 1))

	// Oversized values fall back to the natural encoding.
	assert.Equal(t, []byte{0x12, 0x34}, PaddedBytes(big.NewInt(0x1234), 1))
}

func TestPseudoprime(t *testing.T) {
	for _, bits := range []int{64, 191, 256} {
		p, err := Pseudoprime(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))
	}
}

func TestRandom(t *testing.T) {
	for _, bits := range []int{1, 8, 17, 512, 1024} {
		r, err := Random(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, r.BitLen(), "top bit must be set for %d bits", bits)
	}

	_, err := Random(0)
	assert.Error(t, err)
}

func TestZeroize(t *testing.T) {
	x := FromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xBA, 0xBE, 0x42})
	words := x.Bits()
	require.NotEmpty(t, words)

	Zeroize(x)
	assert.Zero(t, x.Sign())
	for _, w := range words {
		assert.Zero(t, w, "backing words must be overwritten")
	}

	// Zeroizing nil or an already-zero value is a no-op.
	Zeroize(nil)
	Zeroize(x)
	assert.Zero(t, x.Sign())
}
