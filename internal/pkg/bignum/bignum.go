// Package bignum adapts the arbitrary-precision arithmetic collaborator
// (math/big with crypto/rand) to the operations the RSA key engine
// consumes: byte conversion, pseudoprime and random generation, and
// in-place zeroization of sensitive values.
package bignum

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/awnumar/memguard"
)

// FromBytes constructs an unsigned integer from big-endian bytes.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Bytes returns the minimal-length big-endian encoding of x. Zero
// encodes as an empty slice, following the library convention.
func Bytes(x *big.Int) []byte {
	return x.Bytes()
}

// PaddedBytes returns the big-endian encoding of x left-padded with
// zero bytes to exactly length bytes. A value that already needs more
// than length bytes comes back at its natural length; imports accept
// oversized parameters without cross-validation, so export has to
// tolerate them.
func PaddedBytes(x *big.Int, length int) []byte {
	b := x.Bytes()
	if len(b) >= length {
		return b
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out
}

// Pseudoprime draws a probable prime of exactly bits bits from the
// cryptographically secure source.
func Pseudoprime(bits int) (*big.Int, error) {
	p, err := rand.Prime(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("bignum: prime generation failed: %w", err)
	}
	return p, nil
}

// Random draws a cryptographically random integer of exactly bits bits:
// the top bit is always set so the bit length matches the request.
func Random(bits int) (*big.Int, error) {
	if bits < 1 {
		return nil, fmt.Errorf("bignum: random bit length %d out of range", bits)
	}
	nbytes := (bits + 7) / 8
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("bignum: random generation failed: %w", err)
	}
	// Mask excess high bits, then force the top bit of the requested width.
	excess := nbytes*8 - bits
	buf[0] &= 0xFF >> excess
	buf[0] |= 1 << (7 - excess)
	r := new(big.Int).SetBytes(buf)
	memguard.WipeBytes(buf)
	return r, nil
}

// Zeroize overwrites the words backing x in place and resets the value
// to zero. Zeroizing an already-released or zero value is a no-op.
func Zeroize(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}
