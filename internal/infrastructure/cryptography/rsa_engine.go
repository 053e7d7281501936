package cryptography

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/google/uuid"

	"rsa_key_service/internal/domain/keys"
	"rsa_key_service/internal/pkg/bignum"
	"rsa_key_service/internal/pkg/config"
	"rsa_key_service/internal/pkg/logger"
)

// publicExponent is the fixed public exponent for generated keys. Small
// enough to keep public operations and generation cheap, large enough to
// stay clear of the e=3 attack classes.
const publicExponent = 17

// rsaKeyEngine implements the keys.AsymmetricKeyEngine interface over the
// bignum arithmetic collaborator.
type rsaKeyEngine struct {
	logger         logger.Logger
	id             uuid.UUID
	keySizeBits    int
	blinding       bool
	onKeyGenerated keys.KeyGeneratedHandler

	disposed     bool
	keyGenerated bool
	n            *big.Int
	e            *big.Int
	d            *big.Int
	p            *big.Int
	q            *big.Int
	dp           *big.Int
	dq           *big.Int
	qInv         *big.Int
}

// NewRSAKeyEngine creates an engine for the configured key size. No key
// material exists until GenerateKeyPair, ImportParameters or the first
// cryptographic operation. The onKeyGenerated handler may be nil; when
// set it fires synchronously once per generation, never on import.
//
// The engine wipes its key material deterministically on Close. A
// finalizer backstop wipes the private fields if an owner never calls
// Close, but relying on it is a caller bug.
func NewRSAKeyEngine(settings *config.EngineSettings, log logger.Logger, onKeyGenerated keys.KeyGeneratedHandler) (keys.AsymmetricKeyEngine, error) {
	if settings == nil {
		settings = config.DefaultEngineSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %d bits", keys.ErrInvalidKeySize, settings.KeySize)
	}

	engine := &rsaKeyEngine{
		logger:         log,
		id:             uuid.New(),
		keySizeBits:    settings.KeySize,
		blinding:       settings.Blinding,
		onKeyGenerated: onKeyGenerated,
	}
	runtime.SetFinalizer(engine, func(e *rsaKeyEngine) { e.wipe(false) })
	return engine, nil
}

// KeySize returns the modulus bit length rounded up to the next multiple
// of 8 once a key exists, otherwise the requested size. The state
// queries remain callable after Close; with the key wiped they report
// the no-key defaults.
func (e *rsaKeyEngine) KeySize() int {
	if e.keyGenerated && e.n != nil {
		return ((e.n.BitLen() + 7) / 8) * 8
	}
	return e.keySizeBits
}

// PublicOnly reports whether no private exponent is held.
func (e *rsaKeyEngine) PublicOnly() bool {
	return e.d == nil || e.n == nil
}

// CRTAvailable reports whether private operations will take the CRT path.
// Before any key exists it is true: generation always produces a complete
// CRT set.
func (e *rsaKeyEngine) CRTAvailable() bool {
	return !e.keyGenerated || e.hasCRT()
}

func (e *rsaKeyEngine) hasCRT() bool {
	return e.p != nil && e.q != nil && e.dp != nil && e.dq != nil && e.qInv != nil
}

// GenerateKeyPair generates a fresh key pair at the configured size.
func (e *rsaKeyEngine) GenerateKeyPair() error {
	if e.disposed {
		return keys.ErrDisposed
	}
	return e.generate()
}

// generate draws the primes, derives the exponents and installs the key.
//
// The rejection loops are necessary because pseudoprime generation does
// not guarantee the coprimality or bit-length constraints by
// construction: p and q are redrawn while they are congruent 1 mod e
// (which would make e divide p-1 or q-1 and leave e non-invertible mod
// phi), and q is redrawn while the product falls short of the requested
// bit length, biasing p to the larger prime before each retry.
func (e *rsaKeyEngine) generate() error {
	pubExp := big.NewInt(publicExponent)
	one := big.NewInt(1)
	rem := new(big.Int)

	pLen := (e.keySizeBits + 2) / 2 // ceil((K+1)/2)
	qLen := e.keySizeBits - pLen

	var p *big.Int
	for {
		cand, err := bignum.Pseudoprime(pLen)
		if err != nil {
			return err
		}
		if rem.Mod(cand, pubExp).Cmp(one) != 0 {
			p = cand
			break
		}
	}

	var q, n *big.Int
	for {
		cand, err := bignum.Pseudoprime(qLen)
		if err != nil {
			return err
		}
		if rem.Mod(cand, pubExp).Cmp(one) == 0 || cand.Cmp(p) == 0 {
			continue
		}
		n = new(big.Int).Mul(p, cand)
		if n.BitLen() == e.keySizeBits {
			q = cand
			break
		}
		if cand.Cmp(p) > 0 {
			p = cand
		}
	}

	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)
	phi := new(big.Int).Mul(pm1, qm1)

	d := new(big.Int).ModInverse(pubExp, phi)
	dp := new(big.Int).Mod(d, pm1)
	dq := new(big.Int).Mod(d, qm1)
	qInv := new(big.Int).ModInverse(q, p)

	bignum.Zeroize(phi)
	bignum.Zeroize(pm1)
	bignum.Zeroize(qm1)

	e.wipe(true)
	e.n, e.e, e.d = n, pubExp, d
	e.p, e.q, e.dp, e.dq, e.qInv = p, q, dp, dq, qInv
	e.keyGenerated = true

	e.logger.Info("Generated RSA key pair (", e.keySizeBits, " bits)")
	if e.onKeyGenerated != nil {
		e.onKeyGenerated(e.id.String())
	}
	return nil
}

// ensureKey lazily generates a key pair for operations invoked before
// one exists.
func (e *rsaKeyEngine) ensureKey() error {
	if e.disposed {
		return keys.ErrDisposed
	}
	if !e.keyGenerated {
		return e.generate()
	}
	return nil
}

// Encrypt computes m^e mod n over the input interpreted as a big-endian
// unsigned integer. The caller guarantees m < n; out-of-range input
// wraps under the modulus as the textbook contract allows.
func (e *rsaKeyEngine) Encrypt(data []byte) ([]byte, error) {
	if err := e.ensureKey(); err != nil {
		return nil, err
	}

	m := bignum.FromBytes(data)
	c := new(big.Int).Exp(m, e.e, e.n)
	out := bignum.Bytes(c)

	bignum.Zeroize(m)
	bignum.Zeroize(c)
	return out, nil
}

// Decrypt computes the private-key primitive c^d mod n: CRT when the
// parameters allow, direct exponentiation otherwise, blinded unless the
// engine was configured with blinding disabled. The primitive serves
// both decryption and raw signature production.
func (e *rsaKeyEngine) Decrypt(data []byte) ([]byte, error) {
	if err := e.ensureKey(); err != nil {
		return nil, err
	}
	if !e.hasCRT() && e.d == nil {
		return nil, fmt.Errorf("%w: private exponent", keys.ErrMissingParameter)
	}

	c := bignum.FromBytes(data)
	work := c

	// Blinding decorrelates the private exponentiation's timing from the
	// exponent bits: work on (r^e * c) mod n, divide r back out after.
	var r, rInv *big.Int
	if e.blinding {
		var err error
		r, rInv, err = e.blindingFactor()
		if err != nil {
			bignum.Zeroize(c)
			return nil, err
		}
		work = new(big.Int).Exp(r, e.e, e.n)
		work.Mul(work, c)
		work.Mod(work, e.n)
	}

	var m *big.Int
	if e.hasCRT() {
		m = e.decryptCRT(work)
	} else {
		m = new(big.Int).Exp(work, e.d, e.n)
	}

	if e.blinding {
		m.Mul(m, rInv)
		m.Mod(m, e.n)
		bignum.Zeroize(r)
		bignum.Zeroize(rInv)
	}

	out := bignum.Bytes(m)
	bignum.Zeroize(m)
	bignum.Zeroize(c)
	if work != c {
		bignum.Zeroize(work)
	}
	return out, nil
}

// blindingFactor draws a fresh random factor of the modulus bit length
// together with its inverse mod n. A factor sharing a divisor with n has
// no inverse; such draws are discarded.
func (e *rsaKeyEngine) blindingFactor() (r, rInv *big.Int, err error) {
	for {
		r, err = bignum.Random(e.n.BitLen())
		if err != nil {
			return nil, nil, err
		}
		rInv = new(big.Int).ModInverse(r, e.n)
		if rInv != nil {
			return r, rInv, nil
		}
		bignum.Zeroize(r)
	}
}

// decryptCRT combines the two half-size exponentiations via the Chinese
// Remainder Theorem. The branch keeps the intermediate difference
// non-negative before the reduction; both orderings satisfy
// result = m1 (mod p) and result = m2 (mod q).
func (e *rsaKeyEngine) decryptCRT(c *big.Int) *big.Int {
	m1 := new(big.Int).Exp(c, e.dp, e.p)
	m2 := new(big.Int).Exp(c, e.dq, e.q)

	h := new(big.Int)
	if m2.Cmp(m1) > 0 {
		h.Sub(m2, m1)
		h.Mul(h, e.qInv)
		h.Mod(h, e.p)
		h.Sub(e.p, h)
	} else {
		h.Sub(m1, m2)
		h.Mul(h, e.qInv)
		h.Mod(h, e.p)
	}

	// m = m2 + q*h
	m := h.Mul(h, e.q)
	m.Add(m, m2)

	bignum.Zeroize(m1)
	bignum.Zeroize(m2)
	return m
}

// ImportParameters replaces the key material wholesale. Modulus and
// Exponent are mandatory; the remaining fields are optional and copied
// independently. No cross-validation (such as n = p*q) is performed;
// callers supplying inconsistent parameters get inconsistent results on
// later operations. No key-generated notification fires on import.
func (e *rsaKeyEngine) ImportParameters(params *keys.RSAParameters) error {
	if e.disposed {
		return keys.ErrDisposed
	}
	if params == nil || len(params.Exponent) == 0 {
		return fmt.Errorf("%w: exponent", keys.ErrMissingParameter)
	}
	if len(params.Modulus) == 0 {
		return fmt.Errorf("%w: modulus", keys.ErrMissingParameter)
	}

	e.wipe(true)
	e.e = bignum.FromBytes(params.Exponent)
	e.n = bignum.FromBytes(params.Modulus)
	e.d = optionalValue(params.D)
	e.dp = optionalValue(params.DP)
	e.dq = optionalValue(params.DQ)
	e.qInv = optionalValue(params.InverseQ)
	e.p = optionalValue(params.P)
	e.q = optionalValue(params.Q)
	e.keyGenerated = true

	e.logger.Info("Imported RSA parameters (", e.KeySize(), " bits)")
	return nil
}

func optionalValue(b []byte) *big.Int {
	if len(b) == 0 {
		return nil
	}
	return bignum.FromBytes(b)
}

// ExportParameters returns the public parameters, plus the private ones
// when includePrivate is set. Modulus and Exponent use the natural
// minimal encoding; D is left-zero-padded to the modulus byte length
// because downstream consumers assume the two lengths match. An
// imported d longer than the modulus exports at its natural length
// rather than failing. The CRT fields are emitted only as a complete
// group of five.
func (e *rsaKeyEngine) ExportParameters(includePrivate bool) (*keys.RSAParameters, error) {
	if err := e.ensureKey(); err != nil {
		return nil, err
	}

	params := &keys.RSAParameters{
		Modulus:  bignum.Bytes(e.n),
		Exponent: bignum.Bytes(e.e),
	}
	if !includePrivate {
		return params, nil
	}

	if e.d == nil {
		return nil, fmt.Errorf("%w: private exponent", keys.ErrMissingParameter)
	}
	params.D = bignum.PaddedBytes(e.d, len(params.Modulus))
	if e.hasCRT() {
		params.P = bignum.Bytes(e.p)
		params.Q = bignum.Bytes(e.q)
		params.DP = bignum.Bytes(e.dp)
		params.DQ = bignum.Bytes(e.dq)
		params.InverseQ = bignum.Bytes(e.qInv)
	}
	return params, nil
}

// Close wipes the key material, including the public half, and marks the
// engine disposed. It is idempotent; wiping an already-released field is
// a no-op.
func (e *rsaKeyEngine) Close() error {
	e.wipe(true)
	e.disposed = true
	e.keyGenerated = false
	runtime.SetFinalizer(e, nil)
	return nil
}

// wipe zeroizes and releases the private fields unconditionally. The
// public n and e are cleared only on owner-initiated paths: the
// finalizer backstop leaves them so a half-live object is not disturbed
// during automatic reclaim.
func (e *rsaKeyEngine) wipe(owner bool) {
	for _, f := range []**big.Int{&e.d, &e.p, &e.q, &e.dp, &e.dq, &e.qInv} {
		bignum.Zeroize(*f)
		*f = nil
	}
	if owner {
		bignum.Zeroize(e.n)
		bignum.Zeroize(e.e)
		e.n = nil
		e.e = nil
	}
}
