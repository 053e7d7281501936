package keys

// RSAParameters is the parameter exchange form between the key engine and
// any surrounding key-storage or provider framework. All fields are
// big-endian unsigned byte arrays. Modulus and Exponent are mandatory on
// import; the remaining fields are optional and independently copied.
type RSAParameters struct {
	Modulus  []byte
	Exponent []byte
	D        []byte
	P        []byte
	Q        []byte
	DP       []byte
	DQ       []byte
	InverseQ []byte
}

// HasCRT reports whether all five CRT fields are present. Partial CRT
// sets are never emitted on export; on import they leave the engine on
// the direct-exponentiation path.
func (p *RSAParameters) HasCRT() bool {
	return p.P != nil && p.Q != nil && p.DP != nil && p.DQ != nil && p.InverseQ != nil
}

// Scheme identifiers exposed as static metadata.
const (
	// KeyExchangeAlgorithm identifies the PKCS#1 key exchange scheme.
	KeyExchangeAlgorithm = "RSA-PKCS1-KeyEx"

	// SignatureAlgorithm identifies the RSA-SHA1 signature scheme.
	SignatureAlgorithm = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
)

// KeyGeneratedHandler is invoked synchronously, exactly once, immediately
// after a successful key generation. It never fires on import. The
// argument identifies the engine instance that generated the key.
type KeyGeneratedHandler func(engineID string)

// AsymmetricKeyEngine handles raw RSA asymmetric operations: key-pair
// generation, the textbook encryption/decryption primitives, parameter
// import/export and the XML key-exchange encoding. Callers are
// responsible for padding; the primitives operate on raw big-endian
// integers below the modulus.
//
// An engine has a single logical owner. Generation, import and Close
// must be serialized externally; concurrent Encrypt/Decrypt calls on an
// already-populated key are safe because all per-call state is
// call-local.
type AsymmetricKeyEngine interface {
	// GenerateKeyPair generates a fresh key pair at the configured size.
	// Encrypt, Decrypt and the export operations trigger it lazily when
	// no key exists, so calling it explicitly is optional.
	GenerateKeyPair() error

	// KeySize returns the modulus bit length rounded up to the next
	// multiple of 8 once a key exists, otherwise the requested size.
	// Unlike the cryptographic operations, the three state queries stay
	// callable after Close: a closed engine holds no key, so KeySize
	// falls back to the requested size, PublicOnly reports true and
	// CRTAvailable reports true.
	KeySize() int

	// PublicOnly reports whether the engine holds no private exponent.
	PublicOnly() bool

	// CRTAvailable reports whether private operations will take the CRT
	// path: true while no key exists yet (generation always produces CRT
	// parameters) and true once a complete CRT set is held.
	CRTAvailable() bool

	// Encrypt computes m^e mod n over the input interpreted as a
	// big-endian unsigned integer. The caller guarantees m < n.
	Encrypt(data []byte) ([]byte, error)

	// Decrypt computes the private-key primitive c^d mod n, via CRT when
	// the parameters allow and with exponent blinding unless disabled.
	// It serves both decryption and raw signature production; caller
	// intent is carried by padding, which is out of scope here.
	Decrypt(data []byte) ([]byte, error)

	// ImportParameters replaces the key material wholesale. Modulus and
	// Exponent are mandatory; all other fields are optional and copied
	// without cross-validation.
	ImportParameters(params *RSAParameters) error

	// ExportParameters returns the public parameters, plus the private
	// ones when includePrivate is set. D is left-zero-padded to the
	// modulus byte length; CRT fields appear only as a complete group.
	ExportParameters(includePrivate bool) (*RSAParameters, error)

	// ToXMLString serializes the key to the <RSAKeyValue> encoding with
	// base64 element contents, in the fixed order Modulus, Exponent,
	// [P, Q, DP, DQ, InverseQ], [D].
	ToXMLString(includePrivate bool) (string, error)

	// FromXMLString parses the <RSAKeyValue> encoding and imports the
	// contained parameters. A malformed document leaves the engine
	// unchanged.
	FromXMLString(xmlKey string) error

	// Close wipes the key material and marks the engine disposed. It is
	// idempotent; every operation after it fails with ErrDisposed.
	// Omitting Close on an owned engine is a caller bug.
	Close() error
}
