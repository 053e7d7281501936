package keys

import "errors"

var (
	// ErrDisposed is returned by any operation invoked after Close.
	ErrDisposed = errors.New("keys: engine disposed")

	// ErrMissingParameter is returned when a mandatory key parameter is
	// absent: import without a modulus or exponent, or private export
	// without a private exponent.
	ErrMissingParameter = errors.New("keys: missing parameter")

	// ErrInvalidKeySize is returned when a requested key size is outside
	// 384..16384 bits or not a multiple of 8.
	ErrInvalidKeySize = errors.New("keys: invalid key size")

	// ErrMalformedKeyXML is returned when an XML key document cannot be
	// parsed. The engine state is left unchanged.
	ErrMalformedKeyXML = errors.New("keys: malformed key XML")
)

// IsDisposed returns true if the error is or wraps ErrDisposed.
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}

// IsMissingParameter returns true if the error is or wraps ErrMissingParameter.
func IsMissingParameter(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}

// IsInvalidKeySize returns true if the error is or wraps ErrInvalidKeySize.
func IsInvalidKeySize(err error) bool {
	return errors.Is(err, ErrInvalidKeySize)
}

// IsMalformedKeyXML returns true if the error is or wraps ErrMalformedKeyXML.
func IsMalformedKeyXML(err error) bool {
	return errors.Is(err, ErrMalformedKeyXML)
}
