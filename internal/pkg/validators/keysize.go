// Package validators provides custom go-playground/validator validations
// shared by the configuration layer.
package validators

import (
	"github.com/go-playground/validator/v10"
)

// RSAKeySizeValidation validates an RSA modulus size in bits: 384 through
// 16384 inclusive, in steps of 8.
func RSAKeySizeValidation(fl validator.FieldLevel) bool {
	keySize := fl.Field().Int()
	return ValidRSAKeySize(int(keySize))
}

// ValidRSAKeySize reports whether bits is an allowed RSA key size.
func ValidRSAKeySize(bits int) bool {
	return bits >= 384 && bits <= 16384 && bits%8 == 0
}
