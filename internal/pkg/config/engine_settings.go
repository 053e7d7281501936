package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"rsa_key_service/internal/pkg/validators"
)

// Key size bounds for RSA engines. Allowed sizes are 384 through 16384
// bits in steps of 8; this is the configuration contract the provider
// framework enforces, mirrored here so the engine validates the same
// bound.
const (
	MinRSAKeySize     = 384
	MaxRSAKeySize     = 16384
	RSAKeySizeStep    = 8
	DefaultRSAKeySize = 1024
)

// EngineSettings holds configuration for an RSA key engine.
type EngineSettings struct {
	KeySize  int  `mapstructure:"key_size" validate:"required,rsakeysize"`
	Blinding bool `mapstructure:"blinding"`
}

// DefaultEngineSettings returns settings for a 1024-bit engine with
// blinding enabled. Disabling blinding removes protection against
// timing-based private-exponent recovery and is discouraged.
func DefaultEngineSettings() *EngineSettings {
	return &EngineSettings{
		KeySize:  DefaultRSAKeySize,
		Blinding: true,
	}
}

// Validate checks that all fields in EngineSettings are valid.
func (s *EngineSettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("rsakeysize", validators.RSAKeySizeValidation); err != nil {
		return fmt.Errorf("failed to register key size validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EngineSettings: %w", err)
	}
	return nil
}
