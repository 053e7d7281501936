// Package testutil provides shared helpers for the package test suites.
package testutil

import (
	"testing"

	"rsa_key_service/internal/pkg/config"
	"rsa_key_service/internal/pkg/logger"
)

// SetupTestLogger returns a console logger at error level so routine
// engine logging stays out of test output.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewConsoleLogger(config.LogLevelError)
}
