package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTestFile writes a fixture file for a test, failing the test on
// any error.
func WriteTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, content, 0o600))
}
