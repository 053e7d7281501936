// Package main is the entry point for the rsa-key-cli application.
// It initializes the root command, registers the RSA key commands and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"rsa_key_service/cmd/rsa-key-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rsa-key-cli",
		Short: "RSA key engine CLI tool",
		Long: `rsa-key-cli exercises the raw RSA key engine: key-pair generation,
the textbook encryption/decryption primitives and the XML key-exchange
encoding. The primitives are unpadded; callers are responsible for any
padding scheme before encrypting real payloads.`,
	}

	if err := commands.InitRSACommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
