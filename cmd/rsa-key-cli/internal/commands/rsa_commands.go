package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rsa_key_service/internal/domain/keys"
	"rsa_key_service/internal/infrastructure/cryptography"
	"rsa_key_service/internal/pkg/config"
	"rsa_key_service/internal/pkg/logger"
)

// RSACommandHandler encapsulates logic for handling RSA key operations via CLI.
type RSACommandHandler struct {
	logger logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging.
func NewRSACommandHandler() (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &RSACommandHandler{
		logger: loggerInstance,
	}, nil
}

// newEngine creates an engine for the given settings. The engine stays
// in-process; keys only leave as the printed XML encodings.
func (commandHandler *RSACommandHandler) newEngine(settings *config.EngineSettings) (keys.AsymmetricKeyEngine, error) {
	return cryptography.NewRSAKeyEngine(settings, commandHandler.logger, nil)
}

// loadEngineFromKeyFile creates an engine and imports the XML key document
// stored at keyFile.
func (commandHandler *RSACommandHandler) loadEngineFromKeyFile(keyFile string, blinding bool) (keys.AsymmetricKeyEngine, error) {
	doc, err := os.ReadFile(filepath.Clean(keyFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}

	settings := config.DefaultEngineSettings()
	settings.Blinding = blinding
	engine, err := commandHandler.newEngine(settings)
	if err != nil {
		return nil, err
	}
	if err := engine.FromXMLString(string(doc)); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return engine, nil
}

// GenerateRSAKeyCmd generates an RSA key pair and prints its XML encoding.
func (commandHandler *RSACommandHandler) GenerateRSAKeyCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	publicOnly, err := cmd.Flags().GetBool("public-only")
	if err != nil {
		return fmt.Errorf("invalid public-only flag: %w", err)
	}

	engine, err := commandHandler.newEngine(&config.EngineSettings{KeySize: keySize, Blinding: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			commandHandler.logger.Warn("failed to close engine: ", err)
		}
	}()

	if err := engine.GenerateKeyPair(); err != nil {
		return err
	}

	doc, err := engine.ToXMLString(!publicOnly)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), doc)
	return nil
}

// EncryptRSACmd runs the raw public-key primitive over base64 input.
func (commandHandler *RSACommandHandler) EncryptRSACmd(cmd *cobra.Command, _ []string) error {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		return fmt.Errorf("invalid key-file flag: %w", err)
	}
	dataBase64, err := cmd.Flags().GetString("data-base64")
	if err != nil {
		return fmt.Errorf("invalid data-base64 flag: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(dataBase64)
	if err != nil {
		return fmt.Errorf("invalid base64 input: %w", err)
	}

	engine, err := commandHandler.loadEngineFromKeyFile(keyFile, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			commandHandler.logger.Warn("failed to close engine: ", err)
		}
	}()

	cipher, err := engine.Encrypt(data)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(cipher))
	return nil
}

// DecryptRSACmd runs the raw private-key primitive over base64 input.
func (commandHandler *RSACommandHandler) DecryptRSACmd(cmd *cobra.Command, _ []string) error {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		return fmt.Errorf("invalid key-file flag: %w", err)
	}
	dataBase64, err := cmd.Flags().GetString("data-base64")
	if err != nil {
		return fmt.Errorf("invalid data-base64 flag: %w", err)
	}
	noBlinding, err := cmd.Flags().GetBool("no-blinding")
	if err != nil {
		return fmt.Errorf("invalid no-blinding flag: %w", err)
	}
	if noBlinding {
		commandHandler.logger.Warn("Blinding disabled: private operations lose timing-attack protection")
	}

	data, err := base64.StdEncoding.DecodeString(dataBase64)
	if err != nil {
		return fmt.Errorf("invalid base64 input: %w", err)
	}

	engine, err := commandHandler.loadEngineFromKeyFile(keyFile, !noBlinding)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			commandHandler.logger.Warn("failed to close engine: ", err)
		}
	}()

	plain, err := engine.Decrypt(data)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(plain))
	return nil
}

// InspectRSAKeyCmd reports key size, private-key presence, CRT
// availability and the scheme identifiers for a stored key.
func (commandHandler *RSACommandHandler) InspectRSAKeyCmd(cmd *cobra.Command, _ []string) error {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		return fmt.Errorf("invalid key-file flag: %w", err)
	}

	engine, err := commandHandler.loadEngineFromKeyFile(keyFile, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			commandHandler.logger.Warn("failed to close engine: ", err)
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "key size:      %d bits\n", engine.KeySize())
	fmt.Fprintf(out, "public only:   %t\n", engine.PublicOnly())
	fmt.Fprintf(out, "crt available: %t\n", engine.CRTAvailable())
	fmt.Fprintf(out, "key exchange:  %s\n", keys.KeyExchangeAlgorithm)
	fmt.Fprintf(out, "signature:     %s\n", keys.SignatureAlgorithm)
	return nil
}

// InitRSACommands registers the RSA key commands with the root command.
func InitRSACommands(rootCmd *cobra.Command) error {
	handler, err := NewRSACommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize RSA command handler: %w", err)
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an RSA key pair and print its XML encoding",
		RunE:  handler.GenerateRSAKeyCmd,
	}
	generateCmd.Flags().Int("key-size", config.DefaultRSAKeySize, "Key size in bits (384-16384, multiple of 8)")
	generateCmd.Flags().Bool("public-only", false, "Print only the public parameters")
	rootCmd.AddCommand(generateCmd)

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Raw RSA public-key operation on base64 data",
		RunE:  handler.EncryptRSACmd,
	}
	encryptCmd.Flags().String("key-file", "", "Path to an XML key document")
	encryptCmd.Flags().String("data-base64", "", "Input data, base64 encoded")
	rootCmd.AddCommand(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Raw RSA private-key operation on base64 data",
		RunE:  handler.DecryptRSACmd,
	}
	decryptCmd.Flags().String("key-file", "", "Path to an XML key document")
	decryptCmd.Flags().String("data-base64", "", "Input data, base64 encoded")
	decryptCmd.Flags().Bool("no-blinding", false, "Disable exponent blinding (discouraged)")
	rootCmd.AddCommand(decryptCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report properties of a stored XML key",
		RunE:  handler.InspectRSAKeyCmd,
	}
	inspectCmd.Flags().String("key-file", "", "Path to an XML key document")
	rootCmd.AddCommand(inspectCmd)

	return nil
}
