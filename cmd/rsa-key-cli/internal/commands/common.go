package commands

import (
	"fmt"

	"rsa_key_service/internal/pkg/config"
	"rsa_key_service/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	if err := logger.InitLogger(config.DefaultLoggerSettings()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
