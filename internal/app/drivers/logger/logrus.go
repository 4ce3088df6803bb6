package logger

import (
	"fhirloader-service/internal/app/config"
	"fhirloader-service/internal/pkg/constvars"
	"os"

	"github.com/sirupsen/logrus"
)

func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	switch internalConfig.App.Env {
	case constvars.EnvProduction:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	return logger
}
