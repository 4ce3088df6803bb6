package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Logger         *logrus.Logger
		ZapLogger      *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App      App
		FHIR     FHIR
		Uploader Uploader
	}

	DriverConfig struct {
		Logger Logger
	}

	App struct {
		Env     string
		Version string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	FHIR struct {
		Hostname     string `validate:"required,hostname"`
		BasePath     string `validate:"required"`
		ClientID     string `validate:"required"`
		ClientSecret string `validate:"required"`
	}

	Uploader struct {
		BundleDir       string        `validate:"required"`
		BatchSize       int           `validate:"min=1"`
		Delay           time.Duration `validate:"min=0"`
		MaxAttempts     int           `validate:"min=1"`
		BackoffBase     time.Duration `validate:"min=0"`
		MetadataTimeout time.Duration `validate:"min=0"`
		UploadTimeout   time.Duration `validate:"min=0"`
		SearchTimeout   time.Duration `validate:"min=0"`
		PlainOutput     bool
	}
)
