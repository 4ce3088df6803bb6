package config

import (
	"fmt"
	"strings"

	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"
	"fhirloader-service/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "fhirloader.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "fhirloader_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:     utils.GetEnvString("APP_ENV", constvars.EnvDevelopment),
			Version: utils.GetEnvString("APP_VERSION", "v1.0"),
		},
		FHIR: FHIR{
			Hostname:     utils.GetEnvString("FHIR_HOSTNAME", ""),
			BasePath:     utils.GetEnvString("FHIR_BASE_PATH", "/fhir/R4"),
			ClientID:     utils.GetEnvString("FHIR_CLIENT_ID", ""),
			ClientSecret: utils.GetEnvString("FHIR_CLIENT_SECRET", ""),
		},
		Uploader: Uploader{
			BundleDir:       utils.GetEnvString("UPLOADER_BUNDLE_DIR", constvars.UploaderDefaultBundleDir),
			BatchSize:       utils.GetEnvInt("UPLOADER_BATCH_SIZE", constvars.UploaderDefaultBatchSize),
			Delay:           utils.GetEnvSeconds("UPLOADER_DELAY_SECONDS", constvars.UploaderDefaultDelaySeconds),
			MaxAttempts:     utils.GetEnvInt("UPLOADER_MAX_ATTEMPTS", constvars.UploaderDefaultMaxAttempts),
			BackoffBase:     utils.GetEnvSeconds("UPLOADER_BACKOFF_BASE_SECONDS", constvars.UploaderDefaultBackoffBaseSeconds),
			MetadataTimeout: utils.GetEnvSeconds("UPLOADER_METADATA_TIMEOUT_SECONDS", constvars.UploaderDefaultMetadataTimeoutSecond),
			UploadTimeout:   utils.GetEnvSeconds("UPLOADER_UPLOAD_TIMEOUT_SECONDS", constvars.UploaderDefaultUploadTimeoutSecond),
			SearchTimeout:   utils.GetEnvSeconds("UPLOADER_SEARCH_TIMEOUT_SECONDS", constvars.UploaderDefaultSearchTimeoutSecond),
			PlainOutput:     utils.GetEnvBool("UPLOADER_PLAIN_OUTPUT", false),
		},
	}
}

// Validate rejects a configuration that cannot produce a working uploader.
// Missing server coordinates get a dedicated message naming the environment
// variables an operator has to set.
func (c *InternalConfig) Validate() error {
	if c.FHIR.Hostname == "" || c.FHIR.ClientID == "" || c.FHIR.ClientSecret == "" {
		return fmt.Errorf("%s: %s", constvars.ErrDevConfigValidation, constvars.ErrDevMissingFHIRHost)
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%s: %s", constvars.ErrDevConfigValidation, exceptions.FormatAllValidationErrors(err))
	}
	return nil
}

// BaseURL builds the HTTPS root every FHIR request is sent to.
func (f FHIR) BaseURL() string {
	basePath := f.BasePath
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return fmt.Sprintf("%s://%s%s", constvars.SchemeHTTPS, f.Hostname, basePath)
}
