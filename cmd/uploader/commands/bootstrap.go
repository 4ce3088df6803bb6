package commands

import (
	"fhirloader-service/internal/app/config"
	"fhirloader-service/internal/app/contracts"
	"fhirloader-service/internal/app/drivers/logger"
	"fhirloader-service/internal/app/services/core/uploads"
	"fhirloader-service/internal/app/services/fhir_gateway/bundles"
	"fhirloader-service/internal/app/services/fhir_gateway/metadata"
	"fhirloader-service/internal/app/services/fhir_gateway/patients"
	"fhirloader-service/internal/app/services/fhir_gateway/transport"
	"fhirloader-service/internal/pkg/dto/responses"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

func newBootstrap() (*config.Bootstrap, error) {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	applyFlagOverrides(internalConfig)

	if err := internalConfig.Validate(); err != nil {
		return nil, err
	}

	if internalConfig.Uploader.PlainOutput {
		pterm.DisableColor()
	}

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	log.WithFields(logrus.Fields{
		"version": internalConfig.App.Version,
		"env":     internalConfig.App.Env,
	}).Info("fhirloader configured")

	return &config.Bootstrap{
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, nil
}

// applyFlagOverrides lets command line flags win over environment values.
// Sentinel defaults (empty string, zero, negative) mean "not set".
func applyFlagOverrides(internalConfig *config.InternalConfig) {
	if flagHostname != "" {
		internalConfig.FHIR.Hostname = flagHostname
	}
	if flagClientID != "" {
		internalConfig.FHIR.ClientID = flagClientID
	}
	if flagClientSecret != "" {
		internalConfig.FHIR.ClientSecret = flagClientSecret
	}
	if flagPlain {
		internalConfig.Uploader.PlainOutput = true
	}
	if flagBatchSize > 0 {
		internalConfig.Uploader.BatchSize = flagBatchSize
	}
	if flagDelay >= 0 {
		internalConfig.Uploader.Delay = time.Duration(flagDelay * float64(time.Second))
	}
}

func newUploadUsecase(bootstrap *config.Bootstrap, progress contracts.ProgressEmitter) contracts.UploadUsecase {
	internalConfig := bootstrap.InternalConfig
	baseUrl := internalConfig.FHIR.BaseURL()

	retryPolicy := transport.RetryPolicy{
		MaxAttempts: internalConfig.Uploader.MaxAttempts,
		BackoffBase: internalConfig.Uploader.BackoffBase,
	}

	// FHIR gateway. Each endpoint gets its own sender so reads and bundle
	// submissions keep separate per-attempt timeouts.
	metadataPolicy := retryPolicy
	metadataPolicy.PerAttemptTimeout = internalConfig.Uploader.MetadataTimeout
	metadataSender := transport.NewSender(internalConfig.FHIR.ClientID, internalConfig.FHIR.ClientSecret, metadataPolicy, bootstrap.ZapLogger)
	metadataFhirClient := metadata.NewMetadataFhirClient(baseUrl, metadataSender, bootstrap.ZapLogger)

	bundlePolicy := retryPolicy
	bundlePolicy.PerAttemptTimeout = internalConfig.Uploader.UploadTimeout
	bundleSender := transport.NewSender(internalConfig.FHIR.ClientID, internalConfig.FHIR.ClientSecret, bundlePolicy, bootstrap.ZapLogger)
	bundleFhirClient := bundles.NewBundleFhirClient(baseUrl, bundleSender, bootstrap.ZapLogger)

	searchPolicy := retryPolicy
	searchPolicy.PerAttemptTimeout = internalConfig.Uploader.SearchTimeout
	searchSender := transport.NewSender(internalConfig.FHIR.ClientID, internalConfig.FHIR.ClientSecret, searchPolicy, bootstrap.ZapLogger)
	patientFhirClient := patients.NewPatientFhirClient(baseUrl, searchSender, bootstrap.ZapLogger)

	// Uploads
	return uploads.NewUploadUsecase(
		metadataFhirClient,
		bundleFhirClient,
		patientFhirClient,
		internalConfig,
		progress,
		bootstrap.ZapLogger,
	)
}

func printConnectionCheck(check *responses.ConnectionCheck) error {
	if !check.Connected {
		pterm.Error.Printf("Connection failed (%s): %s\n", check.ErrorKind, check.ErrorMessage)
		pterm.Println("Check that:")
		pterm.Println("  1. The server hostname is correct")
		pterm.Println("  2. The client id and client secret are valid")
		pterm.Println("  3. The network path to the server is open")
		return fmt.Errorf("cannot connect to FHIR server: %s", check.ErrorMessage)
	}

	pterm.Success.Println("Successfully connected to FHIR server")
	pterm.Printf("  Server: %s %s\n", check.ServerName, check.ServerVersion)
	pterm.Printf("  FHIR version: %s\n", check.FhirVersion)
	return nil
}
