package uploads

import (
	"context"
	"fhirloader-service/internal/app/config"
	"fhirloader-service/internal/app/contracts"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/dto/responses"
	"fhirloader-service/internal/pkg/exceptions"
	"fhirloader-service/internal/pkg/utils"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type uploadUsecase struct {
	MetadataFhirClient contracts.MetadataFhirClient
	BundleFhirClient   contracts.BundleFhirClient
	PatientFhirClient  contracts.PatientFhirClient
	InternalConfig     *config.InternalConfig
	Progress           contracts.ProgressEmitter
	Pacer              *rate.Limiter
	Log                *zap.Logger
}

var (
	uploadUsecaseInstance contracts.UploadUsecase
	onceUploadUsecase     sync.Once
)

func NewUploadUsecase(
	metadataFhirClient contracts.MetadataFhirClient,
	bundleFhirClient contracts.BundleFhirClient,
	patientFhirClient contracts.PatientFhirClient,
	internalConfig *config.InternalConfig,
	progress contracts.ProgressEmitter,
	logger *zap.Logger,
) contracts.UploadUsecase {
	onceUploadUsecase.Do(func() {
		instance := &uploadUsecase{
			MetadataFhirClient: metadataFhirClient,
			BundleFhirClient:   bundleFhirClient,
			PatientFhirClient:  patientFhirClient,
			InternalConfig:     internalConfig,
			Progress:           progress,
			// The pacer spaces consecutive uploads one delay apart and never
			// sleeps after the last one.
			Pacer: rate.NewLimiter(rate.Every(internalConfig.Uploader.Delay), 1),
			Log:   logger,
		}
		uploadUsecaseInstance = instance
	})
	return uploadUsecaseInstance
}

func (uc *uploadUsecase) TestConnection(ctx context.Context) *responses.ConnectionCheck {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("uploadUsecase.TestConnection called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	statement, statusCode, err := uc.MetadataFhirClient.GetCapabilityStatement(ctx)
	if err != nil {
		uc.Log.Error("uploadUsecase.TestConnection error fetching capability statement",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Error(err),
		)
		check := &responses.ConnectionCheck{StatusCode: statusCode}
		check.ErrorKind, check.ErrorMessage = classifyFailure(err)
		return check
	}

	check := &responses.ConnectionCheck{
		Connected:     true,
		StatusCode:    statusCode,
		ServerName:    statement.Software.Name,
		ServerVersion: statement.Software.Version,
		FhirVersion:   statement.FhirVersion,
	}
	if check.ServerName == "" {
		check.ServerName = constvars.FhirServerNameUnknown
	}
	if check.ServerVersion == "" {
		check.ServerVersion = constvars.FhirVersionUnknown
	}
	if check.FhirVersion == "" {
		check.FhirVersion = constvars.FhirVersionUnknown
	}

	uc.Log.Info("uploadUsecase.TestConnection succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
	)
	return check
}

func (uc *uploadUsecase) UploadBundle(ctx context.Context, bundle map[string]any) *responses.UploadResult {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("uploadUsecase.UploadBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result := &responses.UploadResult{}

	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		marshalErr := exceptions.ErrCannotMarshalJSON(err)
		uc.Log.Error("uploadUsecase.UploadBundle error marshaling bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(marshalErr),
		)
		result.ErrorKind = marshalErr.Kind
		result.ErrorMessage = marshalErr.DevMessage
		return result
	}
	result.ResourceCounts = utils.CountResourceTypes(bundleJSON)

	_, statusCode, err := uc.BundleFhirClient.PostTransactionBundle(ctx, bundle)
	result.StatusCode = statusCode
	if err != nil {
		result.ErrorKind, result.ErrorMessage = classifyFailure(err)
		uc.Log.Error("uploadUsecase.UploadBundle error posting transaction bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.String(constvars.LoggingErrorKindKey, string(result.ErrorKind)),
			zap.Error(err),
		)
		return result
	}

	result.Success = true
	uc.Log.Info("uploadUsecase.UploadBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
	)
	return result
}

func (uc *uploadUsecase) UploadBundleFile(ctx context.Context, path string) *responses.UploadResult {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("uploadUsecase.UploadBundleFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileKey, path),
	)

	fileName := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		readErr := exceptions.ErrReadBundleFile(err, path)
		uc.Log.Error("uploadUsecase.UploadBundleFile error reading bundle file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileKey, path),
			zap.Error(readErr),
		)
		return &responses.UploadResult{
			File:         fileName,
			ErrorKind:    readErr.Kind,
			ErrorMessage: readErr.DevMessage,
		}
	}

	bundle := make(map[string]any)
	if err := json.Unmarshal(data, &bundle); err != nil {
		parseErr := exceptions.ErrParseBundleFile(err, path)
		uc.Log.Error("uploadUsecase.UploadBundleFile error parsing bundle file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileKey, path),
			zap.Error(parseErr),
		)
		return &responses.UploadResult{
			File:         fileName,
			ErrorKind:    parseErr.Kind,
			ErrorMessage: parseErr.DevMessage,
		}
	}

	result := uc.UploadBundle(ctx, bundle)
	result.File = fileName
	return result
}

func (uc *uploadUsecase) UploadDirectory(ctx context.Context, dir string) (*responses.UploadStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("uploadUsecase.UploadDirectory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDirectoryKey, dir),
	)

	if _, err := os.Stat(dir); err != nil {
		dirErr := exceptions.ErrReadBundleDirectory(err, dir)
		uc.Log.Error("uploadUsecase.UploadDirectory error reading directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDirectoryKey, dir),
			zap.Error(dirErr),
		)
		return nil, dirErr
	}

	// filepath.Glob returns matches in lexical order, so upload order is
	// deterministic.
	files, err := filepath.Glob(filepath.Join(dir, constvars.UploaderBundleGlobPattern))
	if err != nil {
		dirErr := exceptions.ErrReadBundleDirectory(err, dir)
		uc.Log.Error("uploadUsecase.UploadDirectory error listing bundle files",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDirectoryKey, dir),
			zap.Error(dirErr),
		)
		return nil, dirErr
	}

	total := len(files)
	stats := responses.NewUploadStats()
	start := time.Now()

	uc.Progress.EmitRunStart(total, dir)

	for i, file := range files {
		if err := uc.Pacer.Wait(ctx); err != nil {
			uc.Log.Warn("uploadUsecase.UploadDirectory canceled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingAttemptedKey, stats.Attempted),
				zap.Error(err),
			)
			stats.Duration = time.Since(start)
			return stats, err
		}

		fileCtx := utils.WithRequestID(ctx, utils.GenerateRequestID())

		uc.Progress.EmitFileStart(i+1, total, filepath.Base(file))
		result := uc.UploadBundleFile(fileCtx, file)
		stats.Record(result)
		uc.Progress.EmitFileResult(i+1, total, result)

		if (i+1)%uc.InternalConfig.Uploader.BatchSize == 0 {
			uc.Progress.EmitBatchProgress(i+1, stats)
		}
	}

	stats.Duration = time.Since(start)
	uc.Progress.EmitSummary(stats)

	uc.Log.Info("uploadUsecase.UploadDirectory completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAttemptedKey, stats.Attempted),
		zap.Int(constvars.LoggingSucceededKey, stats.Succeeded),
		zap.Int(constvars.LoggingFailedKey, stats.Failed),
		zap.Duration(constvars.LoggingDurationKey, stats.Duration),
	)
	return stats, nil
}

func (uc *uploadUsecase) SearchPatients(ctx context.Context, params url.Values) (*responses.PatientSearch, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("uploadUsecase.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	searchSet, err := uc.PatientFhirClient.SearchPatients(ctx, params)
	if err != nil {
		uc.Log.Error("uploadUsecase.SearchPatients error searching patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	search := &responses.PatientSearch{
		Total:    searchSet.Total,
		Returned: len(searchSet.Entry),
	}
	uc.Log.Info("uploadUsecase.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return search, nil
}

func classifyFailure(err error) (exceptions.ErrorKind, string) {
	if customErr := exceptions.AsCustomError(err); customErr != nil {
		return customErr.Kind, customErr.DevMessage
	}
	return exceptions.KindNetworkError, err.Error()
}
