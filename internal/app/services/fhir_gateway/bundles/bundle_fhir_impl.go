package bundles

import (
	"context"
	"errors"
	"fhirloader-service/internal/app/contracts"
	"fhirloader-service/internal/app/services/fhir_gateway/transport"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"
	"fhirloader-service/internal/pkg/fhir_dto"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	bundleFhirClientInstance contracts.BundleFhirClient
	onceBundleFhirClient     sync.Once
)

type bundleFhirClient struct {
	BaseUrl string
	Sender  *transport.Sender
	Log     *zap.Logger
}

func NewBundleFhirClient(baseUrl string, sender *transport.Sender, logger *zap.Logger) contracts.BundleFhirClient {
	onceBundleFhirClient.Do(func() {
		client := &bundleFhirClient{
			BaseUrl: baseUrl,
			Sender:  sender,
			Log:     logger,
		}
		bundleFhirClientInstance = client
	})
	return bundleFhirClientInstance
}

func (c *bundleFhirClient) PostTransactionBundle(ctx context.Context, bundle map[string]any) (*fhir_dto.FHIRBundle, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("bundleFhirClient.PostTransactionBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrCannotMarshalJSON(err)
	}

	result, err := c.Sender.Send(ctx, constvars.MethodPost, c.BaseUrl, bundleJSON)
	if err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	if !result.Successful() {
		var fhirErrorIssue error
		var outcome fhir_dto.OperationOutcome
		if err := json.Unmarshal(result.Body, &outcome); err == nil && outcome.FirstDiagnostics() != "" {
			fhirErrorIssue = errors.New(outcome.FirstDiagnostics())
		}
		statusErr := exceptions.ErrUpstreamStatus(fhirErrorIssue, result.StatusCode)
		c.Log.Error("bundleFhirClient.PostTransactionBundle FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, result.StatusCode),
			zap.Error(statusErr),
		)
		return nil, result.StatusCode, statusErr
	}

	// A 2xx means the transaction committed even when the response body
	// cannot be decoded as a bundle.
	responseBundle := new(fhir_dto.FHIRBundle)
	if err := json.Unmarshal(result.Body, responseBundle); err != nil {
		c.Log.Warn("bundleFhirClient.PostTransactionBundle error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return &fhir_dto.FHIRBundle{}, result.StatusCode, nil
	}

	c.Log.Info("bundleFhirClient.PostTransactionBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, result.StatusCode),
	)
	return responseBundle, result.StatusCode, nil
}
