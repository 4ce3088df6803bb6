package metadata

import (
	"context"
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
	metadataFhirClientInstance contracts.MetadataFhirClient
	onceMetadataFhirClient     sync.Once
)

type metadataFhirClient struct {
	BaseUrl string
	Sender  *transport.Sender
	Log     *zap.Logger
}

func NewMetadataFhirClient(baseUrl string, sender *transport.Sender, logger *zap.Logger) contracts.MetadataFhirClient {
	onceMetadataFhirClient.Do(func() {
		client := &metadataFhirClient{
			BaseUrl: baseUrl + "/" + constvars.FhirMetadataEndpoint,
			Sender:  sender,
			Log:     logger,
		}
		metadataFhirClientInstance = client
	})
	return metadataFhirClientInstance
}

func (c *metadataFhirClient) GetCapabilityStatement(ctx context.Context) (*fhir_dto.CapabilityStatement, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("metadataFhirClient.GetCapabilityStatement called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := c.Sender.Send(ctx, constvars.MethodGet, c.BaseUrl, nil)
	if err != nil {
		c.Log.Error("metadataFhirClient.GetCapabilityStatement error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	if !result.Successful() {
		statusErr := exceptions.ErrUpstreamStatus(nil, result.StatusCode)
		c.Log.Error("metadataFhirClient.GetCapabilityStatement upstream rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, result.StatusCode),
			zap.Error(statusErr),
		)
		return nil, result.StatusCode, statusErr
	}

	// A 2xx with an undecodable body still proves the endpoint is reachable.
	capabilityStatement := new(fhir_dto.CapabilityStatement)
	if err := json.Unmarshal(result.Body, capabilityStatement); err != nil {
		c.Log.Warn("metadataFhirClient.GetCapabilityStatement error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return &fhir_dto.CapabilityStatement{}, result.StatusCode, nil
	}

	c.Log.Info("metadataFhirClient.GetCapabilityStatement succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return capabilityStatement, result.StatusCode, nil
}
