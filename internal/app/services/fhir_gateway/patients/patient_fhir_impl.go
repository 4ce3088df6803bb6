package patients

import (
	"context"
	"fhirloader-service/internal/app/contracts"
	"fhirloader-service/internal/app/services/fhir_gateway/transport"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"
	"fhirloader-service/internal/pkg/fhir_dto"
	"net/url"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	patientFhirClientInstance contracts.PatientFhirClient
	oncePatientFhirClient     sync.Once
)

type patientFhirClient struct {
	BaseUrl string
	Sender  *transport.Sender
	Log     *zap.Logger
}

func NewPatientFhirClient(baseUrl string, sender *transport.Sender, logger *zap.Logger) contracts.PatientFhirClient {
	oncePatientFhirClient.Do(func() {
		client := &patientFhirClient{
			BaseUrl: baseUrl + "/" + constvars.ResourcePatient,
			Sender:  sender,
			Log:     logger,
		}
		patientFhirClientInstance = client
	})
	return patientFhirClientInstance
}

func (c *patientFhirClient) SearchPatients(ctx context.Context, params url.Values) (*fhir_dto.FHIRBundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	searchUrl := c.BaseUrl
	if encoded := params.Encode(); encoded != "" {
		searchUrl = c.BaseUrl + "?" + encoded
	}

	result, err := c.Sender.Send(ctx, constvars.MethodGet, searchUrl, nil)
	if err != nil {
		c.Log.Error("patientFhirClient.SearchPatients error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !result.Successful() {
		statusErr := exceptions.ErrUpstreamStatus(nil, result.StatusCode)
		c.Log.Error("patientFhirClient.SearchPatients upstream rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, result.StatusCode),
			zap.Error(statusErr),
		)
		return nil, statusErr
	}

	searchSet := new(fhir_dto.FHIRBundle)
	if err := json.Unmarshal(result.Body, searchSet); err != nil {
		c.Log.Error("patientFhirClient.SearchPatients error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return searchSet, nil
}
