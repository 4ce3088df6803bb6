package contracts

import (
	"context"
	"fhirloader-service/internal/pkg/fhir_dto"
	"net/url"
)

type MetadataFhirClient interface {
	GetCapabilityStatement(ctx context.Context) (*fhir_dto.CapabilityStatement, int, error)
}

type BundleFhirClient interface {
	PostTransactionBundle(ctx context.Context, bundle map[string]any) (*fhir_dto.FHIRBundle, int, error)
}

type PatientFhirClient interface {
	SearchPatients(ctx context.Context, params url.Values) (*fhir_dto.FHIRBundle, error)
}
