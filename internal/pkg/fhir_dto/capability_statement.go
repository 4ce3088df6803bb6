package fhir_dto

type CapabilityStatement struct {
	ResourceType string                      `json:"resourceType"`
	Status       string                      `json:"status,omitempty"`
	FhirVersion  string                      `json:"fhirVersion"`
	Software     CapabilityStatementSoftware `json:"software"`
}

type CapabilityStatementSoftware struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}
