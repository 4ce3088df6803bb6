package responses

import "fhirloader-service/internal/pkg/exceptions"

type ConnectionCheck struct {
	Connected     bool                 `json:"connected"`
	StatusCode    int                  `json:"status_code,omitempty"`
	ServerName    string               `json:"server_name,omitempty"`
	ServerVersion string               `json:"server_version,omitempty"`
	FhirVersion   string               `json:"fhir_version,omitempty"`
	ErrorKind     exceptions.ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage  string               `json:"error_message,omitempty"`
}
