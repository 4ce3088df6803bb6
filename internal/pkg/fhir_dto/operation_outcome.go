package fhir_dto

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics"`
}

// FirstDiagnostics returns the diagnostics of the first issue, or an empty
// string when the outcome carries none.
func (o *OperationOutcome) FirstDiagnostics() string {
	if len(o.Issue) == 0 {
		return ""
	}
	return o.Issue[0].Diagnostics
}
