package constvars

const (
	ResourcePatient             = "Patient"
	ResourceObservation         = "Observation"
	ResourceMedicationStatement = "MedicationStatement"
	ResourceBundle              = "Bundle"
)

const (
	FhirBundleTypeTransaction         = "transaction"
	FhirBundleTypeTransactionResponse = "transaction-response"
	FhirBundleTypeSearchset           = "searchset"
)

const (
	FhirMetadataEndpoint = "metadata"
)

const (
	FhirSearchCountParam = "_count"
)

const (
	FhirVersionUnknown    = "Unknown"
	FhirServerNameUnknown = "Unknown"
)
