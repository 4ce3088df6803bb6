package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"oneof":    "must be one of [%s]",
	"hostname": "must be a valid hostname",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientNotAuthorized                 = "the FHIR server rejected the service token"
	ErrClientRateLimited                   = "the FHIR server is rate limiting requests"
	ErrClientServerUnavailable             = "the FHIR server cannot process requests right now"
	ErrClientBundleRejected                = "the FHIR server rejected the bundle"
	ErrClientBundleUnreadable              = "the bundle file cannot be read"
	ErrClientBundleDirUnreadable           = "the bundle directory cannot be read"
	ErrClientBundleMalformed               = "the bundle file is not valid JSON"
	ErrClientServerUnreachable             = "the FHIR server cannot be reached"
	ErrClientInvalidConfiguration          = "the uploader configuration is invalid"
)

// Error messages for developers
const (
	ErrDevInvalidInput      = "invalid input"
	ErrDevCannotMarshalJSON = "cannot convert struct or other data types to JSON"
	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"

	// Uploader messages
	ErrDevReadBundleFile      = "failed to read bundle file %s"
	ErrDevParseBundleFile     = "bundle file %s is not a JSON object"
	ErrDevReadBundleDirectory = "failed to read bundle directory %s"
	ErrDevConfigValidation    = "uploader configuration rejected"
	ErrDevMissingFHIRHost     = "FHIR_HOSTNAME, FHIR_CLIENT_ID and FHIR_CLIENT_SECRET must be set"

	// FHIR server messages
	ErrDevFHIRDecodeResponse     = "failed to decode FHIR %s response from upstream server"
	ErrDevFHIRServerAuthRejected = "upstream server rejected CF Access service token"
	ErrDevFHIRServerRateLimited  = "upstream server responded with 429 Too Many Requests"
	ErrDevFHIRServerFailure      = "upstream server responded with a 5xx status"
	ErrDevFHIRClientRejected     = "upstream server rejected the request with a 4xx status"
)
