package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
)

const (
	REQUEST_ID_PREFIX = "FHIRLDR_"
)

const (
	AppName      = "fhirloader-service"
	AppUserAgent = "fhirloader-service/1.0"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	ResponseUnknown = "unknown"
)
