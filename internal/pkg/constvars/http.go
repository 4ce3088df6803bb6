package constvars

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodConnect = "CONNECT"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
)

const (
	MIMETextPlain           = "text/plain"
	MIMEApplicationXML      = "application/xml"
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationFHIRJSON = "application/fhir+json"
	MIMEApplicationFHIRXML  = "application/fhir+xml"

	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusContinue           = 100
	StatusSwitchingProtocols = 101

	StatusOK             = 200
	StatusCreated        = 201
	StatusAccepted       = 202
	StatusNoContent      = 204
	StatusPartialContent = 206

	StatusMultipleChoices   = 300
	StatusMovedPermanently  = 301
	StatusFound             = 302
	StatusSeeOther          = 303
	StatusNotModified       = 304
	StatusTemporaryRedirect = 307
	StatusPermanentRedirect = 308

	StatusBadRequest                  = 400
	StatusUnauthorized                = 401
	StatusPaymentRequired             = 402
	StatusForbidden                   = 403
	StatusNotFound                    = 404
	StatusMethodNotAllowed            = 405
	StatusNotAcceptable               = 406
	StatusRequestTimeout              = 408
	StatusConflict                    = 409
	StatusGone                        = 410
	StatusPreconditionFailed          = 412
	StatusRequestEntityTooLarge       = 413
	StatusUnsupportedMediaType        = 415
	StatusUnprocessableEntity         = 422
	StatusPreconditionRequired        = 428
	StatusTooManyRequests             = 429
	StatusRequestHeaderFieldsTooLarge = 431

	StatusInternalServerError     = 500
	StatusNotImplemented          = 501
	StatusBadGateway              = 502
	StatusServiceUnavailable      = 503
	StatusGatewayTimeout          = 504
	StatusHTTPVersionNotSupported = 505
)

const (
	HeaderAuthorization  = "Authorization"
	HeaderAccept         = "Accept"
	HeaderAcceptEncoding = "Accept-Encoding"
	HeaderCacheControl   = "Cache-Control"
	HeaderConnection     = "Connection"
	HeaderContentLength  = "Content-Length"
	HeaderContentType    = "Content-Type"
	HeaderHost           = "Host"
	HeaderLocation       = "Location"
	HeaderRetryAfter     = "Retry-After"
	HeaderUserAgent      = "User-Agent"
	HeaderXRequestID     = "X-Request-ID"

	HeaderCFAccessClientID     = "CF-Access-Client-Id"
	HeaderCFAccessClientSecret = "CF-Access-Client-Secret"
)

const (
	SchemeHTTPS = "https"
)
