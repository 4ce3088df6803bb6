package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingServiceKey     = "service"
	LoggingDurationKey    = "duration"
	LoggingStatusCodeKey  = "status_code"
	LoggingAttemptKey     = "attempt"
	LoggingMaxAttemptsKey = "max_attempts"
	LoggingBackoffKey     = "backoff"
	LoggingURLKey         = "url"
	LoggingMethodKey      = "method"
	LoggingFileKey        = "file"
	LoggingDirectoryKey   = "directory"
	LoggingErrorKindKey   = "error_kind"
	LoggingAttemptedKey   = "attempted"
	LoggingSucceededKey   = "succeeded"
	LoggingFailedKey      = "failed"
)
