package exceptions

import (
	"errors"
	"fhirloader-service/internal/pkg/constvars"
	"fmt"
	"runtime"
)

// ErrorKind classifies a failure for retry decisions and run statistics.
type ErrorKind string

const (
	KindNetworkError   ErrorKind = "NetworkError"
	KindAuthError      ErrorKind = "AuthError"
	KindRateLimitError ErrorKind = "RateLimitError"
	KindServerError    ErrorKind = "ServerError"
	KindClientError    ErrorKind = "ClientError"
	KindParseError     ErrorKind = "ParseError"
	KindIOError        ErrorKind = "IOError"
)

// Retryable reports whether a failure of this kind is transient. Only
// network failures, rate limiting and server-side errors qualify.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindNetworkError, KindRateLimitError, KindServerError:
		return true
	default:
		return false
	}
}

func (k ErrorKind) String() string {
	return string(k)
}

// KindFromStatusCode maps a non-2xx HTTP status to its error kind. Statuses
// outside the 4xx/5xx ranges fall through to KindClientError.
func KindFromStatusCode(statusCode int) ErrorKind {
	switch {
	case statusCode == constvars.StatusUnauthorized || statusCode == constvars.StatusForbidden:
		return KindAuthError
	case statusCode == constvars.StatusTooManyRequests:
		return KindRateLimitError
	case statusCode >= constvars.StatusInternalServerError:
		return KindServerError
	default:
		return KindClientError
	}
}

type CustomError struct {
	Kind          ErrorKind `json:"kind"`
	StatusCode    int       `json:"status_code"`
	ClientMessage string    `json:"message"`
	DevMessage    string    `json:"-"`
	Location      Location  `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

// Retryable reports whether the attempt that produced this error may be
// repeated.
func (e *CustomError) Retryable() bool {
	return e.Kind.Retryable()
}

func BuildNewCustomError(err error, kind ErrorKind, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		Kind:          kind,
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

// AsCustomError unwraps err into a *CustomError, or returns nil when err
// carries no classification.
func AsCustomError(err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}
	return nil
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
