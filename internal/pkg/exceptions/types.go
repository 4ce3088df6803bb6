package exceptions

import (
	"fhirloader-service/internal/pkg/constvars"
	"fmt"
)

var (
	// JSON
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindParseError, 0, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}

	// Bundle files
	ErrReadBundleFile = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, KindIOError, 0, constvars.ErrClientBundleUnreadable, fmt.Sprintf(constvars.ErrDevReadBundleFile, path))
	}
	ErrParseBundleFile = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, KindParseError, 0, constvars.ErrClientBundleMalformed, fmt.Sprintf(constvars.ErrDevParseBundleFile, path))
	}
	ErrReadBundleDirectory = func(err error, dir string) *CustomError {
		return BuildNewCustomError(err, KindIOError, 0, constvars.ErrClientBundleDirUnreadable, fmt.Sprintf(constvars.ErrDevReadBundleDirectory, dir))
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNetworkError, 0, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNetworkError, 0, constvars.ErrClientServerUnreachable, constvars.ErrDevSendHTTPRequest)
	}

	// FHIR
	ErrUpstreamStatus = func(err error, statusCode int) *CustomError {
		switch KindFromStatusCode(statusCode) {
		case KindAuthError:
			return BuildNewCustomError(err, KindAuthError, statusCode, constvars.ErrClientNotAuthorized, constvars.ErrDevFHIRServerAuthRejected)
		case KindRateLimitError:
			return BuildNewCustomError(err, KindRateLimitError, statusCode, constvars.ErrClientRateLimited, constvars.ErrDevFHIRServerRateLimited)
		case KindServerError:
			return BuildNewCustomError(err, KindServerError, statusCode, constvars.ErrClientServerUnavailable, constvars.ErrDevFHIRServerFailure)
		default:
			return BuildNewCustomError(err, KindClientError, statusCode, constvars.ErrClientBundleRejected, constvars.ErrDevFHIRClientRejected)
		}
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, KindParseError, 0, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevFHIRDecodeResponse, resource))
	}
)
