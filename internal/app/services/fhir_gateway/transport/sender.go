package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"
	"fhirloader-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RetryPolicy bounds the attempt loop for transient upstream failures.
// MaxAttempts counts every try including the first one. The wait before
// retry n is BackoffBase doubled n-1 times.
type RetryPolicy struct {
	MaxAttempts       int
	BackoffBase       time.Duration
	PerAttemptTimeout time.Duration
}

// SendResult is the final upstream response, whatever its status. Callers
// classify non-2xx statuses themselves.
type SendResult struct {
	StatusCode int
	Body       []byte
}

func (r *SendResult) Successful() bool {
	return r.StatusCode >= constvars.StatusOK && r.StatusCode < constvars.StatusMultipleChoices
}

// Sender issues authenticated FHIR requests and retries the transient
// failure classes: network errors, 429 and 5xx statuses. Other statuses are
// returned to the caller after the first attempt.
type Sender struct {
	clientID     string
	clientSecret string
	retryPolicy  RetryPolicy
	httpClient   *http.Client
	log          *zap.Logger
}

func NewSender(clientID, clientSecret string, retryPolicy RetryPolicy, logger *zap.Logger) *Sender {
	if retryPolicy.MaxAttempts < 1 {
		retryPolicy.MaxAttempts = 1
	}
	return &Sender{
		clientID:     clientID,
		clientSecret: clientSecret,
		retryPolicy:  retryPolicy,
		httpClient:   &http.Client{},
		log:          logger,
	}
}

// Send performs the request, retrying per the policy. It returns the final
// response for any status the server produced, or the last network-level
// error when no response was obtainable.
func (s *Sender) Send(ctx context.Context, method, url string, body []byte) (*SendResult, error) {
	requestID := utils.GetRequestID(ctx)

	maxAttempts := s.retryPolicy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr *exceptions.CustomError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := s.backoffBefore(attempt)
			s.log.Warn("fhirSender.Send retrying after transient failure",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingURLKey, url),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Int(constvars.LoggingMaxAttemptsKey, maxAttempts),
				zap.Duration(constvars.LoggingBackoffKey, backoff),
			)
			if err := sleepContext(ctx, backoff); err != nil {
				if lastErr != nil {
					return nil, lastErr
				}
				return nil, exceptions.ErrSendHTTPRequest(err)
			}
		}

		result, customErr := s.sendOnce(ctx, method, url, body, requestID)
		if customErr != nil {
			lastErr = customErr
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		if result.Successful() || !exceptions.KindFromStatusCode(result.StatusCode).Retryable() || attempt == maxAttempts {
			return result, nil
		}

		s.log.Warn("fhirSender.Send transient upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, url),
			zap.Int(constvars.LoggingStatusCodeKey, result.StatusCode),
			zap.Int(constvars.LoggingAttemptKey, attempt),
		)
		lastErr = nil
	}

	s.log.Error("fhirSender.Send retries exhausted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingURLKey, url),
		zap.Int(constvars.LoggingMaxAttemptsKey, maxAttempts),
		zap.Error(lastErr),
	)
	return nil, lastErr
}

func (s *Sender) sendOnce(ctx context.Context, method, url string, body []byte, requestID string) (*SendResult, *exceptions.CustomError) {
	attemptCtx := ctx
	if s.retryPolicy.PerAttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.retryPolicy.PerAttemptTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, url, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderUserAgent, constvars.AppUserAgent)
	req.Header.Set(constvars.HeaderCFAccessClientID, s.clientID)
	req.Header.Set(constvars.HeaderCFAccessClientSecret, s.clientSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error("fhirSender.Send error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, url),
			zap.String(constvars.LoggingMethodKey, method),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Error("fhirSender.Send error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, url),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	return &SendResult{StatusCode: resp.StatusCode, Body: bodyBytes}, nil
}

// backoffBefore returns the wait preceding the given attempt: BackoffBase
// for attempt 2, then doubling for each attempt after that.
func (s *Sender) backoffBefore(attempt int) time.Duration {
	return s.retryPolicy.BackoffBase << (attempt - 2)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
