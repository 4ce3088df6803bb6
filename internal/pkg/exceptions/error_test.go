package exceptions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromStatusCode(t *testing.T) {
	t.Run("Auth Statuses", func(t *testing.T) {
		assert.Equal(t, KindAuthError, KindFromStatusCode(401))
		assert.Equal(t, KindAuthError, KindFromStatusCode(403))
	})

	t.Run("Rate Limit Status", func(t *testing.T) {
		assert.Equal(t, KindRateLimitError, KindFromStatusCode(429))
	})

	t.Run("Server Statuses", func(t *testing.T) {
		assert.Equal(t, KindServerError, KindFromStatusCode(500))
		assert.Equal(t, KindServerError, KindFromStatusCode(502))
		assert.Equal(t, KindServerError, KindFromStatusCode(503))
		assert.Equal(t, KindServerError, KindFromStatusCode(504))
	})

	t.Run("Other Client Statuses", func(t *testing.T) {
		assert.Equal(t, KindClientError, KindFromStatusCode(400))
		assert.Equal(t, KindClientError, KindFromStatusCode(404))
		assert.Equal(t, KindClientError, KindFromStatusCode(409))
		assert.Equal(t, KindClientError, KindFromStatusCode(422))
	})
}

func TestErrorKindRetryable(t *testing.T) {
	t.Run("Retryable Kinds", func(t *testing.T) {
		assert.True(t, KindNetworkError.Retryable())
		assert.True(t, KindRateLimitError.Retryable())
		assert.True(t, KindServerError.Retryable())
	})

	t.Run("Non Retryable Kinds", func(t *testing.T) {
		assert.False(t, KindAuthError.Retryable())
		assert.False(t, KindClientError.Retryable())
		assert.False(t, KindParseError.Retryable())
		assert.False(t, KindIOError.Retryable())
	})
}

func TestUpstreamStatusConstructor(t *testing.T) {
	t.Run("Unauthorized", func(t *testing.T) {
		customErr := ErrUpstreamStatus(errors.New("token rejected"), 401)

		assert.Equal(t, KindAuthError, customErr.Kind)
		assert.Equal(t, 401, customErr.StatusCode)
		assert.False(t, customErr.Retryable())
		assert.Contains(t, customErr.DevMessage, "token rejected")
	})

	t.Run("Too Many Requests", func(t *testing.T) {
		customErr := ErrUpstreamStatus(nil, 429)

		assert.Equal(t, KindRateLimitError, customErr.Kind)
		assert.Equal(t, 429, customErr.StatusCode)
		assert.True(t, customErr.Retryable())
	})

	t.Run("Server Failure", func(t *testing.T) {
		customErr := ErrUpstreamStatus(nil, 503)

		assert.Equal(t, KindServerError, customErr.Kind)
		assert.True(t, customErr.Retryable())
	})

	t.Run("Other Client Failure", func(t *testing.T) {
		customErr := ErrUpstreamStatus(nil, 404)

		assert.Equal(t, KindClientError, customErr.Kind)
		assert.False(t, customErr.Retryable())
	})
}

func TestCustomErrorLocation(t *testing.T) {
	customErr := ErrReadBundleFile(errors.New("permission denied"), "/tmp/b.json")

	assert.Equal(t, KindIOError, customErr.Kind)
	assert.Contains(t, customErr.DevMessage, "/tmp/b.json")
	assert.Contains(t, customErr.DevMessage, "permission denied")
	assert.Contains(t, customErr.Location.File, "error_test.go")
	assert.Contains(t, customErr.Error(), "error_test.go")
}

func TestAsCustomError(t *testing.T) {
	t.Run("Custom Error", func(t *testing.T) {
		customErr := ErrParseBundleFile(errors.New("unexpected end of JSON input"), "b.json")

		unwrapped := AsCustomError(customErr)

		assert.NotNil(t, unwrapped)
		assert.Equal(t, KindParseError, unwrapped.Kind)
	})

	t.Run("Plain Error", func(t *testing.T) {
		assert.Nil(t, AsCustomError(errors.New("plain")))
	})

	t.Run("Nil Error", func(t *testing.T) {
		assert.Nil(t, AsCustomError(nil))
	})
}
