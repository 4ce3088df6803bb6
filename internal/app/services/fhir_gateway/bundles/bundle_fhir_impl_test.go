package bundles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fhirloader-service/internal/app/services/fhir_gateway/transport"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBundleClient(baseUrl string) *bundleFhirClient {
	return &bundleFhirClient{
		BaseUrl: baseUrl,
		Sender:  transport.NewSender("test-client-id", "test-client-secret", transport.RetryPolicy{MaxAttempts: 1}, zap.NewNop()),
		Log:     zap.NewNop(),
	}
}

func transactionBundle() map[string]any {
	return map[string]any{
		"resourceType": constvars.ResourceBundle,
		"type":         constvars.FhirBundleTypeTransaction,
		"entry": []any{
			map[string]any{
				"resource": map[string]any{"resourceType": constvars.ResourcePatient},
				"request":  map[string]any{"method": constvars.MethodPost, "url": constvars.ResourcePatient},
			},
		},
	}
}

func TestPostTransactionBundle(t *testing.T) {
	t.Run("Successful Transaction", func(t *testing.T) {
		var received int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received++
			assert.Equal(t, constvars.MethodPost, r.Method)
			assert.Equal(t, constvars.MIMEApplicationFHIRJSON, r.Header.Get(constvars.HeaderContentType))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"resourceType":"Bundle","type":"transaction-response","entry":[{"response":{"status":"201 Created"}}]}`))
		}))
		defer server.Close()

		client := newTestBundleClient(server.URL)
		bundle, statusCode, err := client.PostTransactionBundle(context.Background(), transactionBundle())

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, statusCode)
		assert.Equal(t, 1, received)
		assert.Equal(t, constvars.FhirBundleTypeTransactionResponse, bundle.Type)
		assert.Len(t, bundle.Entry, 1)
	})

	t.Run("Operation Outcome Diagnostics Surface In Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"invalid","diagnostics":"missing required field Patient.name"}]}`))
		}))
		defer server.Close()

		client := newTestBundleClient(server.URL)
		bundle, statusCode, err := client.PostTransactionBundle(context.Background(), transactionBundle())

		require.Error(t, err)
		assert.Nil(t, bundle)
		assert.Equal(t, http.StatusBadRequest, statusCode)
		customErr := exceptions.AsCustomError(err)
		require.NotNil(t, customErr)
		assert.Equal(t, exceptions.KindClientError, customErr.Kind)
		assert.Contains(t, customErr.Error(), "missing required field Patient.name")
	})

	t.Run("Auth Rejection Maps To Auth Kind", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestBundleClient(server.URL)
		_, statusCode, err := client.PostTransactionBundle(context.Background(), transactionBundle())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, statusCode)
		customErr := exceptions.AsCustomError(err)
		require.NotNil(t, customErr)
		assert.Equal(t, exceptions.KindAuthError, customErr.Kind)
		assert.False(t, customErr.Retryable())
	})

	t.Run("Unmarshalable Bundle Never Reaches Server", func(t *testing.T) {
		var received int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received++
		}))
		defer server.Close()

		client := newTestBundleClient(server.URL)
		_, statusCode, err := client.PostTransactionBundle(context.Background(), map[string]any{"bad": make(chan int)})

		require.Error(t, err)
		assert.Equal(t, 0, statusCode)
		assert.Equal(t, 0, received)
		customErr := exceptions.AsCustomError(err)
		require.NotNil(t, customErr)
		assert.Equal(t, exceptions.KindParseError, customErr.Kind)
	})

	t.Run("Committed Transaction With Undecodable Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`<html>gateway page</html>`))
		}))
		defer server.Close()

		client := newTestBundleClient(server.URL)
		bundle, statusCode, err := client.PostTransactionBundle(context.Background(), transactionBundle())

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, statusCode)
		assert.NotNil(t, bundle)
		assert.Empty(t, bundle.Entry)
	})
}
