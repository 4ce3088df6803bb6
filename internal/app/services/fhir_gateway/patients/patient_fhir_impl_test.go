package patients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"fhirloader-service/internal/app/services/fhir_gateway/transport"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPatientClient(serverUrl string) *patientFhirClient {
	return &patientFhirClient{
		BaseUrl: serverUrl + "/" + constvars.ResourcePatient,
		Sender:  transport.NewSender("test-client-id", "test-client-secret", transport.RetryPolicy{MaxAttempts: 1}, zap.NewNop()),
		Log:     zap.NewNop(),
	}
}

func TestSearchPatients(t *testing.T) {
	t.Run("Search With Count Param", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+constvars.ResourcePatient, r.URL.Path)
			assert.Equal(t, "10", r.URL.Query().Get(constvars.FhirSearchCountParam))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"resourceType":"Bundle","type":"searchset","total":42,"entry":[{"resource":{"resourceType":"Patient","id":"a"}},{"resource":{"resourceType":"Patient","id":"b"}}]}`))
		}))
		defer server.Close()

		params := url.Values{}
		params.Set(constvars.FhirSearchCountParam, "10")

		client := newTestPatientClient(server.URL)
		searchSet, err := client.SearchPatients(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, constvars.FhirBundleTypeSearchset, searchSet.Type)
		assert.Equal(t, 42, searchSet.Total)
		assert.Len(t, searchSet.Entry, 2)
	})

	t.Run("Search Without Params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"resourceType":"Bundle","type":"searchset","total":0}`))
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL)
		searchSet, err := client.SearchPatients(context.Background(), url.Values{})

		require.NoError(t, err)
		assert.Equal(t, 0, searchSet.Total)
		assert.Empty(t, searchSet.Entry)
	})

	t.Run("Upstream Rejection Maps To Client Kind", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL)
		searchSet, err := client.SearchPatients(context.Background(), url.Values{})

		require.Error(t, err)
		assert.Nil(t, searchSet)
		customErr := exceptions.AsCustomError(err)
		require.NotNil(t, customErr)
		assert.Equal(t, exceptions.KindClientError, customErr.Kind)
	})

	t.Run("Undecodable Search Set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`not a bundle`))
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL)
		searchSet, err := client.SearchPatients(context.Background(), url.Values{})

		require.Error(t, err)
		assert.Nil(t, searchSet)
		customErr := exceptions.AsCustomError(err)
		require.NotNil(t, customErr)
		assert.Equal(t, exceptions.KindParseError, customErr.Kind)
	})
}
