package observability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
)

func TestNewPrometheusReader_ServesGoCollector(t *testing.T) {
	t.Parallel()

	reader, handler, err := observability.NewPrometheusReader()
	require.NoError(t, err)
	require.NotNil(t, reader)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewPrometheusReader_IndependentRegistries(t *testing.T) {
	t.Parallel()

	_, _, err := observability.NewPrometheusReader()
	require.NoError(t, err)

	_, _, err = observability.NewPrometheusReader()
	require.NoError(t, err)
}
