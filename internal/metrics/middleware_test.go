package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware(t *testing.T) {
	reg := NewRegistry()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	HTTPMiddleware(reg)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "2xx")))

	mf := gather(t, reg, "http_request_duration_seconds")
	require.NotNil(t, mf)
	assert.Equal(t, uint64(1), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestHTTPMiddleware_TracksInFlight(t *testing.T) {
	reg := NewRegistry()

	inFlightDuringRequest := float64(-1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlightDuringRequest = testutil.ToFloat64(reg.httpRequestsInFlight)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	HTTPMiddleware(reg)(handler).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1), inFlightDuringRequest)
	assert.Equal(t, float64(0), testutil.ToFloat64(reg.httpRequestsInFlight))
}

func TestHTTPMiddleware_CapturesStatusCode(t *testing.T) {
	reg := NewRegistry()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	req := httptest.NewRequest("GET", "/api/v1/analysis/ZZZZ", nil)
	w := httptest.NewRecorder()
	HTTPMiddleware(reg)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "5xx")))
}

func TestHTTPMiddleware_UsesRoutePattern(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/analysis/{ticker}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := HTTPMiddleware(reg)(mux)

	for _, ticker := range []string{"AAPL", "MSFT", "KO"} {
		req := httptest.NewRequest("GET", "/api/v1/analysis/"+ticker, nil)
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(
		reg.httpRequestsTotal.WithLabelValues("GET", "GET /api/v1/analysis/{ticker}", "2xx")))
}

func TestHTTPMiddleware_UnmatchedPathsShareLabel(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {})
	wrapped := HTTPMiddleware(reg)(mux)

	for _, path := range []string{"/wp-login.php", "/.env", "/admin/config.php"} {
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(
		reg.httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(reg.httpRequestsTotal))
}
