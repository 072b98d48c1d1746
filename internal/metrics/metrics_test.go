package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: InstrumentTransport(http.DefaultTransport)}

	okBefore := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("200", "get"))
	notFoundBefore := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("404", "get"))

	for _, path := range []string{"/api/products", "/api/products", "/api/missing"} {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(apiRequestsTotal.WithLabelValues("200", "get")))
	assert.Equal(t, notFoundBefore+1, testutil.ToFloat64(apiRequestsTotal.WithLabelValues("404", "get")))
	assert.Equal(t, float64(0), testutil.ToFloat64(apiRequestsInFlight))
}

func TestHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "storefront_api_requests_in_flight")
}
