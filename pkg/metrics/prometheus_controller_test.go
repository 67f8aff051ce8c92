package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusController_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "orgchart_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	c := NewPrometheusControllerFor("", reg)
	require.Equal(t, "/debug/prometheus", c.Key())

	r := mux.NewRouter()
	c.Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "orgchart_test_total 1")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/prometheus", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
