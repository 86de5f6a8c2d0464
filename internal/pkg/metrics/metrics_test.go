package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	next:
		for _, metric := range fam.GetMetric() {
			got := map[string]string{}
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveHTTP("GET", "/api/programs", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "/api/programs", 200, 5*time.Millisecond)
	m.FormSubmitted("contact", ResultAccepted)
	m.UpstreamRefresh("success")

	assert.Equal(t, 2.0, counterValue(t, m, "academy_http_requests_total",
		map[string]string{"method": "GET", "route": "/api/programs", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, m, "academy_form_submissions_total",
		map[string]string{"form": "contact", "result": ResultAccepted}))
	assert.Equal(t, 1.0, counterValue(t, m, "academy_upstream_refresh_total",
		map[string]string{"result": "success"}))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	m.FormSubmitted("contact", ResultError)
	m.UpstreamRefresh("failed")
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.FormSubmitted("registration", ResultRejected)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `academy_form_submissions_total{form="registration",result="rejected"} 1`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
