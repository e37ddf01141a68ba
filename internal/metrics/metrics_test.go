package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	require.NotNil(t, metrics.New(prometheus.NewRegistry()))
}

func TestMonitor(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	h := m.Monitor("upload", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/upload-document", strings.NewReader("{}"))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	var requests float64
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		require.Len(t, family.GetMetric(), 1)
		metric := family.GetMetric()[0]

		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		assert.Equal(t, map[string]string{"code": "201", "handler": "upload", "method": "post"}, labels)
		requests = metric.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), requests)

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds", "http_request_size_bytes")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMonitor_DuplicateHandlerNamePanics(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	m.Monitor("submit", noop)
	assert.Panics(t, func() { m.Monitor("submit", noop) })
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	d := metrics.NewDomain(reg)
	d.UploadStored(10)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pilot_docs_uploads_stored_total 1")
}
