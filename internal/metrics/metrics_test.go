package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dschema/internal/eventbus"
)

func TestObserve_CountsOutcomes(t *testing.T) {
	r := New()

	r.Observe(eventbus.SubmissionIssuedEvent{Seq: 1})
	r.Observe(eventbus.SubmissionIssuedEvent{Seq: 2})
	r.Observe(eventbus.URLUpdatedEvent{Seq: 2, URL: "https://cal.example/feed/b", Elapsed: 20 * time.Millisecond})
	r.Observe(eventbus.ResponseDiscardedEvent{Seq: 1, Latest: 2})
	r.Observe(eventbus.SubmissionFailedEvent{Seq: 3, Err: errors.New("down"), Elapsed: time.Second})
	r.Observe(eventbus.URLCopiedEvent{Method: "system"})
	r.Observe(eventbus.CopyFailedEvent{Err: errors.New("no clipboard")})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.submissionsIssued))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues("stale")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.clipboardCopies.WithLabelValues("system")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.clipboardCopies.WithLabelValues("failed")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.submissionDuration))
}

func TestSubscribe_FeedsFromBus(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	r := New()
	unsubscribe := r.Subscribe(bus)
	defer unsubscribe()

	bus.Publish(eventbus.URLCopiedEvent{Method: "osc52"})

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(r.clipboardCopies.WithLabelValues("osc52")) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRouter_ServesMetrics(t *testing.T) {
	r := New()
	r.Observe(eventbus.SubmissionIssuedEvent{Seq: 1})

	resp := httptest.NewRecorder()
	r.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "dschema_submissions_issued_total 1")
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := New()
	router := chi.NewRouter()
	router.Use(r.Middleware())
	router.Post("/api/v1/getUrl/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/getUrl/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		r.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/getUrl", "400")))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := New()
	router := chi.NewRouter()
	router.Use(r.Middleware())
	router.Get("/known", func(w http.ResponseWriter, _ *http.Request) {})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		r.httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
