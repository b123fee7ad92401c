package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"dschema/internal/eventbus"
)

// Recorder owns a private registry so several instances (tests, the mock
// server) never collide on the global one
type Recorder struct {
	registry *prometheus.Registry

	submissionsIssued  prometheus.Counter
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	clipboardCopies    *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a Recorder with all collectors registered
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		submissionsIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "dschema_submissions_issued_total",
			Help: "Total number of subscription requests sent to the url service.",
		}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dschema_submissions_total",
			Help: "Total number of settled subscription requests by outcome.",
		}, []string{"outcome"}),
		submissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dschema_submission_duration_seconds",
			Help:    "Histogram of url service round trip latencies.",
			Buckets: prometheus.DefBuckets,
		}),
		clipboardCopies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dschema_clipboard_copies_total",
			Help: "Total number of clipboard copy attempts by result.",
		}, []string{"result"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dschema_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dschema_http_request_duration_seconds",
			Help:    "Histogram of latencies for HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Observe folds one domain event into the collectors
func (r *Recorder) Observe(e eventbus.DomainEvent) {
	switch event := e.(type) {
	case eventbus.SubmissionIssuedEvent:
		r.submissionsIssued.Inc()
	case eventbus.URLUpdatedEvent:
		r.submissions.WithLabelValues("applied").Inc()
		r.submissionDuration.Observe(event.Elapsed.Seconds())
	case eventbus.SubmissionFailedEvent:
		r.submissions.WithLabelValues("failed").Inc()
		r.submissionDuration.Observe(event.Elapsed.Seconds())
	case eventbus.ResponseDiscardedEvent:
		r.submissions.WithLabelValues("stale").Inc()
	case eventbus.URLCopiedEvent:
		r.clipboardCopies.WithLabelValues(event.Method).Inc()
	case eventbus.CopyFailedEvent:
		r.clipboardCopies.WithLabelValues("failed").Inc()
	}
}

// Subscribe feeds the recorder from bus and returns a function that detaches it
func (r *Recorder) Subscribe(bus eventbus.EventBus) func() {
	types := []eventbus.EventType{
		eventbus.EventSubmissionIssued,
		eventbus.EventURLUpdated,
		eventbus.EventSubmissionFailed,
		eventbus.EventResponseDiscarded,
		eventbus.EventURLCopied,
		eventbus.EventCopyFailed,
	}
	unsubs := make([]func(), 0, len(types))
	for _, t := range types {
		unsubs = append(unsubs, bus.Subscribe(t, r.Observe))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Registry exposes the underlying registry for tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler exposes the Prometheus metrics endpoint
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request metrics for chi routers
func (r *Recorder) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(req)
			r.httpRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
			r.httpRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Router returns a chi router serving /metrics
func (r *Recorder) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Method(http.MethodGet, "/metrics", r.Handler())
	return router
}

// Serve runs the metrics listener until ctx is done
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
