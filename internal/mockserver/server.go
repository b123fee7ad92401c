// Package mockserver is a development implementation of the URL-generation
// service. Identical selections map to identical feed URLs.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"dschema/internal/domain"
	"dschema/internal/metrics"
	"dschema/internal/urlservice"
)

const maxBodyBytes = 16 << 10

// feedNamespace seeds the name-based feed IDs
var feedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dschema/feeds"))

// Server answers getUrl requests
type Server struct {
	feedBase string
	metrics  *metrics.Recorder
}

// New creates a server whose URLs start with feedBase. A nil recorder
// disables request metrics.
func New(feedBase string, recorder *metrics.Recorder) *Server {
	if !strings.HasSuffix(feedBase, "/") {
		feedBase += "/"
	}
	return &Server{feedBase: feedBase, metrics: recorder}
}

type getURLRequest struct {
	Group       *string  `json:"group"`
	ModLocation *bool    `json:"modLocation"`
	ModExam     *bool    `json:"modExam"`
	Courses     []string `json:"courses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the routes of the service
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Post(urlservice.GetURLPath, s.getURL)
	return r
}

func (s *Server) getURL(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		log.WithError(err).Debug("rejecting getUrl request")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	url := s.FeedURL(req)
	log.WithFields(log.Fields{
		"group":   req.Group,
		"courses": len(req.Courses),
	}).Info("issued feed url")
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// FeedURL returns the deterministic feed URL for req
func (s *Server) FeedURL(req domain.SubscriptionRequest) string {
	return s.feedBase + uuid.NewSHA1(feedNamespace, []byte(canonical(req))).String() + ".ics"
}

// canonical ignores course order, since the same set yields the same calendar
func canonical(req domain.SubscriptionRequest) string {
	courses := append([]string(nil), req.Courses...)
	sort.Strings(courses)
	return strings.Join([]string{
		"group=" + req.Group,
		"loc=" + strconv.FormatBool(req.ModLocation),
		"exam=" + strconv.FormatBool(req.ModExam),
		"courses=" + strings.Join(courses, ","),
	}, ";")
}

func decodeRequest(r *http.Request) (domain.SubscriptionRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var body getURLRequest
	if err := dec.Decode(&body); err != nil {
		return domain.SubscriptionRequest{}, fmt.Errorf("invalid json: %w", err)
	}

	switch {
	case body.Group == nil:
		return domain.SubscriptionRequest{}, errors.New("group is required")
	case body.ModLocation == nil || body.ModExam == nil:
		return domain.SubscriptionRequest{}, errors.New("modLocation and modExam are required")
	case len(body.Courses) == 0:
		return domain.SubscriptionRequest{}, errors.New("at least one course is required")
	}

	if _, ok := domain.FindGroup(*body.Group); !ok {
		return domain.SubscriptionRequest{}, fmt.Errorf("unknown group %q", *body.Group)
	}
	courses, err := domain.CoursesByValue(body.Courses)
	if err != nil {
		return domain.SubscriptionRequest{}, err
	}

	return domain.SubscriptionRequest{
		Group:       *body.Group,
		ModLocation: *body.ModLocation,
		ModExam:     *body.ModExam,
		Courses:     domain.CourseValues(courses),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// Serve runs the server on addr until ctx is done
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Mock url service listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
