//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
)

// subscriptionRequest mirrors the body the app posts to the link service
type subscriptionRequest struct {
	Group       string   `json:"group"`
	ModLocation bool     `json:"modLocation"`
	ModExam     bool     `json:"modExam"`
	Courses     []string `json:"courses"`
}

// fakeService records requests and answers with a URL derived from the selection
type fakeService struct {
	mu       sync.Mutex
	requests []subscriptionRequest
	fail     bool
}

func (s *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/api/v1/getUrl/" {
		http.NotFound(w, r)
		return
	}
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	fail := s.fail
	s.mu.Unlock()

	if fail {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	courses := append([]string(nil), req.Courses...)
	sort.Strings(courses)
	url := fmt.Sprintf("https://cal.example/feed/%s-%s.ics", req.Group, strings.Join(courses, "-"))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// Requests returns what the service received so far
func (s *fakeService) Requests() []subscriptionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]subscriptionRequest(nil), s.requests...)
}

// SetFailing makes the service answer 503 from now on
func (s *fakeService) SetFailing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// CreateTestWorkspace creates a temporary HOME for config, logs and caches
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// StartService starts a fake link service the app will talk to
func (tf *TUITestFramework) StartService() *fakeService {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	tf.t.Cleanup(srv.Close)
	tf.service = srv.URL
	return svc
}
