package urlservice

import (
	"context"
	"sync"

	"dschema/internal/domain"
)

// ClientStub is an in-memory Client for tests. It records every request.
type ClientStub struct {
	mu      sync.Mutex
	URL     string
	Err     error
	Respond func(ctx context.Context, req domain.SubscriptionRequest) (string, error)
	calls   []domain.SubscriptionRequest
}

// NewClientStub returns a stub answering every request with url
func NewClientStub(url string) *ClientStub {
	return &ClientStub{URL: url}
}

func (s *ClientStub) GenerateURL(ctx context.Context, req domain.SubscriptionRequest) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	respond, url, err := s.Respond, s.URL, s.Err
	s.mu.Unlock()

	if respond != nil {
		return respond(ctx, req)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// Calls returns the requests received so far
func (s *ClientStub) Calls() []domain.SubscriptionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SubscriptionRequest(nil), s.calls...)
}
