package urlservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dschema/internal/domain"
)

var groupARequest = domain.SubscriptionRequest{
	Group:       "A",
	ModLocation: true,
	ModExam:     true,
	Courses:     []string{"EDA452", "TDA555", "TMV211", "DAT044"},
}

func TestGenerateURL_PostsCanonicalJSON(t *testing.T) {
	// given
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"url":"https://cal.example/feed/abc"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/", time.Second)

	// when
	url, err := client.GenerateURL(context.Background(), groupARequest)

	// then
	require.NoError(t, err)
	assert.Equal(t, "https://cal.example/feed/abc", url)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, GetURLPath, gotPath)
	assert.Equal(t, "application/json", gotContentType)

	want := map[string]any{
		"group":       "A",
		"modLocation": true,
		"modExam":     true,
		"courses":     []any{"EDA452", "TDA555", "TMV211", "DAT044"},
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateURL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"url":"https://cal.example/x"}`, ErrUnexpectedStatus},
		{"bad request", http.StatusBadRequest, `invalid`, ErrUnexpectedStatus},
		{"not json", http.StatusOK, `<html>`, ErrMalformedResponse},
		{"missing url", http.StatusOK, `{}`, ErrMalformedResponse},
		{"empty url", http.StatusOK, `{"url":""}`, ErrMalformedResponse},
		{"null url", http.StatusOK, `{"url":null}`, ErrMalformedResponse},
		{"wrong type", http.StatusOK, `{"url":42}`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHTTPClient(server.URL, time.Second).GenerateURL(context.Background(), groupARequest)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateURL_AcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"url":"https://cal.example/feed/created","extra":1}`))
	}))
	defer server.Close()

	url, err := NewHTTPClient(server.URL, time.Second).GenerateURL(context.Background(), groupARequest)

	require.NoError(t, err)
	assert.Equal(t, "https://cal.example/feed/created", url)
}

func TestGenerateURL_HonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(server.URL, 5*time.Second).GenerateURL(ctx, groupARequest)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGenerateURL_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := NewHTTPClient(addr, time.Second).GenerateURL(context.Background(), groupARequest)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClientStub_RecordsCalls(t *testing.T) {
	stub := NewClientStub("https://cal.example/feed/stub")

	url, err := stub.GenerateURL(context.Background(), groupARequest)
	require.NoError(t, err)
	assert.Equal(t, "https://cal.example/feed/stub", url)

	stub.Err = errors.New("boom")
	_, err = stub.GenerateURL(context.Background(), groupARequest)
	assert.EqualError(t, err, "boom")

	assert.Len(t, stub.Calls(), 2)
}
