package blogapiimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orgball2608/blog-post-state/internal/blogapi"
	"github.com/orgball2608/blog-post-state/internal/ratelimit"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/logger"
)

type denyLimiter struct{}

func (denyLimiter) Wait(context.Context, string) error {
	return errors.New("rate: Wait(n=1) would exceed context deadline")
}

func newTestClient(t *testing.T, baseURL string, limiter ratelimit.Limiter) *Impl {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second
	if limiter == nil {
		limiter = ratelimit.NewInMemoryLimiter(1000, 1000)
	}

	c, err := New(Opts{Config: cfg, Logger: logger.NewNop(), Limiter: limiter})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.BaseURL = "/api"
	if _, err := New(Opts{Config: cfg, Logger: logger.NewNop(), Limiter: denyLimiter{}}); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestGetPostByURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts/by-url" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "hoc-go-co-ban" {
			t.Errorf("url param = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"post":{"id":"p1","url":"hoc-go-co-ban","title":"Học Go","imageUrls":["https://cdn/1.jpg"],"createdAt":"2026-10-18T10:00:00Z"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/api", nil)
	resp, err := c.GetPostByURL(context.Background(), " hoc-go-co-ban ")
	if err != nil {
		t.Fatalf("GetPostByURL() error = %v", err)
	}
	if resp.Post.ID != "p1" || resp.Post.Title != "Học Go" {
		t.Errorf("post = %+v", resp.Post)
	}
	if len(resp.Post.ImageURLs) != 1 {
		t.Errorf("ImageURLs = %v", resp.Post.ImageURLs)
	}
	want := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
	if !resp.Post.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %s", resp.Post.CreatedAt)
	}
}

func TestGetNextPostsQuery(t *testing.T) {
	cursor := time.Date(2026, time.October, 1, 8, 30, 0, 0, time.FixedZone("ICT", 7*3600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/posts/next" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %q", q.Get("limit"))
		}
		if q.Get("lastPostCreatedAt") != "2026-10-01T01:30:00Z" {
			t.Errorf("lastPostCreatedAt = %q", q.Get("lastPostCreatedAt"))
		}
		_, _ = w.Write([]byte(`{"posts":[{"id":"c"},{"id":"d"}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	resp, err := c.GetNextPosts(context.Background(), blogapi.NextPostsParams{Limit: 5, LastPostCreatedAt: cursor})
	if err != nil {
		t.Fatalf("GetNextPosts() error = %v", err)
	}
	if len(resp.Posts) != 2 || resp.Posts[0].ID != "c" || resp.Posts[1].ID != "d" {
		t.Errorf("posts = %+v", resp.Posts)
	}
}

func TestFirstPostsAndSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts":
			_, _ = w.Write([]byte(`{"posts":[{"id":"a"},{"id":"b"}]}`))
		case "/posts/search":
			if r.URL.Query().Get("searchKeys") != "golang tips" {
				t.Errorf("searchKeys = %q", r.URL.Query().Get("searchKeys"))
			}
			_, _ = w.Write([]byte(`{"matchedPosts":[{"id":"s1"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	first, err := c.GetFirstPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetFirstPosts() error = %v", err)
	}
	if len(first.Posts) != 2 {
		t.Errorf("posts = %+v", first.Posts)
	}

	found, err := c.FetchPostsBySearchKeys(context.Background(), "golang tips")
	if err != nil {
		t.Fatalf("FetchPostsBySearchKeys() error = %v", err)
	}
	if len(found.MatchedPosts) != 1 || found.MatchedPosts[0].ID != "s1" {
		t.Errorf("matchedPosts = %+v", found.MatchedPosts)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantKind    apperrors.Kind
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{
			name: "server error with body message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"code":"post_not_found","message":"Không tìm thấy bài viết"}`))
			},
			wantKind:    apperrors.KindServerResponse,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Không tìm thấy bài viết",
			wantCode:    "post_not_found",
		},
		{
			name: "server error without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantKind:    apperrors.KindServerResponse,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Bad Gateway",
		},
		{
			name: "success with empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantKind:    apperrors.KindServerResponse,
			wantStatus:  http.StatusOK,
			wantMessage: "empty response body",
			wantCode:    "invalid_response",
		},
		{
			name: "success without post",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			wantKind:    apperrors.KindServerResponse,
			wantStatus:  http.StatusOK,
			wantMessage: "response has no post",
			wantCode:    "invalid_response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := newTestClient(t, server.URL, nil)
			_, err := c.GetPostByURL(context.Background(), "some-post")
			if err == nil {
				t.Fatal("expected error")
			}

			var e *apperrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", e.Kind, tt.wantKind)
			}
			if e.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.wantStatus)
			}
			if e.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMessage)
			}
			if e.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := newTestClient(t, url, nil)
	_, err := c.GetFirstPosts(context.Background(), 10)
	if got := apperrors.GetKind(err); got != apperrors.KindNoResponse {
		t.Fatalf("kind = %q, want %q (err: %v)", got, apperrors.KindNoResponse, err)
	}
}

func TestRequestSetupFailures(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", nil)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		call func() error
	}{
		{"empty post url", func() error { _, err := c.GetPostByURL(context.Background(), "  "); return err }},
		{"zero limit", func() error { _, err := c.GetFirstPosts(context.Background(), 0); return err }},
		{"missing cursor", func() error {
			_, err := c.GetNextPosts(context.Background(), blogapi.NextPostsParams{Limit: 5})
			return err
		}},
		{"canceled context", func() error { _, err := c.FetchPostsBySearchKeys(canceled, "go"); return err }},
		{"limiter refused", func() error {
			denied := newTestClient(t, "http://127.0.0.1:1", denyLimiter{})
			_, err := denied.FetchPostsBySearchKeys(context.Background(), "go")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := apperrors.GetKind(err); got != apperrors.KindRequestSetup {
				t.Errorf("kind = %q, want %q (err: %v)", got, apperrors.KindRequestSetup, err)
			}
		})
	}
}
