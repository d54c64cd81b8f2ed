package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/blog-post-state/internal/blogapi"
	mock_blogapi "github.com/orgball2608/blog-post-state/internal/blogapi/mocks"
	"github.com/orgball2608/blog-post-state/internal/domain"
	"github.com/orgball2608/blog-post-state/internal/poststate"
	"github.com/orgball2608/blog-post-state/internal/poststate/poststateimpl"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/mock/gomock"
)

func TestModuleGraph(t *testing.T) {
	if err := fx.ValidateApp(Module); err != nil {
		t.Fatalf("fx graph is invalid: %v", err)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *mock_blogapi.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mock_blogapi.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Feed.PageSize = 10

	store, err := poststateimpl.New(poststateimpl.Opts{
		API:     api,
		Logger:  logger.NewNop(),
		Config:  cfg,
		Metrics: poststateimpl.NewMetrics(prometheus.NewRegistry()),
	})
	if err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(NewServer(store, logger.NewNop(), cfg).Handler())
	t.Cleanup(ts.Close)
	return ts, api
}

func call(t *testing.T, ts *httptest.Server, method, path string) (int, poststate.State) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var st poststate.State
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			t.Fatalf("decode state: %v", err)
		}
	}
	return resp.StatusCode, st
}

func statusOf(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	_, st := call(t, ts, http.MethodGet, "/state")
	return st.Status.String()
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestFetchByURLEndpoint(t *testing.T) {
	ts, api := newTestServer(t)
	p := domain.Post{ID: "p1", URL: "hoc-go", CreatedAt: time.Now().Add(-5 * time.Hour)}
	api.EXPECT().GetPostByURL(gomock.Any(), "hoc-go").Return(&blogapi.PostResponse{Post: &p}, nil)

	code, st := call(t, ts, http.MethodPost, "/posts/by-url?url=hoc-go")
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if st.CurrentPost == nil || st.CurrentPost.ID != "p1" || st.CurrentPost.RelativeAge != "5 giờ" {
		t.Errorf("currentPost = %+v", st.CurrentPost)
	}
	if statusOf(t, ts) != "succeeded" {
		t.Errorf("status = %q", statusOf(t, ts))
	}
}

func TestFetchByURLRequiresURL(t *testing.T) {
	ts, _ := newTestServer(t)
	if code, _ := call(t, ts, http.MethodPost, "/posts/by-url"); code != http.StatusBadRequest {
		t.Errorf("status code = %d", code)
	}
}

func TestFailedFetchIsReportedInState(t *testing.T) {
	ts, api := newTestServer(t)
	api.EXPECT().FetchPostsBySearchKeys(gomock.Any(), "go").
		Return(nil, apperrors.ServerResponse(http.StatusInternalServerError, "", "boom"))

	code, st := call(t, ts, http.MethodPost, "/posts/search?searchKeys=go")
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if st.Error == nil || st.Error.StatusCode != http.StatusInternalServerError || st.Error.Message != "boom" {
		t.Errorf("error = %+v", st.Error)
	}
	if statusOf(t, ts) != "failed" {
		t.Errorf("status = %q", statusOf(t, ts))
	}

	if code, _ := call(t, ts, http.MethodPost, "/status/reset"); code != http.StatusOK {
		t.Fatalf("reset status code = %d", code)
	}
	if statusOf(t, ts) != "idle" {
		t.Errorf("status after reset = %q", statusOf(t, ts))
	}
}

func TestPaginationEndpoints(t *testing.T) {
	ts, api := newTestServer(t)
	last := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)

	gomock.InOrder(
		api.EXPECT().GetFirstPosts(gomock.Any(), 10).
			Return(&blogapi.PostsResponse{Posts: []domain.Post{{ID: "A"}, {ID: "B", CreatedAt: last}}}, nil),
		api.EXPECT().GetNextPosts(gomock.Any(), blogapi.NextPostsParams{Limit: 2, LastPostCreatedAt: last}).
			Return(&blogapi.PostsResponse{Posts: []domain.Post{{ID: "C"}}}, nil),
		api.EXPECT().GetNextPosts(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p blogapi.NextPostsParams) (*blogapi.PostsResponse, error) {
				if !p.LastPostCreatedAt.Equal(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("cursor = %s", p.LastPostCreatedAt)
				}
				return &blogapi.PostsResponse{Posts: []domain.Post{{ID: "D"}}}, nil
			}),
	)

	if code, _ := call(t, ts, http.MethodPost, "/posts/first"); code != http.StatusOK {
		t.Fatalf("first: %d", code)
	}
	if code, _ := call(t, ts, http.MethodPost, "/posts/next?limit=2"); code != http.StatusOK {
		t.Fatalf("next: %d", code)
	}
	cursor := url.QueryEscape("2026-09-01T00:00:00Z")
	code, st := call(t, ts, http.MethodPost, "/posts/next?limit=2&cursor="+cursor)
	if code != http.StatusOK {
		t.Fatalf("next with cursor: %d", code)
	}

	got := make([]string, 0, len(st.FirstPagePosts))
	for _, p := range st.FirstPagePosts {
		got = append(got, p.ID)
	}
	if strings.Join(got, ",") != "A,B,C,D" {
		t.Errorf("firstPagePosts = %v", got)
	}
}

func TestBadPaginationParams(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		path string
		code string
	}{
		{"/posts/first?limit=0", "invalid_limit"},
		{"/posts/first?limit=abc", "invalid_limit"},
		{"/posts/next?limit=2&cursor=yesterday", "invalid_cursor"},
		{"/posts/next?limit=2", "missing_cursor"},
		{"/posts/by-url", "missing_url"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tt.path, "application/json", nil)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status code = %d, want 400", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["code"] != tt.code || body["message"] == "" {
				t.Errorf("body = %v, want code %q", body, tt.code)
			}
		})
	}
}

func TestSearchUsesSearchKeys(t *testing.T) {
	ts, api := newTestServer(t)
	api.EXPECT().FetchPostsBySearchKeys(gomock.Any(), "học go").
		Return(&blogapi.SearchResponse{MatchedPosts: []domain.Post{{ID: "s1"}}}, nil)

	code, st := call(t, ts, http.MethodPost, "/posts/search?searchKeys="+url.QueryEscape("học go"))
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if len(st.SearchResults) != 1 || st.SearchResults[0].ID != "s1" {
		t.Errorf("searchResults = %+v", st.SearchResults)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d", resp.StatusCode)
	}
}
