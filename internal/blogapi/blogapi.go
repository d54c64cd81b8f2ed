package blogapi

import (
	"context"
	"time"

	"github.com/orgball2608/blog-post-state/internal/domain"
)

type PostResponse struct {
	Post *domain.Post `json:"post"`
}

type PostsResponse struct {
	Posts []domain.Post `json:"posts"`
}

type SearchResponse struct {
	MatchedPosts []domain.Post `json:"matchedPosts"`
}

// NextPostsParams selects the page after the post created at LastPostCreatedAt.
type NextPostsParams struct {
	Limit             int
	LastPostCreatedAt time.Time
}

// Client talks to the blog backend. Every failure is a *errors.Error from
// pkg/errors tagged with where the request failed.
//
//go:generate go run go.uber.org/mock/mockgen -source=blogapi.go -destination=mocks/mock.go
type Client interface {
	GetPostByURL(ctx context.Context, url string) (*PostResponse, error)
	GetFirstPosts(ctx context.Context, limit int) (*PostsResponse, error)
	GetNextPosts(ctx context.Context, params NextPostsParams) (*PostsResponse, error)
	FetchPostsBySearchKeys(ctx context.Context, searchKeys string) (*SearchResponse, error)
}
