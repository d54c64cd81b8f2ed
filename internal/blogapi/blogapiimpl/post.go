package blogapiimpl

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/blog-post-state/internal/blogapi"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
)

func (c *Impl) GetPostByURL(ctx context.Context, postURL string) (*blogapi.PostResponse, error) {
	postURL = strings.TrimSpace(postURL)
	if postURL == "" {
		return nil, apperrors.RequestSetup(apperrors.ErrInvalidInput, "post url is required")
	}

	var out blogapi.PostResponse
	status, err := c.get(ctx, "get_post_by_url", "posts/by-url", url.Values{"url": {postURL}}, &out)
	if err != nil {
		return nil, err
	}
	if out.Post == nil {
		return nil, invalidResponse(status, "response has no post")
	}
	return &out, nil
}

func (c *Impl) GetFirstPosts(ctx context.Context, limit int) (*blogapi.PostsResponse, error) {
	if limit <= 0 {
		return nil, apperrors.RequestSetup(apperrors.ErrInvalidInput, "limit must be positive")
	}

	var out blogapi.PostsResponse
	if _, err := c.get(ctx, "get_first_posts", "posts", url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Impl) GetNextPosts(ctx context.Context, params blogapi.NextPostsParams) (*blogapi.PostsResponse, error) {
	if params.Limit <= 0 {
		return nil, apperrors.RequestSetup(apperrors.ErrInvalidInput, "limit must be positive")
	}
	if params.LastPostCreatedAt.IsZero() {
		return nil, apperrors.RequestSetup(apperrors.ErrInvalidInput, "lastPostCreatedAt cursor is required")
	}

	query := url.Values{
		"limit":             {strconv.Itoa(params.Limit)},
		"lastPostCreatedAt": {params.LastPostCreatedAt.UTC().Format(time.RFC3339Nano)},
	}

	var out blogapi.PostsResponse
	if _, err := c.get(ctx, "get_next_posts", "posts/next", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Impl) FetchPostsBySearchKeys(ctx context.Context, searchKeys string) (*blogapi.SearchResponse, error) {
	var out blogapi.SearchResponse
	if _, err := c.get(ctx, "search_posts", "posts/search", url.Values{"searchKeys": {searchKeys}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
