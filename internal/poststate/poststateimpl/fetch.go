package poststateimpl

import (
	"context"
	"time"

	"github.com/orgball2608/blog-post-state/internal/blogapi"
	"github.com/orgball2608/blog-post-state/internal/domain"
	"github.com/orgball2608/blog-post-state/internal/poststate"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
)

const (
	opFetchPostByURL  = "fetch_post_by_url"
	opFetchFirstPosts = "fetch_first_posts"
	opFetchNextPosts  = "fetch_next_posts"
	opSearchPosts     = "search_posts"
)

func missingBody(message string) error {
	return &apperrors.Error{
		Kind:    apperrors.KindServerResponse,
		Code:    "invalid_response",
		Message: message,
	}
}

// FetchPostByURL loads one post and computes its relative age once, at the
// moment it arrives. The label does not update afterwards.
func (s *StoreImpl) FetchPostByURL(ctx context.Context, url string) (*domain.Post, error) {
	op := s.begin(opFetchPostByURL, "url", url)

	resp, err := s.api.GetPostByURL(ctx, url)
	if err == nil && (resp == nil || resp.Post == nil) {
		err = missingBody("response has no post")
	}
	if err != nil {
		s.fail(op, err)
		return nil, err
	}

	post := resp.Post.Clone()
	post.RelativeAge = s.relativeAge(s.clock.Now(), post.CreatedAt)

	s.succeed(op, func(st *poststate.State) {
		current := post.Clone()
		st.CurrentPost = &current
	})
	s.logger.Info("Fetched post", "url", url, "post_id", post.ID, "relative_age", post.RelativeAge)

	return &post, nil
}

func (s *StoreImpl) FetchFirstPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	op := s.begin(opFetchFirstPosts, "limit", limit)

	resp, err := s.api.GetFirstPosts(ctx, limit)
	if err == nil && resp == nil {
		err = missingBody("response has no posts")
	}
	if err != nil {
		s.fail(op, err)
		return nil, err
	}

	posts := domain.ClonePosts(resp.Posts)
	s.succeed(op, func(st *poststate.State) {
		st.FirstPagePosts = domain.ClonePosts(posts)
	})
	s.logger.Info("Fetched first posts", "limit", limit, "count", len(posts))

	return posts, nil
}

// FetchNextPosts appends as-is: no dedup against posts already held and no
// re-sort. The caller tracks the cursor.
func (s *StoreImpl) FetchNextPosts(ctx context.Context, limit int, lastPostCreatedAt time.Time) ([]domain.Post, error) {
	op := s.begin(opFetchNextPosts, "limit", limit, "cursor", lastPostCreatedAt)

	resp, err := s.api.GetNextPosts(ctx, blogapi.NextPostsParams{
		Limit:             limit,
		LastPostCreatedAt: lastPostCreatedAt,
	})
	if err == nil && resp == nil {
		err = missingBody("response has no posts")
	}
	if err != nil {
		s.fail(op, err)
		return nil, err
	}

	posts := domain.ClonePosts(resp.Posts)
	var total int
	s.succeed(op, func(st *poststate.State) {
		st.FirstPagePosts = append(st.FirstPagePosts, domain.ClonePosts(posts)...)
		total = len(st.FirstPagePosts)
	})
	s.logger.Info("Fetched next posts", "limit", limit, "count", len(posts), "total", total)

	return posts, nil
}

func (s *StoreImpl) SearchPosts(ctx context.Context, keys string) ([]domain.Post, error) {
	op := s.begin(opSearchPosts, "keys", keys)

	resp, err := s.api.FetchPostsBySearchKeys(ctx, keys)
	if err == nil && resp == nil {
		err = missingBody("response has no matched posts")
	}
	if err != nil {
		s.fail(op, err)
		return nil, err
	}

	posts := domain.ClonePosts(resp.MatchedPosts)
	s.succeed(op, func(st *poststate.State) {
		st.SearchResults = domain.ClonePosts(posts)
	})
	s.logger.Info("Searched posts", "keys", keys, "count", len(posts))

	return posts, nil
}
