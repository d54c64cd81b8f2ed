package poststateimpl

import (
	"time"

	"github.com/orgball2608/blog-post-state/internal/domain"
	"github.com/orgball2608/blog-post-state/internal/poststate"
)

func (s *StoreImpl) snapshotLocked() poststate.State {
	snap := poststate.State{
		FirstPagePosts: domain.ClonePosts(s.state.FirstPagePosts),
		SearchResults:  domain.ClonePosts(s.state.SearchResults),
		Status:         s.state.Status,
	}
	if s.state.CurrentPost != nil {
		p := s.state.CurrentPost.Clone()
		snap.CurrentPost = &p
	}
	if s.state.Error != nil {
		e := *s.state.Error
		snap.Error = &e
	}
	return snap
}

func (s *StoreImpl) Snapshot() poststate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *StoreImpl) CurrentPost() *domain.Post {
	return s.Snapshot().CurrentPost
}

func (s *StoreImpl) CurrentPostImageURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentPost == nil {
		return nil
	}
	return append([]string(nil), s.state.CurrentPost.ImageURLs...)
}

func (s *StoreImpl) FirstPagePosts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ClonePosts(s.state.FirstPagePosts)
}

func (s *StoreImpl) SearchResults() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ClonePosts(s.state.SearchResults)
}

func (s *StoreImpl) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Status
}

func (s *StoreImpl) Error() *poststate.ErrorInfo {
	return s.Snapshot().Error
}

func (s *StoreImpl) LastPostCreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.state.FirstPagePosts); n > 0 {
		return s.state.FirstPagePosts[n-1].CreatedAt
	}
	return time.Time{}
}
