package poststate

import (
	"context"
	"time"

	"github.com/orgball2608/blog-post-state/internal/domain"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
)

// ErrorInfo is the failure of the last settled operation as kept in state.
type ErrorInfo struct {
	Kind       apperrors.Kind `json:"kind"`
	Code       string         `json:"code,omitempty"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode,omitempty"`
	StatusText string         `json:"statusText,omitempty"`
}

// State is a point-in-time copy of the store.
type State struct {
	CurrentPost    *domain.Post  `json:"currentPost"`
	FirstPagePosts []domain.Post `json:"firstPagePosts"`
	SearchResults  []domain.Post `json:"searchResults"`
	Status         domain.Status `json:"status"`
	Error          *ErrorInfo    `json:"error"`
}

// Listener receives a snapshot after every state transition, in the order the
// transitions happened. A listener may call back into the store; snapshots
// produced meanwhile are delivered after it returns.
type Listener func(State)

// Store holds the client-side post state. Each fetch moves Status to loading,
// then to succeeded or failed when its single request settles. Overlapping
// fetches are not coordinated: Status and Error follow whichever settles last.
type Store interface {
	// FetchPostByURL replaces the current post, stamped with its relative age.
	FetchPostByURL(ctx context.Context, url string) (*domain.Post, error)

	// FetchFirstPosts replaces the first page list.
	FetchFirstPosts(ctx context.Context, limit int) ([]domain.Post, error)

	// FetchNextPosts appends the page after lastPostCreatedAt to the first page list.
	FetchNextPosts(ctx context.Context, limit int, lastPostCreatedAt time.Time) ([]domain.Post, error)

	// SearchPosts replaces the search results.
	SearchPosts(ctx context.Context, keys string) ([]domain.Post, error)

	// ResetStatus sets Status to idle and leaves everything else untouched.
	ResetStatus()

	CurrentPost() *domain.Post
	CurrentPostImageURLs() []string
	FirstPagePosts() []domain.Post
	SearchResults() []domain.Post
	Status() domain.Status
	Error() *ErrorInfo
	Snapshot() State

	// LastPostCreatedAt is the creation time of the last post in the first page
	// list, zero when the list is empty.
	LastPostCreatedAt() time.Time

	// Subscribe registers l and returns a func that removes it.
	Subscribe(l Listener) (unsubscribe func())
}
