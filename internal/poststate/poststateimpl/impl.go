package poststateimpl

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/blog-post-state/internal/blogapi"
	"github.com/orgball2608/blog-post-state/internal/domain"
	"github.com/orgball2608/blog-post-state/internal/poststate"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/formatter"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	API     blogapi.Client
	Logger  logger.Logger
	Config  *config.Config
	Metrics *Metrics
	Clock   clockwork.Clock `optional:"true"`
}

type StoreImpl struct {
	api         blogapi.Client
	logger      logger.Logger
	metrics     *Metrics
	clock       clockwork.Clock
	relativeAge formatter.RelativeAgeFunc

	mu        sync.Mutex
	state     poststate.State
	listeners []subscriber
	nextID    int

	// pending holds snapshots not yet delivered; notifying is set while a
	// goroutine is draining it.
	pending   []poststate.State
	notifying bool
}

type subscriber struct {
	id int
	fn poststate.Listener
}

func New(opts Opts) (*StoreImpl, error) {
	relativeAge, err := formatter.ParseRelativeAgeMode(opts.Config.Feed.RelativeAgeMode)
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &StoreImpl{
		api:         opts.API,
		logger:      opts.Logger.WithComponent("PostStore"),
		metrics:     opts.Metrics,
		clock:       clock,
		relativeAge: relativeAge,
	}, nil
}

var _ poststate.Store = (*StoreImpl)(nil)

type operation struct {
	name  string
	start time.Time
}

// begin marks an operation as in flight.
func (s *StoreImpl) begin(name string, args ...any) operation {
	s.logger.Debug("Fetch started", append([]any{"operation", name}, args...)...)
	s.transition(func(st *poststate.State) {
		st.Status = domain.StatusLoading
	})
	return operation{name: name, start: s.clock.Now()}
}

// succeed applies the result of a fulfilled operation.
func (s *StoreImpl) succeed(op operation, apply func(st *poststate.State)) {
	s.transition(func(st *poststate.State) {
		apply(st)
		st.Status = domain.StatusSucceeded
		st.Error = nil
	})
	s.metrics.observe(op.name, nil, s.clock.Since(op.start))
}

// fail records a rejected operation. Collections are left as they were.
func (s *StoreImpl) fail(op operation, err error) {
	info := errorInfoFrom(err)
	s.transition(func(st *poststate.State) {
		st.Status = domain.StatusFailed
		st.Error = info
	})
	s.metrics.observe(op.name, err, s.clock.Since(op.start))

	log := s.logger.Error
	if apperrors.IsNotFound(err) {
		log = s.logger.Warn
	}
	log("Fetch failed",
		"operation", op.name,
		"kind", string(info.Kind),
		"status_code", info.StatusCode,
		"error", err)
}

// transition mutates state under the lock, then notifies listeners.
// Snapshots reach listeners in the order the state changed: if another
// goroutine is already delivering, the snapshot is queued for it and
// transition returns without waiting.
func (s *StoreImpl) transition(mutate func(st *poststate.State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.pending = append(s.pending, s.snapshotLocked())
	if s.notifying {
		s.mu.Unlock()
		return
	}
	s.notifying = true

	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		listeners := make([]poststate.Listener, 0, len(s.listeners))
		for _, sub := range s.listeners {
			listeners = append(listeners, sub.fn)
		}
		s.mu.Unlock()

		for _, snapshot := range batch {
			for _, l := range listeners {
				l(snapshot)
			}
		}

		s.mu.Lock()
	}
	s.notifying = false
	s.mu.Unlock()
}

// errorInfoFrom flattens a failure into state. Errors that did not come
// through the blog client never reached the server.
func errorInfoFrom(err error) *poststate.ErrorInfo {
	var e *apperrors.Error
	if !errors.As(err, &e) {
		return &poststate.ErrorInfo{
			Kind:    apperrors.KindRequestSetup,
			Code:    "request_setup",
			Message: err.Error(),
		}
	}

	switch e.Kind {
	case apperrors.KindServerResponse:
		return &poststate.ErrorInfo{
			Kind:       e.Kind,
			Code:       e.Code,
			Message:    e.Message,
			StatusCode: e.StatusCode,
			StatusText: e.StatusText,
		}
	case apperrors.KindNoResponse, apperrors.KindRequestSetup:
		return &poststate.ErrorInfo{
			Kind:    e.Kind,
			Code:    e.Code,
			Message: e.Error(),
		}
	default:
		return &poststate.ErrorInfo{
			Kind:    apperrors.KindRequestSetup,
			Code:    e.Code,
			Message: e.Error(),
		}
	}
}

func (s *StoreImpl) ResetStatus() {
	s.transition(func(st *poststate.State) {
		st.Status = domain.StatusIdle
	})
}

func (s *StoreImpl) Subscribe(l poststate.Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscriber{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
