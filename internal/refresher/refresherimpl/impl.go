package refresherimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/blog-post-state/internal/poststate"
	"github.com/orgball2608/blog-post-state/internal/refresher"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"go.uber.org/fx"
)

const refreshTimeout = time.Minute

type Opts struct {
	fx.In

	Store  poststate.Store
	Logger logger.Logger
	Config *config.Config
}

type RefresherImpl struct {
	Store  poststate.Store
	Logger logger.Logger
	Config *config.Config

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func New(opts Opts) *RefresherImpl {
	return &RefresherImpl{
		Store:  opts.Store,
		Logger: opts.Logger.WithComponent("FeedRefresher"),
		Config: opts.Config,
	}
}

var _ refresher.Client = (*RefresherImpl)(nil)

// Start sets up a cron job that reloads the first page of posts.
func (r *RefresherImpl) Start(ctx context.Context) error {
	cron := r.Config.Feed.RefreshCron
	if cron == "" {
		r.Logger.Info("Feed refresh disabled")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scheduler != nil {
		return apperrors.New("feed refresh already started")
	}

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		loc = time.Local
		r.Logger.Warn("Failed to load Asia/Ho_Chi_Minh timezone, using local timezone", "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create feed refresh scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				r.Logger.Info("Context cancelled, skipping feed refresh")
				return
			}
			if err := r.RefreshNow(ctx); err != nil {
				if apperrors.IsServiceUnavailable(err) {
					r.Logger.Info("Blog API unavailable, waiting for next refresh", "error", err)
					return
				}
				r.Logger.Warn("Scheduled feed refresh failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule feed refresh %q: %w", cron, err)
	}

	r.scheduler = scheduler
	scheduler.Start()
	r.Logger.Info("Feed refresh scheduled", "cron", cron, "page_size", r.Config.Feed.PageSize)

	return nil
}

func (r *RefresherImpl) RefreshNow(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	posts, err := r.Store.FetchFirstPosts(refreshCtx, r.Config.Feed.PageSize)
	if err != nil {
		return apperrors.Wrap(err, "refresh first posts")
	}

	r.Logger.Info("Feed refreshed", "count", len(posts))
	return nil
}

func (r *RefresherImpl) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scheduler == nil {
		return nil
	}
	r.Logger.Info("Stopping feed refresh scheduler")
	err := r.scheduler.Shutdown()
	r.scheduler = nil
	if err != nil {
		return fmt.Errorf("failed to shut down feed refresh scheduler: %w", err)
	}
	return nil
}
