package app

import (
	"context"

	"github.com/orgball2608/blog-post-state/internal/blogapi"
	"github.com/orgball2608/blog-post-state/internal/blogapi/blogapiimpl"
	"github.com/orgball2608/blog-post-state/internal/poststate"
	"github.com/orgball2608/blog-post-state/internal/poststate/poststateimpl"
	"github.com/orgball2608/blog-post-state/internal/ratelimit"
	"github.com/orgball2608/blog-post-state/internal/refresher"
	"github.com/orgball2608/blog-post-state/internal/refresher/refresherimpl"
	"github.com/orgball2608/blog-post-state/pkg/config"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		poststateimpl.NewDefaultMetrics,
		fx.Annotate(
			newLimiter,
			fx.As(new(ratelimit.Limiter)),
		),
	),
	fx.Provide(
		fx.Annotate(
			blogapiimpl.New,
			fx.As(new(blogapi.Client)),
		),
		fx.Annotate(
			poststateimpl.New,
			fx.As(new(poststate.Store)),
		),
		fx.Annotate(
			refresherimpl.New,
			fx.As(new(refresher.Client)),
		),
		NewServer,
	),
	fx.Invoke(run),
)

func newLimiter(cfg *config.Config) *ratelimit.InMemoryLimiter {
	return ratelimit.NewInMemoryLimiter(cfg.API.RequestsPerSecond, cfg.API.Burst)
}

func run(lc fx.Lifecycle, log logger.Logger, srv *Server, feed refresher.Client) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := srv.Start(); err != nil {
				cancel()
				return err
			}

			if err := feed.Start(runCtx); err != nil {
				log.Error("Feed refresh setup error", "Error", err)
			}

			go func() {
				if err := feed.RefreshNow(runCtx); err != nil {
					log.Warn("Initial feed load failed", "Error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if err := feed.Stop(); err != nil {
				log.Error("Feed refresh stop error", "Error", err)
			}
			err := srv.Shutdown(ctx)
			logger.Flush()
			return err
		},
	})
}
