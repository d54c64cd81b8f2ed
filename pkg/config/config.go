package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/orgball2608/blog-post-state/pkg/formatter"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	API struct {
		BaseURL           string        `env:"BLOG_API_BASE_URL" env-default:"http://localhost:5000/api"`
		Timeout           time.Duration `env:"BLOG_API_TIMEOUT" env-default:"15s"`
		RequestsPerSecond float64       `env:"BLOG_API_REQUESTS_PER_SECOND" env-default:"5"`
		Burst             int           `env:"BLOG_API_BURST" env-default:"10"`
	}
	Feed struct {
		PageSize        int    `env:"FEED_PAGE_SIZE" env-default:"10"`
		RefreshCron     string `env:"FEED_REFRESH_CRON" env-default:"*/5 * * * *"`
		RelativeAgeMode string `env:"FEED_RELATIVE_AGE_MODE" env-default:"fixed"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New reads the configuration from the environment once per process.
func New() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = Load()
	})
	return cfg, loadErr
}

// Load reads and validates a fresh configuration from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		help, _ := cleanenv.GetDescription(c, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("BLOG_API_BASE_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("BLOG_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.API.RequestsPerSecond <= 0 || c.API.Burst <= 0 {
		return fmt.Errorf("BLOG_API_REQUESTS_PER_SECOND and BLOG_API_BURST must be positive")
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("FEED_PAGE_SIZE must be positive, got %d", c.Feed.PageSize)
	}
	if _, err := formatter.ParseRelativeAgeMode(c.Feed.RelativeAgeMode); err != nil {
		return fmt.Errorf("FEED_RELATIVE_AGE_MODE: %w", err)
	}
	return nil
}
