package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a logger tagging every record with the component name.
	WithComponent(name string) Logger

	// Printf lets the logger act as the fx event printer.
	Printf(format string, args ...any)
}

type Opts struct {
	Env       string
	SentryDSN string
	Output    io.Writer
}

type Impl struct {
	log *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger writing through zerolog, plus Sentry for errors
// when a DSN is configured.
func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelInfo
	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		level = slog.LevelDebug
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(out).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Error().Err(err).Msg("Failed to init sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{log: slog.New(slogmulti.Fanout(handlers...))}
}

// NewNop returns a logger that discards everything.
func NewNop() *Impl {
	return &Impl{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Impl) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.log.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{log: l.log.With("component", name)}
}

func (l *Impl) Printf(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events.
func Flush() {
	sentry.Flush(2 * time.Second)
}
