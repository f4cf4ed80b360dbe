package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/config"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/session"
	"github.com/petly-community/petly/internal/ui/types"
)

// app holds the dependencies shared by the commands
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	messages *i18n.Messages
	client   *client.Client
	store    *session.Store
	stdout   io.Writer
	stderr   io.Writer

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	messages := i18n.New(cfg.Locale)

	a := &app{
		cfg:      cfg,
		logger:   appLogger,
		messages: messages,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	storage, closer, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	a.client = client.NewClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithMessages(messages),
		client.WithLogger(appLogger),
	)
	a.store = session.NewStore(a.client, storage, appLogger)

	// the session starts empty when the backend can't be read
	if err := a.store.Initialize(ctx); err != nil {
		appLogger.Warn("could not restore the session", slog.String("error", err.Error()))
	}

	return a, nil
}

// openStorage returns the session storage for the configured backend, sealed when SESSION_SECRET is set.
// The returned func releases the backend connections
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Storage, func(), error) {
	var (
		storage session.Storage
		closer  func()
	)

	switch cfg.SessionBackend {
	case config.BackendMemory:
		storage = session.NewMemoryStorage()
	case config.BackendRedis:
		rdb, err := session.OpenRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		storage = session.NewRedisStorage(rdb, cfg.SessionKeyPrefix)
		closer = func() { _ = rdb.Close() }
	case config.BackendPostgres:
		pool, err := session.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		storage = session.NewPostgresStorage(pool, cfg.SessionKeyPrefix)
		closer = pool.Close
	default:
		dir := cfg.SessionDir
		if dir == "" {
			var err error
			if dir, err = config.DefaultSessionDir(); err != nil {
				return nil, nil, err
			}
		}
		storage = session.NewFileStorage(dir)
	}

	if cfg.SessionSecret != "" {
		sealed, err := session.NewSealedStorage(storage, cfg.SessionSecret)
		if err != nil {
			if closer != nil {
				closer()
			}
			return nil, nil, err
		}
		storage = sealed
	}

	return storage, closer, nil
}

// run builds the app and calls fn. Errors are reported on stderr with their user-facing message
func run(cmd *cobra.Command, fallbackKey string, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer a.Close()
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	if err := fn(ctx, a); err != nil {
		a.logger.Debug("command failed", slog.String("command", cmd.CommandPath()), slog.String("error", err.Error()))
		fmt.Fprintln(a.stderr, client.UserMessage(err, a.messages.Get(fallbackKey)))
		return err
	}
	return nil
}

// cliError is a local failure with a message for the user
type cliError struct {
	message string
}

func (e *cliError) Error() string {
	return e.message
}

func (e *cliError) UserError() string {
	return e.message
}

// requireSession fails when there is no usable session. A locally expired token is discarded
func (a *app) requireSession(ctx context.Context) error {
	switch a.store.TokenStatus() {
	case session.TokenExpired:
		if err := a.store.Logout(ctx); err != nil {
			return err
		}
	case session.TokenMissing:
	default:
		if a.store.Authenticated() {
			return nil
		}
	}
	return &cliError{message: a.messages.Get(i18n.MsgLoginRequired)}
}

func (a *app) requireRole(ctx context.Context, roles ...types.Role) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if !a.store.HasRole(roles...) {
		return &cliError{message: a.messages.Get(i18n.MsgAccessDenied)}
	}
	return nil
}
