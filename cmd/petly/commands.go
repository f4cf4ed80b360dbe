package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/config"
	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/server"
	"github.com/petly-community/petly/internal/ui/session"
	"github.com/petly-community/petly/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local ui-api server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgInternalError, func(ctx context.Context, a *app) error {
				a.logger.Info("Starting ui-api server",
					slog.String("version", version.Get().Version),
					slog.String("api_base_url", a.cfg.APIBaseURL),
					slog.String("session_backend", a.cfg.SessionBackend),
				)

				srv, err := server.NewServer(a.cfg, a.store, a.client, a.messages, a.logger)
				if err != nil {
					return err
				}

				if err := srv.Start(ctx); err != nil {
					a.logger.Error("ui-api server error", slog.String("error", err.Error()))
					return err
				}

				a.logger.Info("ui-api server shutdown complete")
				return nil
			})
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the session table used by the postgres backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if cfg.DatabaseURL == "" {
				err := errors.New("DATABASE_URL must be set")
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

			pool, err := session.OpenPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			defer pool.Close()

			if err := session.Migrate(cmd.Context(), pool); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			appLogger.Info("session migrations applied")
			return nil
		},
	}
}

// environment variables read when the passwords are not given as flags or on stdin
const (
	passwordEnv        = "PETLY_PASSWORD"
	confirmPasswordEnv = "PETLY_CONFIRM_PASSWORD"
)

type secret struct {
	value *string
	env   string
}

// readSecrets fills the secrets that were not set by a flag.
// With fromStdin each one is read from its own line of in, otherwise from its environment variable
func readSecrets(in io.Reader, fromStdin bool, secrets ...secret) error {
	var scanner *bufio.Scanner
	if fromStdin {
		scanner = bufio.NewScanner(in)
	}

	for _, s := range secrets {
		if *s.value != "" {
			continue
		}
		if scanner == nil {
			*s.value = os.Getenv(s.env)
			continue
		}
		if scanner.Scan() {
			*s.value = strings.TrimSuffix(scanner.Text(), "\r")
		}
	}

	if scanner != nil {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
	return nil
}

func newLoginCmd() *cobra.Command {
	var (
		form          forms.LoginForm
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgLoginFailed, func(ctx context.Context, a *app) error {
				if err := readSecrets(cmd.InOrStdin(), passwordStdin, secret{&form.Password, passwordEnv}); err != nil {
					return err
				}
				if err := form.Validate(a.messages); err != nil {
					return err
				}
				if err := a.store.Login(ctx, form.Email, form.Password); err != nil {
					return err
				}
				return printJSON(a.stdout, a.store.User())
			})
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password (visible in the process list, prefer --password-stdin or "+passwordEnv+")")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var (
		form          forms.RegisterForm
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgRegisterFailed, func(ctx context.Context, a *app) error {
				err := readSecrets(cmd.InOrStdin(), passwordStdin,
					secret{&form.Password, passwordEnv},
					secret{&form.ConfirmPassword, confirmPasswordEnv},
				)
				if err != nil {
					return err
				}
				if err := form.Validate(a.messages); err != nil {
					return err
				}
				if err := a.store.Register(ctx, form.Name, form.Email, form.Password); err != nil {
					return err
				}
				return printJSON(a.stdout, a.store.User())
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, at least 6 characters (or "+passwordEnv+")")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (or "+confirmPasswordEnv+")")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password and its confirmation from stdin, one per line")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session kept on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgInternalError, func(ctx context.Context, a *app) error {
				if err := a.store.Logout(ctx); err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgLoggedOut), nil)
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgInternalError, func(ctx context.Context, a *app) error {
				if err := a.requireSession(ctx); err != nil {
					return err
				}
				return printJSON(a.stdout, struct {
					User        *session.User `json:"user"`
					TokenStatus string        `json:"token_status"`
					IsAdmin     bool          `json:"is_admin"`
					IsOng       bool          `json:"is_ong"`
				}{
					User:        a.store.User(),
					TokenStatus: a.store.TokenStatus().String(),
					IsAdmin:     a.store.IsAdmin(),
					IsOng:       a.store.IsOng(),
				})
			})
		},
	}
}

func parseID(messages *i18n.Messages, arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return 0, &cliError{message: messages.Get(i18n.MsgInvalidID)}
	}
	return n, nil
}
