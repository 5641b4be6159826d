package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/prefs"
	"github.com/robalobadob/mastermind/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the game over a local HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", rootOpts.Config.Port, "listen port")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ps, err := openPrefs(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer ps.Close()

	cfg := opts.Config
	srv := httpserver.New(store.NewMemoryStore(), ps, httpserver.Options{
		Secret:       cfg.SessionSecret,
		ClientOrigin: cfg.ClientOrigin,
		TestMode:     cfg.TestMode,
		Seed:         cfg.Seed,
		DailySalt:    cfg.DailySalt,
	})

	log.Info().Str("port", opts.Port).Str("db", opts.DB).Msg("starting mastermind server")
	if err := srv.Start(ctx, ":"+opts.Port); err != nil {
		return WrapExitError(ExitCommandError, "server exited", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// openPrefs opens the SQLite preference store at --db, defaulting the
// language from the process locale.
func openPrefs(ctx context.Context, opts *RootOptions) (*prefs.SQLiteStore, error) {
	ps, err := prefs.OpenSQLite(ctx, opts.DB, prefs.Defaults(localeFromEnv()))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return ps, nil
}

// localeFromEnv follows the POSIX precedence LC_ALL > LC_MESSAGES > LANG.
func localeFromEnv() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
