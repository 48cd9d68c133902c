// Package admin holds the jablog-admin command tree: schema migrations and
// operator-side account management against the same store the server uses.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jablog/internal/buildinfo"
	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/config"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
)

type envKey struct{}

// env is what every subcommand needs once the root has resolved config.
type env struct {
	cfg    *config.Config
	logger logging.Logger
}

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var (
		configFile string
		dsn        string
	)

	cmd := &cobra.Command{
		Use:          "jablog-admin [command] [flags]",
		Short:        "Administrative tasks for the jablog server",
		Version:      buildinfo.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var args []string
			if configFile != "" {
				args = []string{"-c", configFile}
			}
			cfg, err := config.LoadConfig(args)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("database") {
				cfg.DatabaseDSN = dsn
			}
			logger := logging.New(cfg.LogLevel)
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{cfg: cfg, logger: logger}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a JSON configuration file")
	cmd.PersistentFlags().StringVarP(&dsn, "database", "d", "", "database DSN, overrides configuration")

	cmd.AddCommand(
		migrateCommand(),
		userCommand(),
	)

	return cmd
}

func loadEnv(ctx context.Context) (*env, error) {
	e, ok := ctx.Value(envKey{}).(*env)
	if !ok {
		return nil, errors.New("config resolution failed")
	}
	return e, nil
}

// openStore connects and migrates; callers own the returned *sql.DB.
func openStore(ctx context.Context, e *env) (*sql.DB, repomanager.RepositoryManager, error) {
	db, repos, err := repomanager.Open(ctx, e.cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, repos, nil
}
