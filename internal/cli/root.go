// Package cli implements the smartlibrary command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database"
	"github.com/mrlokans/smartlibrary/internal/library"
)

// state is shared by all subcommands of one invocation.
type state struct {
	version string
	verbose bool

	// Replaced in tests.
	loadConfig  func() *config.Config
	buildLogger func(verbose bool) (*zap.Logger, error)

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(&state{
		version:     version,
		loadConfig:  config.NewConfig,
		buildLogger: productionLogger,
	})
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapCfg.Build()
}

func newRootCommand(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartlibrary",
		Short:         "Library catalog, members, loans and book clubs",
		Version:       st.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := st.buildLogger(st.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			st.logger = logger
			st.cfg = st.loadConfig()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCommand(st),
		newUserCommand(st),
		newImportCommand(st),
		newOverdueCommand(st),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, version string, args []string, stderr io.Writer) int {
	cmd := NewRootCommand(version)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLibrary opens the configured database for a one-shot command.
func (st *state) openLibrary() (*database.Database, *library.Service, error) {
	db, err := database.NewDatabase(st.cfg.Database, st.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, library.NewService(db, st.cfg.Library, library.WithLogger(st.logger)), nil
}

func (st *state) authService(db *database.Database) (*auth.Service, error) {
	return auth.NewService(db.DB, st.cfg.Auth, st.logger)
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
