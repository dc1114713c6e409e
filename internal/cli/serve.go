package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/entrypoint"
)

func newServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, task queue and overdue scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st.logger.Info("starting smartlibrary", zap.String("version", st.version))

			app, err := entrypoint.Build(st.cfg, st.version, st.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					st.logger.Error("error during close", zap.Error(err))
				}
			}()

			return app.Run(cmd.Context())
		},
	}
}
