package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/smartlibrary/internal/importers"
)

func newImportCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Load members, books, clubs and users from a YAML catalog",
		Long: `Load members, books, clubs and users from a YAML catalog.

Records that already exist are skipped, so the same file can be imported again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := importers.LoadCatalog(args[0])
			if err != nil {
				return err
			}

			db, svc, err := st.openLibrary()
			if err != nil {
				return err
			}
			defer db.Close()

			users, err := st.authService(db)
			if err != nil {
				return err
			}

			result, err := importers.NewPipeline(svc, users, st.logger).Import(cmd.Context(), catalog)
			printImportResult(cmd, result)
			return err
		},
	}
}

func printImportResult(cmd *cobra.Command, result importers.Result) {
	out := cmd.OutOrStdout()
	rows := []struct {
		name   string
		counts importers.Counts
	}{
		{"members", result.Members},
		{"books", result.Books},
		{"clubs", result.Clubs},
		{"memberships", result.Memberships},
		{"users", result.Users},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%-12s created %d, skipped %d\n", row.name, row.counts.Created, row.counts.Skipped)
	}
}
