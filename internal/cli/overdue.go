package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOverdueCommand(st *state) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, svc, err := st.openLibrary()
			if err != nil {
				return err
			}
			defer db.Close()

			loans, err := svc.ListOverdue(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(loans) == 0 {
				fmt.Fprintln(out, "No overdue loans.")
			}
			for _, l := range loans {
				fmt.Fprintf(out, "%s  %-10s %-24s %-16s %s\n",
					l.DueDate.Format("2006-01-02"), l.MemberID, l.MemberName, l.ISBN, l.Title)
			}

			if record {
				result, err := svc.ScanOverdue(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Recorded %d new notice(s).\n", result.Recorded)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Also record overdue notices, like the scheduled scan")
	return cmd
}
