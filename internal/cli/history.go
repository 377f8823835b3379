package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/elimination-pq/internal/store"
)

func newHistoryCommand(a *app) *cobra.Command {
	var (
		db      string
		variant string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				db = a.cfg.DB
			}
			if db == "" {
				return errorf("history needs --db or a configured db")
			}

			s, err := store.Open(db)
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := s.Recent(commandContext(cmd), variant, limit)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no archived sweeps")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "sweep\tstarted\tvariant\tthreads\tper-thread ms\tops/sec\tempty")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.3f\t%.0f\t%d\n",
					r.SweepID, r.Started.Format(time.RFC3339), r.Variant,
					r.Threads, r.PerThreadMillis, r.OpsPerSec, r.Empty)
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&db, "db", "", "SQLite results archive")
	f.StringVar(&variant, "variant", "", "only show this variant")
	f.IntVarP(&limit, "limit", "n", 5, "number of most recent sweeps")
	return cmd
}
