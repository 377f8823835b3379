package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/elimination-pq/internal/bench"
)

func newVariantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the priority queue variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, v := range bench.Variants() {
				threads := "multi"
				if !v.Concurrent {
					threads = "single"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, threads, v.Description)
			}
			return tw.Flush()
		},
	}
}
