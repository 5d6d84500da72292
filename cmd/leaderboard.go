package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var leaderboardJSON bool

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the Top-N investment market leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeEngine, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeEngine()

		items, _, err := eng.Leaderboard(cmd.Context())
		if err != nil {
			return err
		}

		if leaderboardJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tCITY\tSTATE\tSCORE\tGROWTH%\tCAP%\tJOBS%\tAFFORD\tSAMPLE")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.2f\t%.2f\t%.2f\t%.0f\t%d\n",
				it.Rank, it.City, it.State, it.InvestmentScore,
				it.PriceGrowthPct, it.CapRatePct, it.JobGrowthPct,
				it.Affordability, it.SampleSize,
			)
		}
		return w.Flush()
	},
}

func init() {
	leaderboardCmd.Flags().BoolVar(&leaderboardJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(leaderboardCmd)
}
