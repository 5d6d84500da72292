package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	kpisCity  string
	kpisState string
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Print the KPI snapshot for one city",
	RunE: func(cmd *cobra.Command, args []string) error {
		if kpisCity == "" || kpisState == "" {
			return eris.New("both --city and --state are required")
		}

		eng, closeEngine, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeEngine()

		snapshot, _, err := eng.CityKpis(cmd.Context(), kpisCity, kpisState)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	},
}

func init() {
	kpisCmd.Flags().StringVar(&kpisCity, "city", "", "city name")
	kpisCmd.Flags().StringVar(&kpisState, "state", "", "two-letter state code")
	rootCmd.AddCommand(kpisCmd)
}
