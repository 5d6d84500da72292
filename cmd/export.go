package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the leaderboard to an XLSX report",
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

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Leaderboard")
		if err != nil {
			return eris.Wrap(err, "export: add sheet")
		}

		header := sheet.AddRow()
		for _, h := range []string{
			"Rank", "City", "State", "County", "Investment Score",
			"Price Growth %", "Cap Rate %", "Job Growth %", "Affordability", "Sample Size",
		} {
			header.AddCell().SetString(h)
		}

		for _, it := range items {
			row := sheet.AddRow()
			row.AddCell().SetInt(it.Rank)
			row.AddCell().SetString(it.City)
			row.AddCell().SetString(it.State)
			row.AddCell().SetString(it.County)
			row.AddCell().SetFloat(it.InvestmentScore)
			row.AddCell().SetFloat(it.PriceGrowthPct)
			row.AddCell().SetFloat(it.CapRatePct)
			row.AddCell().SetFloat(it.JobGrowthPct)
			row.AddCell().SetFloat(it.Affordability)
			row.AddCell().SetInt(it.SampleSize)
		}

		if err := file.Save(exportOut); err != nil {
			return eris.Wrap(err, "export: save file")
		}

		zap.L().Info("export complete",
			zap.String("path", exportOut),
			zap.Int("rows", len(items)),
		)
		fmt.Printf("wrote %d rows to %s\n", len(items), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "leaderboard.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
