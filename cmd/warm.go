package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	warmCities      string
	warmConcurrency int
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Precompute and cache KPI snapshots for a city list",
	Long:  `Fetches and caches KPI snapshots for each "City,ST" pair in --cities (semicolon-separated) so the first dashboard request is served warm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := parseCityList(warmCities)
		if err != nil {
			return err
		}

		eng, closeEngine, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeEngine()

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(warmConcurrency)

		for _, p := range pairs {
			p := p
			g.Go(func() error {
				snapshot, cached, err := eng.CityKpis(ctx, p[0], p[1])
				if err != nil {
					return eris.Wrapf(err, "warm %s, %s", p[0], p[1])
				}
				zap.L().Info("warm: snapshot ready",
					zap.String("city", snapshot.City),
					zap.String("state", snapshot.State),
					zap.Bool("was_cached", cached),
					zap.Float64("opportunity_score", snapshot.OpportunityScore),
				)
				return nil
			})
		}

		return g.Wait()
	},
}

// parseCityList splits "Austin,TX;Dallas,TX" into [city, state] pairs.
func parseCityList(raw string) ([][2]string, error) {
	var pairs [][2]string
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, eris.Errorf("invalid city entry %q, want \"City,ST\"", entry)
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	}
	if len(pairs) == 0 {
		return nil, eris.New("--cities is required, e.g. \"Austin,TX;Dallas,TX\"")
	}
	return pairs, nil
}

func init() {
	warmCmd.Flags().StringVar(&warmCities, "cities", "", `semicolon-separated "City,ST" pairs`)
	warmCmd.Flags().IntVar(&warmConcurrency, "concurrency", 4, "max concurrent cities")
	rootCmd.AddCommand(warmCmd)
}
