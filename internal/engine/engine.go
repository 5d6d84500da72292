// Package engine wires fetch, aggregation, scoring, and the synthetic
// generators behind one facade shared by the HTTP API and the CLI commands.
// Every computation is a stateless batch over a freshly fetched sample; the
// only state is the TTL'd result cache.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/propsignal/market-cli/internal/aggregate"
	"github.com/propsignal/market-cli/internal/cache"
	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/fetcher"
	"github.com/propsignal/market-cli/internal/kpi"
	"github.com/propsignal/market-cli/internal/model"
	"github.com/propsignal/market-cli/internal/provider"
	"github.com/propsignal/market-cli/internal/scoring"
	"github.com/propsignal/market-cli/internal/synth"
)

// Engine exposes the market computations.
type Engine struct {
	fetch      *fetcher.Fetcher
	agg        *aggregate.Aggregator
	scorer     *scoring.Scorer
	orch       *kpi.Orchestrator
	store      cache.Store
	ttl        time.Duration
	sampleSize int
	now        func() time.Time
}

// New builds an Engine from configuration. A nil store disables caching.
func New(cfg *config.Config, searcher provider.Searcher, store cache.Store) *Engine {
	if store == nil || cfg.Cache.Disabled {
		store = cache.Noop{}
	}
	sampleSize := cfg.Provider.SampleSize
	if sampleSize <= 0 {
		sampleSize = 500
	}
	fetch := fetcher.New(searcher, cfg.Provider.BroadSampleCap)
	agg := aggregate.New(cfg.Scoring, nil)
	return &Engine{
		fetch:      fetch,
		agg:        agg,
		scorer:     scoring.NewScorer(cfg.Scoring),
		orch:       kpi.NewOrchestrator(fetch, agg, cfg.Scoring, sampleSize),
		store:      store,
		ttl:        cfg.Cache.TTL,
		sampleSize: sampleSize,
		now:        time.Now,
	}
}

// Leaderboard computes the Top-N city leaderboard from a nationwide sample.
// The boolean reports whether the result was served from cache.
func (e *Engine) Leaderboard(ctx context.Context) ([]model.LeaderboardItem, bool, error) {
	var items []model.LeaderboardItem
	if hit := e.cached(ctx, "leaderboard", &items); hit {
		return items, true, nil
	}

	listings, err := e.fetch.FetchSample(ctx, nil, e.sampleSize)
	if err != nil {
		return nil, false, eris.Wrap(err, "engine: leaderboard sample")
	}

	cities := e.agg.AggregateList(listings)
	items = e.scorer.Score(cities)
	e.put(ctx, "leaderboard", items)
	return items, false, nil
}

// CityKpis computes the single-city KPI snapshot.
func (e *Engine) CityKpis(ctx context.Context, city, state string) (model.CityKpiSnapshot, bool, error) {
	scope := fetcher.NewScope(city, state)
	key := fmt.Sprintf("kpis:%s,%s", scope.City, scope.State)

	var snapshot model.CityKpiSnapshot
	if hit := e.cached(ctx, key, &snapshot); hit {
		return snapshot, true, nil
	}

	snapshot, err := e.orch.ComputeCityKpisFromSample(ctx, city, state)
	if err != nil {
		return model.CityKpiSnapshot{}, false, err
	}
	e.put(ctx, key, snapshot)
	return snapshot, false, nil
}

// MonthlySeries synthesizes the stable per-month price series for a city.
func (e *Engine) MonthlySeries(ctx context.Context, city, state string, months int) ([]model.MonthlyKpiPoint, error) {
	snapshot, _, err := e.CityKpis(ctx, city, state)
	if err != nil {
		return nil, err
	}
	return synth.MonthlySeries(snapshot, months, e.now()), nil
}

// Heatmap synthesizes the stable neighborhood heatmap for a city.
func (e *Engine) Heatmap(ctx context.Context, city, state string) ([]model.NeighborhoodCell, error) {
	snapshot, _, err := e.CityKpis(ctx, city, state)
	if err != nil {
		return nil, err
	}
	return synth.NeighborhoodHeatmap(snapshot), nil
}

// AgentActivity synthesizes the financing mix for a city.
func (e *Engine) AgentActivity(ctx context.Context, city, state string) (model.AgentActivityMix, error) {
	snapshot, _, err := e.CityKpis(ctx, city, state)
	if err != nil {
		return model.AgentActivityMix{}, err
	}
	return synth.AgentActivityMix(snapshot), nil
}

// cached loads key into out, reporting a live hit. Cache failures only log;
// the computation proceeds as if uncached.
func (e *Engine) cached(ctx context.Context, key string, out any) bool {
	payload, ok, err := e.store.Get(ctx, key)
	if err != nil {
		zap.L().Warn("engine: cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		zap.L().Warn("engine: cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (e *Engine) put(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("engine: cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := e.store.Set(ctx, key, payload, e.ttl); err != nil {
		zap.L().Warn("engine: cache set failed", zap.String("key", key), zap.Error(err))
	}
}
