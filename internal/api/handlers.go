package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	items, cached, err := s.engine.Leaderboard(r.Context())
	if err != nil {
		zap.L().Error("api: leaderboard failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "leaderboard computation failed")
		return
	}
	respond(w, http.StatusOK, items, map[string]any{"cached": cached, "count": len(items)})
}

func (s *Server) handleKpis(w http.ResponseWriter, r *http.Request) {
	city, state, ok := cityState(w, r)
	if !ok {
		return
	}
	snapshot, cached, err := s.engine.CityKpis(r.Context(), city, state)
	if err != nil {
		zap.L().Error("api: kpis failed",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "kpi computation failed")
		return
	}
	respond(w, http.StatusOK, snapshot, map[string]any{"cached": cached})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	city, state, ok := cityState(w, r)
	if !ok {
		return
	}
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 60 {
			respondError(w, http.StatusBadRequest, "months must be an integer between 1 and 60")
			return
		}
		months = n
	}
	points, err := s.engine.MonthlySeries(r.Context(), city, state, months)
	if err != nil {
		zap.L().Error("api: monthly series failed",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "monthly series computation failed")
		return
	}
	respond(w, http.StatusOK, points, map[string]any{"months": months, "synthetic": true})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	city, state, ok := cityState(w, r)
	if !ok {
		return
	}
	cells, err := s.engine.Heatmap(r.Context(), city, state)
	if err != nil {
		zap.L().Error("api: heatmap failed",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "heatmap computation failed")
		return
	}
	respond(w, http.StatusOK, cells, map[string]any{"synthetic": true})
}

// handleOpportunity returns the snapshot's opportunity view: the score plus
// the component metrics behind it.
func (s *Server) handleOpportunity(w http.ResponseWriter, r *http.Request) {
	city, state, ok := cityState(w, r)
	if !ok {
		return
	}
	snapshot, cached, err := s.engine.CityKpis(r.Context(), city, state)
	if err != nil {
		zap.L().Error("api: opportunity failed",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "opportunity computation failed")
		return
	}
	summary := map[string]any{
		"city":              snapshot.City,
		"state":             snapshot.State,
		"opportunity_score": snapshot.OpportunityScore,
		"price_growth_pct":  snapshot.PriceGrowthPct,
		"cap_rate_pct":      snapshot.CapRatePct,
		"job_growth_pct":    snapshot.JobGrowthPct,
		"affordability_raw": snapshot.AffordabilityRaw,
	}
	respond(w, http.StatusOK, summary, map[string]any{"cached": cached})
}

func (s *Server) handleAgentActivity(w http.ResponseWriter, r *http.Request) {
	city, state, ok := cityState(w, r)
	if !ok {
		return
	}
	mix, err := s.engine.AgentActivity(r.Context(), city, state)
	if err != nil {
		zap.L().Error("api: agent activity failed",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "agent activity computation failed")
		return
	}
	respond(w, http.StatusOK, mix, map[string]any{"synthetic": true})
}
