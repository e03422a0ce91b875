package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"nestegg/internal/core"
	"nestegg/internal/worker"
)

type projectionPoint struct {
	Date      string            `json:"date"`
	Total     float64           `json:"total"`
	Breakdown []instrumentValue `json:"breakdown"`
}

type instrumentValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type projectionResponse struct {
	Scenario struct {
		RateShockPct float64 `json:"rate_shock_pct"`
		InflationPct float64 `json:"inflation_pct"`
		RealTerms    bool    `json:"real_terms"`
	} `json:"scenario"`
	Points []projectionPoint `json:"points"`
}

func toProjectionPoints(points []core.ProjectionPoint) []projectionPoint {
	out := make([]projectionPoint, 0, len(points))
	for _, p := range points {
		pp := projectionPoint{Date: p.Date.String(), Total: p.Total}
		for _, b := range p.Breakdown {
			pp.Breakdown = append(pp.Breakdown, instrumentValue{Name: b.InstrumentName, Value: b.Value})
		}
		out = append(out, pp)
	}
	return out
}

// handleProjection computes the timeline under the scenario from the query:
// ?shock=-10&inflation=5&real=true, all optional.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	sc, err := scenarioFromQuery(r)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	points, err := s.projections.Timeline(r.Context(), sc, core.Today())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := projectionResponse{Points: toProjectionPoints(points)}
	resp.Scenario.RateShockPct = sc.RateShockPct
	resp.Scenario.InflationPct = sc.InflationPct
	resp.Scenario.RealTerms = sc.RealTerms
	writeJSON(w, http.StatusOK, resp)
}

type snapshotResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Points      []projectionPoint `json:"points"`
}

// handleProjectionSnapshot serves the worker-maintained baseline timeline
// without recomputing anything.
func (s *Server) handleProjectionSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "snapshot store not configured"})
		return
	}
	points, generatedAt, err := s.snapshots.LoadSnapshot(r.Context(), worker.BaselineSnapshotKey)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{
		GeneratedAt: generatedAt,
		Points:      toProjectionPoints(points),
	})
}

func scenarioFromQuery(r *http.Request) (core.Scenario, error) {
	var sc core.Scenario
	q := r.URL.Query()

	if v := q.Get("shock"); v != "" {
		shock, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return core.Scenario{}, fmt.Errorf("invalid shock parameter: %q", v)
		}
		sc.RateShockPct = shock
	}
	if v := q.Get("inflation"); v != "" {
		infl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return core.Scenario{}, fmt.Errorf("invalid inflation parameter: %q", v)
		}
		sc.InflationPct = infl
	}
	if v := q.Get("real"); v != "" {
		real, err := strconv.ParseBool(v)
		if err != nil {
			return core.Scenario{}, fmt.Errorf("invalid real parameter: %q", v)
		}
		sc.RealTerms = real
	}
	return sc, nil
}
