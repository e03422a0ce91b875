package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nestegg/internal/cache"
	"nestegg/internal/core"
)

// ProjectionService computes portfolio timelines under what-if scenarios,
// caching results keyed by a fingerprint of the portfolio and the scenario.
type ProjectionService struct {
	store InstrumentStore
	cache cache.Cache[[]core.ProjectionPoint]
}

func NewProjectionService(store InstrumentStore, c cache.Cache[[]core.ProjectionPoint]) *ProjectionService {
	return &ProjectionService{store: store, cache: c}
}

// Timeline returns the month-by-month projection of the whole portfolio under
// the scenario, anchored on today. Instruments are evaluated in parallel;
// they are independent of one another.
func (s *ProjectionService) Timeline(ctx context.Context, sc core.Scenario, today core.Date) ([]core.ProjectionPoint, error) {
	insts, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load instruments: %w", err)
	}

	key := Fingerprint(insts, sc, today)
	if s.cache != nil {
		if points, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Projection cache hit", "key", key)
			return points, nil
		}
	}

	dates := core.TimelineDates(insts, today)
	if len(dates) == 0 {
		return nil, nil
	}

	series := make([][]float64, len(insts))
	g, _ := errgroup.WithContext(ctx)
	for i, in := range insts {
		g.Go(func() error {
			values, err := core.InstrumentSeries(in, sc, today, dates)
			if err != nil {
				return err
			}
			series[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points, err := core.CombineSeries(insts, series, dates)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, points)
	}
	slog.InfoContext(ctx, "Projection computed",
		"instruments", len(insts), "points", len(points), "key", key)
	return points, nil
}

// Fingerprint hashes everything the timeline depends on: every instrument
// field that feeds the projection, the scenario parameters and the anchor
// date. Any change produces a new key, so stale entries simply age out.
func Fingerprint(insts []core.Instrument, sc core.Scenario, today core.Date) string {
	h := fnv.New64a()
	for _, in := range insts {
		fmt.Fprintf(h, "%d|%s|%s|%g|%g|%s|%s|%d|%g|%t|%g;",
			in.ID, in.Name, in.Kind, in.Principal, in.AnnualRate,
			in.StartDate, in.MaturityDate, in.CompoundingFrequency,
			in.MonthlyContribution, in.HasPayout, in.TotalContributions)
	}
	fmt.Fprintf(h, "sc:%g|%g|%t|%s", sc.RateShockPct, sc.InflationPct, sc.RealTerms, today)
	return fmt.Sprintf("%016x", h.Sum64())
}
