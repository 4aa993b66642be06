package engine

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/voltwise/stationmatch/core/logger"
	"github.com/voltwise/stationmatch/core/model"
	"github.com/voltwise/stationmatch/core/occupancy"
)

// Config tunes the recommendation engine.
type Config struct {
	// SafetyMarginPercent inflates the energy needed to reach a facility so a
	// vehicle is never sent somewhere it can barely make.
	SafetyMarginPercent float64 `json:"safety_margin_percent"`
}

// SetDefaults applies the default safety margin.
func (c *Config) SetDefaults() {
	if c.SafetyMarginPercent <= 0 {
		c.SafetyMarginPercent = 15
	}
}

// Query is one recommendation request. Candidates are snapshots; the engine
// does not mutate them.
type Query struct {
	UserLocation model.Coordinate
	Vehicle      model.VehicleProfile
	Intent       model.Intent
	Candidates   []model.Facility
}

// Engine ranks candidate facilities. It is stateless and safe for concurrent
// use.
type Engine struct {
	cfg       Config
	predictor occupancy.Predictor
	log       logger.Logger
}

// New builds an Engine. A nil predictor falls back to the heuristic model and
// a nil logger disables engine logging.
func New(cfg Config, pred occupancy.Predictor, log logger.Logger) *Engine {
	cfg.SetDefaults()
	if pred == nil {
		pred = occupancy.NewHeuristicPredictor()
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{cfg: cfg, predictor: pred, log: log}
}

// scoredCandidate pairs a surviving candidate with its per-criterion scores.
type scoredCandidate struct {
	facility   model.Facility
	distanceKm float64
	forecast   model.OccupancyForecast
	sub        subscores
	raw        float64
}

// Recommend filters, scores and ranks the candidates for the query and
// returns at most limit results (limit <= 0 means no cap). The returned list
// is sorted by match percent descending, ties broken by distance ascending and
// facility id ascending. Zero reachable candidates is a valid outcome and
// yields an empty list, not an error.
func (e *Engine) Recommend(q Query, limit int) ([]model.Recommendation, error) {
	if err := e.validate(q); err != nil {
		return nil, err
	}
	now := time.Now()
	return e.recommendAt(q, limit, now)
}

// RecommendAt is Recommend with an explicit clock, used by the occupancy
// forecast and by tests that need deterministic output.
func (e *Engine) RecommendAt(q Query, limit int, now time.Time) ([]model.Recommendation, error) {
	if err := e.validate(q); err != nil {
		return nil, err
	}
	return e.recommendAt(q, limit, now)
}

// PredictOccupancy forecasts busyness for a single facility snapshot.
func (e *Engine) PredictOccupancy(f model.Facility, now time.Time) model.OccupancyForecast {
	return e.predictor.Predict(f, now)
}

func (e *Engine) validate(q Query) error {
	if err := q.UserLocation.Validate(); err != nil {
		return err
	}
	if err := q.Vehicle.Validate(); err != nil {
		return err
	}
	if _, ok := intentWeights[q.Intent]; !ok {
		return &model.UnsupportedIntentError{Intent: string(q.Intent)}
	}
	for _, f := range q.Candidates {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) recommendAt(q Query, limit int, now time.Time) ([]model.Recommendation, error) {
	survivors := make([]scoredCandidate, 0, len(q.Candidates))
	for _, f := range q.Candidates {
		d, ok := resolveDistance(q.UserLocation, f)
		if !ok || !isReachable(q.Vehicle, d, e.cfg.SafetyMarginPercent) {
			e.log.Debugw("candidate dropped", map[string]any{
				"facility": f.ID, "distance_km": d, "reason": "unreachable",
			})
			continue
		}
		survivors = append(survivors, scoredCandidate{
			facility:   f,
			distanceKm: d,
			forecast:   e.predictor.Predict(f, now),
		})
	}
	if len(survivors) == 0 {
		return []model.Recommendation{}, nil
	}

	ctx := buildScoringContext(survivors)
	raws := make([]float64, len(survivors))
	for i := range survivors {
		raw, sub, err := score(q.Vehicle, survivors[i].facility, survivors[i].distanceKm, survivors[i].forecast, q.Intent, ctx)
		if err != nil {
			return nil, err
		}
		survivors[i].raw = raw
		survivors[i].sub = sub
		raws[i] = raw
	}
	matches := normalizeScores(raws)

	results := make([]model.Recommendation, len(survivors))
	for i, c := range survivors {
		results[i] = model.Recommendation{
			Facility:     c.facility,
			DistanceKm:   c.distanceKm,
			MatchPercent: matches[i],
			Reasons:      explain(q.Vehicle, c.facility, c.forecast, q.Intent, c.sub, c.distanceKm),
			Occupancy:    c.forecast,
			RawScore:     c.raw,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchPercent != results[j].MatchPercent {
			return results[i].MatchPercent > results[j].MatchPercent
		}
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].Facility.ID < results[j].Facility.ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// buildScoringContext derives the adaptive ceilings from the surviving set.
func buildScoringContext(cands []scoredCandidate) scoringContext {
	distances := make([]float64, len(cands))
	prices := make([]float64, len(cands))
	powers := make([]float64, len(cands))
	for i, c := range cands {
		distances[i] = c.distanceKm
		prices[i] = c.facility.MinPricePerKWh()
		powers[i] = c.facility.MaxPowerKW()
	}
	return scoringContext{
		MaxRadiusKm:  floats.Max(distances),
		PriceCeiling: floats.Max(prices),
		PowerCeiling: floats.Max(powers),
	}
}

// nopLogger keeps the engine free of infra imports when no logger is wired.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
