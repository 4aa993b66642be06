package metrics

import (
	"time"

	"github.com/voltwise/stationmatch/core/model"
)

// RecommendationEvent captures one engine invocation for observability.
type RecommendationEvent struct {
	RequestID       string
	Intent          model.Intent
	Candidates      int
	Reachable       int
	Returned        int
	TopMatchPercent int
	Duration        time.Duration
	Time            time.Time
}

// MetricsSink records recommendation events.
type MetricsSink interface {
	RecordRecommendation(ev RecommendationEvent) error
}

// OccupancyRecorder records forecast levels served to callers.
type OccupancyRecorder interface {
	RecordOccupancyForecast(f model.OccupancyForecast) error
}

// DirectorySizeRecorder records the number of facilities known to the
// directory feed.
type DirectorySizeRecorder interface {
	RecordDirectorySize(n int) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordRecommendation(RecommendationEvent) error        { return nil }
func (NopSink) RecordOccupancyForecast(model.OccupancyForecast) error { return nil }
func (NopSink) RecordDirectorySize(int) error                         { return nil }
