package metrics

import (
	coremetrics "github.com/voltwise/stationmatch/core/metrics"
	"github.com/voltwise/stationmatch/core/model"
)

// MultiSink fans recommendation events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRecommendation forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordRecommendation(ev coremetrics.RecommendationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRecommendation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancyForecast forwards forecast events to sinks that support them.
func (m *MultiSink) RecordOccupancyForecast(f model.OccupancyForecast) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.OccupancyRecorder); ok {
			if err := rec.RecordOccupancyForecast(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDirectorySize forwards directory size updates to sinks that support
// them.
func (m *MultiSink) RecordDirectorySize(n int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DirectorySizeRecorder); ok {
			if err := rec.RecordDirectorySize(n); err != nil {
				return err
			}
		}
	}
	return nil
}
