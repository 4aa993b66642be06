package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/voltwise/stationmatch/core/metrics"
	"github.com/voltwise/stationmatch/core/model"
)

// PromSink records recommendation events in Prometheus metrics.
type PromSink struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	forecasts *prometheus.CounterVec
	directory prometheus.Gauge
}

// NewPromSink registers recommendation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation requests",
	}, []string{"intent", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_duration_seconds",
		Help:    "Time spent ranking one candidate set",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "occupancy_forecasts_total",
		Help: "Occupancy forecasts served, by level",
	}, []string{"level"})
	directory := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "directory_facilities_total",
		Help: "Number of facilities known to the directory feed",
	})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(forecasts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			forecasts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(directory); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			directory = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, latency: latency, forecasts: forecasts, directory: directory}, nil
}

// RecordRecommendation increments the request counter and observes latency.
func (s *PromSink) RecordRecommendation(ev coremetrics.RecommendationEvent) error {
	outcome := "ranked"
	if ev.Returned == 0 {
		outcome = "empty"
	}
	s.requests.WithLabelValues(ev.Intent.String(), outcome).Inc()
	s.latency.WithLabelValues(ev.Intent.String()).Observe(ev.Duration.Seconds())
	return nil
}

// RecordOccupancyForecast counts forecasts by level.
func (s *PromSink) RecordOccupancyForecast(f model.OccupancyForecast) error {
	s.forecasts.WithLabelValues(f.Level.String()).Inc()
	return nil
}

// RecordDirectorySize sets the gauge to the number of known facilities.
func (s *PromSink) RecordDirectorySize(n int) error {
	if s.directory != nil {
		s.directory.Set(float64(n))
	}
	return nil
}
