package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/voltwise/stationmatch/api/recommend"
	"github.com/voltwise/stationmatch/config"
	"github.com/voltwise/stationmatch/core/engine"
	coremetrics "github.com/voltwise/stationmatch/core/metrics"
	"github.com/voltwise/stationmatch/infra/directory"
	"github.com/voltwise/stationmatch/infra/logger"
	"github.com/voltwise/stationmatch/infra/metrics"
	"github.com/voltwise/stationmatch/internal/eventbus"
)

// Service wires the recommendation engine, the facility directory feed and
// the HTTP API together.
type Service struct {
	Engine  *engine.Engine
	Store   *directory.MemoryStore
	feed    *directory.Feed
	handler *recommend.Handler
	bus     eventbus.EventBus
	sink    coremetrics.MetricsSink
	log     logger.Logger

	apiAddr     string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	store := directory.NewMemoryStore()

	var feed *directory.Feed
	if cfg.Directory.Broker != "" {
		f, err := directory.NewFeed(cfg.Directory, store, bus)
		if err != nil {
			return nil, fmt.Errorf("directory feed: %w", err)
		}
		feed = f
	} else {
		logg.Warnf("no directory broker configured, serving an empty facility set")
	}

	eng := engine.New(cfg.Engine, nil, logger.New("engine"))
	handler := recommend.NewHandler(eng, store, sink, logger.New("api"))

	return &Service{
		Engine:      eng,
		Store:       store,
		feed:        feed,
		handler:     handler,
		bus:         bus,
		sink:        sink,
		log:         logg,
		apiAddr:     cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the HTTP servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go s.watchDirectory(ctx)

	srv := &http.Server{Addr: s.apiAddr, Handler: s.handler.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("api listening on %s", s.apiAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watchDirectory mirrors directory updates into the facility gauge.
func (s *Service) watchDirectory(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	rec, ok := s.sink.(coremetrics.DirectorySizeRecorder)
	for {
		select {
		case ev, open := <-sub:
			if !open {
				return
			}
			if upd, isUpd := ev.(directory.UpdateEvent); isUpd && ok {
				if err := rec.RecordDirectorySize(upd.Count); err != nil {
					s.log.Warnf("record directory size: %v", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.feed != nil {
		if err := s.feed.Close(); err != nil {
			return err
		}
	}
	s.bus.Close()
	return nil
}
