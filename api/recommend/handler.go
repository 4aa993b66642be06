// Package recommend exposes the recommendation engine over HTTP. It is a thin
// boundary: decode, validate via the engine, encode. All ranking semantics
// live in core/engine.
package recommend

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/voltwise/stationmatch/core/engine"
	"github.com/voltwise/stationmatch/core/logger"
	coremetrics "github.com/voltwise/stationmatch/core/metrics"
	"github.com/voltwise/stationmatch/core/model"
	"github.com/voltwise/stationmatch/infra/directory"
)

// Request is the recommendation request payload. Candidates are optional;
// when omitted the current directory snapshot is ranked.
type Request struct {
	UserLocation model.Coordinate     `json:"user_location"`
	Vehicle      model.VehicleProfile `json:"vehicle"`
	Intent       string               `json:"intent"`
	Limit        int                  `json:"limit"`
	Candidates   []model.Facility     `json:"candidates,omitempty"`
}

// Response wraps the ranked results with the request id for tracing.
type Response struct {
	RequestID string                 `json:"request_id"`
	Results   []model.Recommendation `json:"results"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler serves the recommendation and occupancy endpoints.
type Handler struct {
	eng   *engine.Engine
	store directory.Store
	sink  coremetrics.MetricsSink
	log   logger.Logger
	now   func() time.Time
}

// NewHandler builds a Handler. A nil sink disables metrics and a nil clock
// defaults to time.Now.
func NewHandler(eng *engine.Engine, store directory.Store, sink coremetrics.MetricsSink, log logger.Logger) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Handler{eng: eng, store: store, sink: sink, log: log, now: time.Now}
}

// Router returns the mux router with all routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/recommendations", h.handleRecommend).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/facilities/{id}/occupancy", h.handleOccupancy).Methods(http.MethodGet)
	return r
}

func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body: " + err.Error()})
		return
	}
	intent, err := model.ParseIntent(req.Intent)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
		return
	}
	candidates := req.Candidates
	if candidates == nil && h.store != nil {
		candidates = h.store.Snapshot()
	}

	start := h.now()
	results, err := h.eng.RecommendAt(engine.Query{
		UserLocation: req.UserLocation,
		Vehicle:      req.Vehicle,
		Intent:       intent,
		Candidates:   candidates,
	}, req.Limit, start)
	if err != nil {
		status := http.StatusBadRequest
		var uie *model.UnsupportedIntentError
		if errors.As(err, &uie) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	top := 0
	if len(results) > 0 {
		top = results[0].MatchPercent
	}
	if err := h.sink.RecordRecommendation(coremetrics.RecommendationEvent{
		RequestID:       reqID,
		Intent:          intent,
		Candidates:      len(candidates),
		Reachable:       len(results),
		Returned:        len(results),
		TopMatchPercent: top,
		Duration:        h.now().Sub(start),
		Time:            start,
	}); err != nil {
		h.log.Warnf("record recommendation: %v", err)
	}
	h.log.Debugw("recommendation served", map[string]any{
		"request_id": reqID, "intent": intent.String(),
		"candidates": len(candidates), "returned": len(results),
	})
	writeJSON(w, http.StatusOK, Response{RequestID: reqID, Results: results})
}

func (h *Handler) handleOccupancy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f, ok := h.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown facility " + id})
		return
	}
	forecast := h.eng.PredictOccupancy(f, h.now())
	if rec, ok := h.sink.(coremetrics.OccupancyRecorder); ok {
		if err := rec.RecordOccupancyForecast(forecast); err != nil {
			h.log.Warnf("record forecast: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, forecast)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
