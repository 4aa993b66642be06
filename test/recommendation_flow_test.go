package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltwise/stationmatch/api/recommend"
	"github.com/voltwise/stationmatch/core/engine"
	"github.com/voltwise/stationmatch/core/model"
	"github.com/voltwise/stationmatch/infra/directory"
	"github.com/voltwise/stationmatch/infra/logger"
)

// Full request flow against a populated directory, with distances derived
// from coordinates instead of caller annotations.
func TestRecommendationFlowDerivesDistances(t *testing.T) {
	store := directory.NewMemoryStore()
	store.Upsert(model.Facility{
		ID:         "district-1",
		Coordinate: model.Coordinate{Latitude: 10.80, Longitude: 106.72},
		Chargers: []model.ChargerState{
			{ID: "d1-c1", Connector: model.ConnectorCCS2, PowerKW: 150, PricePerKWh: 3500, Status: model.ChargerAvailable},
		},
	})
	store.Upsert(model.Facility{
		ID:         "highway-rest",
		Coordinate: model.Coordinate{Latitude: 11.20, Longitude: 107.20},
		Chargers: []model.ChargerState{
			{ID: "hr-c1", Connector: model.ConnectorCCS2, PowerKW: 350, PricePerKWh: 4200, Status: model.ChargerAvailable},
		},
	})
	store.Upsert(model.Facility{
		ID:         "out-of-range",
		Coordinate: model.Coordinate{Latitude: 13.00, Longitude: 108.50},
		Chargers: []model.ChargerState{
			{ID: "or-c1", Connector: model.ConnectorCCS2, PowerKW: 150, PricePerKWh: 3000, Status: model.ChargerAvailable},
		},
	})

	eng := engine.New(engine.Config{}, nil, nil)
	h := recommend.NewHandler(eng, store, nil, logger.NopLogger{})

	body, err := json.Marshal(recommend.Request{
		UserLocation: model.Coordinate{Latitude: 10.776, Longitude: 106.700},
		Vehicle: model.VehicleProfile{
			BatteryCapacityKWh:   60,
			StateOfChargePercent: 80,
			ConsumptionKWhPer100: 16,
			PreferredConnector:   model.ConnectorCCS2,
		},
		Intent: "least_detour",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp recommend.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2, "the 300+ km facility must be filtered out")
	assert.Equal(t, "district-1", resp.Results[0].Facility.ID)
	assert.InDelta(t, 3.5, resp.Results[0].DistanceKm, 1.0)
	assert.Greater(t, resp.Results[0].DistanceKm, 0.0)
	for _, r := range resp.Results {
		assert.NotEqual(t, "out-of-range", r.Facility.ID)
	}
}
