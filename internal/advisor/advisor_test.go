package advisor

import (
	"testing"
	"time"

	"ecofreight-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(suggestions []models.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Title)
	}
	return out
}

func TestEvaluateEmptyWindow(t *testing.T) {
	got := Evaluate(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluateHighAirShare(t *testing.T) {
	// 2 of 4 shipments by air: 50% > 20% threshold.
	shipments := []models.Shipment{
		{TransportType: models.TransportAir, CarbonKg: 500, Status: models.StatusDelivered},
		{TransportType: models.TransportAir, CarbonKg: 500, Status: models.StatusDelivered},
		{TransportType: models.TransportTruck, CarbonKg: 40, Status: models.StatusDelivered},
		{TransportType: models.TransportTruck, CarbonKg: 40, Status: models.StatusDelivered},
	}

	got := Evaluate(shipments, time.Now())
	assert.Contains(t, titles(got), "Shift air freight to rail")
}

func TestEvaluateHighAverageFootprint(t *testing.T) {
	shipments := []models.Shipment{
		{TransportType: models.TransportTruck, CarbonKg: 150, Status: models.StatusDelivered},
		{TransportType: models.TransportTruck, CarbonKg: 200, Status: models.StatusDelivered},
	}

	got := Evaluate(shipments, time.Now())
	assert.Contains(t, titles(got), "Consolidate partial loads")
}

func TestEvaluateHighDelayedShare(t *testing.T) {
	shipments := []models.Shipment{
		{TransportType: models.TransportTruck, CarbonKg: 10, Status: models.StatusDelayed},
		{TransportType: models.TransportTruck, CarbonKg: 10, Status: models.StatusDelayed},
		{TransportType: models.TransportTruck, CarbonKg: 10, Status: models.StatusDelivered},
	}

	got := Evaluate(shipments, time.Now())
	assert.Contains(t, titles(got), "Add schedule buffers on delayed lanes")
}

func TestEvaluateBaselineWhenNothingFires(t *testing.T) {
	shipments := []models.Shipment{
		{TransportType: models.TransportRail, CarbonKg: 12, Status: models.StatusDelivered},
		{TransportType: models.TransportShip, CarbonKg: 8, Status: models.StatusInTransit},
	}

	got := Evaluate(shipments, time.Now())
	require.Len(t, got, 1)
	assert.Equal(t, "Maintain current transport mix", got[0].Title)
}

func TestEvaluateSavingsAreConsistent(t *testing.T) {
	now := time.Now()
	shipments := []models.Shipment{
		{TransportType: models.TransportAir, CarbonKg: 1000, Status: models.StatusDelivered},
		{TransportType: models.TransportTruck, CarbonKg: 50, Status: models.StatusDelivered},
	}

	got := Evaluate(shipments, now)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.GreaterOrEqual(t, s.CarbonSavingsKg, 0.0)
		assert.InDelta(t, s.CarbonSavingsKg*CostPerKgCO2, s.CostSavingsUSD, 0.01)
		assert.False(t, s.Implemented)
		assert.Equal(t, now, s.CreatedAt)
	}
}

func TestEvaluateMultipleRulesCanFire(t *testing.T) {
	// High air share AND high average footprint AND high delayed share.
	shipments := []models.Shipment{
		{TransportType: models.TransportAir, CarbonKg: 900, Status: models.StatusDelayed},
		{TransportType: models.TransportAir, CarbonKg: 800, Status: models.StatusDelayed},
		{TransportType: models.TransportTruck, CarbonKg: 300, Status: models.StatusDelivered},
	}

	got := Evaluate(shipments, time.Now())
	assert.Len(t, got, 3)
}
