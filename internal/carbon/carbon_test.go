package carbon

import (
	"math"
	"testing"

	"ecofreight-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipment(mode string, carbonKg float64) models.Shipment {
	return models.Shipment{TransportType: mode, CarbonKg: carbonKg}
}

func TestEstimate(t *testing.T) {
	// 10 tonnes over 1000 km by truck at 0.105 kg/t-km.
	got := Estimate(models.TransportTruck, 10000, 1000)
	assert.InDelta(t, 1050.0, got, 1e-9)

	// Rail is cheaper than truck for the same load.
	rail := Estimate(models.TransportRail, 10000, 1000)
	assert.Less(t, rail, got)

	// Air is by far the heaviest mode.
	air := Estimate(models.TransportAir, 10000, 1000)
	assert.Greater(t, air, got)
}

func TestEstimateDefaultDistance(t *testing.T) {
	withDefault := Estimate(models.TransportTruck, 1000, 0)
	explicit := Estimate(models.TransportTruck, 1000, DefaultDistanceKm)
	assert.Equal(t, explicit, withDefault)

	negative := Estimate(models.TransportTruck, 1000, -50)
	assert.Equal(t, explicit, negative)
}

func TestEstimateUnknownModeFallsBackToTruck(t *testing.T) {
	unknown := Estimate("hyperloop", 5000, 300)
	truck := Estimate(models.TransportTruck, 5000, 300)
	assert.Equal(t, truck, unknown)
}

func TestEstimateNegativeWeight(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(models.TransportTruck, -10, 100))
}

func TestSummarizeTotalsAndAverage(t *testing.T) {
	shipments := []models.Shipment{
		shipment(models.TransportTruck, 100),
		shipment(models.TransportTruck, 50),
		shipment(models.TransportRail, 30),
	}

	s := Summarize(shipments)
	assert.Equal(t, 3, s.ShipmentCount)
	assert.InDelta(t, 180.0, s.TotalKg, 1e-9)
	assert.InDelta(t, 60.0, s.AverageKg, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.ShipmentCount)
	assert.Equal(t, 0.0, s.TotalKg)
	assert.Equal(t, 0.0, s.AverageKg, "average must be zero, not NaN, for an empty fleet")
	assert.NotNil(t, s.Breakdown)
	assert.Empty(t, s.Breakdown)
}

func TestSummarizeBreakdownPercentagesSumTo100(t *testing.T) {
	shipments := []models.Shipment{
		shipment(models.TransportTruck, 10),
		shipment(models.TransportTruck, 20),
		shipment(models.TransportRail, 5),
		shipment(models.TransportShip, 8),
		shipment(models.TransportAir, 200),
		shipment(models.TransportMultiModal, 15),
		shipment(models.TransportAir, 120),
	}

	s := Summarize(shipments)

	var pctSum float64
	for _, b := range s.Breakdown {
		pctSum += b.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 1e-9)
}

func TestSummarizeUnknownModeStillCounted(t *testing.T) {
	shipments := []models.Shipment{
		shipment(models.TransportTruck, 10),
		shipment("camel", 5),
	}

	s := Summarize(shipments)
	assert.InDelta(t, 15.0, s.TotalKg, 1e-9)

	var pctSum float64
	found := false
	for _, b := range s.Breakdown {
		pctSum += b.Percentage
		if b.TransportType == "camel" {
			found = true
		}
	}
	assert.True(t, found, "unknown mode should appear in the breakdown")
	assert.InDelta(t, 100.0, pctSum, 1e-9)
}

func TestSummarizeBreakdownOrderStable(t *testing.T) {
	shipments := []models.Shipment{
		shipment(models.TransportTruck, 10),
		shipment("zeppelin", 5),
		shipment("camel", 5),
		shipment("barge", 8),
	}

	first := Summarize(shipments)
	modes := make([]string, 0, len(first.Breakdown))
	for _, b := range first.Breakdown {
		modes = append(modes, b.TransportType)
	}
	assert.Equal(t, []string{models.TransportTruck, "barge", "camel", "zeppelin"}, modes)

	// Repeated calls over the same fleet must produce the same breakdown.
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Summarize(shipments))
	}
}

func TestScoreClamped(t *testing.T) {
	// Extreme average footprint pushes the raw score far below zero.
	heavy := Summary{
		ShipmentCount: 4,
		AverageKg:     50000,
		Breakdown: []ModeBreakdown{
			{TransportType: models.TransportAir, Percentage: 100},
		},
	}
	assert.Equal(t, 0.0, Score(heavy))

	// An all rail/ship fleet with negligible footprint caps at 100.
	light := Summary{
		ShipmentCount: 4,
		AverageKg:     0.1,
		Breakdown: []ModeBreakdown{
			{TransportType: models.TransportRail, Percentage: 60},
			{TransportType: models.TransportShip, Percentage: 40},
		},
	}
	assert.Equal(t, 100.0, Score(light))
}

func TestScoreRange(t *testing.T) {
	averages := []float64{0, 10, 100, 1000, 100000}
	airShares := []float64{0, 25, 50, 100}

	for _, avg := range averages {
		for _, air := range airShares {
			s := Summary{
				ShipmentCount: 10,
				AverageKg:     avg,
				Breakdown: []ModeBreakdown{
					{TransportType: models.TransportAir, Percentage: air},
					{TransportType: models.TransportTruck, Percentage: 100 - air},
				},
			}
			score := Score(s)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 100.0)
			require.False(t, math.IsNaN(score))
		}
	}
}

func TestScoreEmptyFleet(t *testing.T) {
	assert.Equal(t, 0.0, Score(Summary{}))
}

func TestScoreRewardsLowCarbonModes(t *testing.T) {
	base := Summary{
		ShipmentCount: 10,
		AverageKg:     300,
		Breakdown: []ModeBreakdown{
			{TransportType: models.TransportTruck, Percentage: 100},
		},
	}
	greener := Summary{
		ShipmentCount: 10,
		AverageKg:     300,
		Breakdown: []ModeBreakdown{
			{TransportType: models.TransportTruck, Percentage: 40},
			{TransportType: models.TransportRail, Percentage: 60},
		},
	}
	assert.Greater(t, Score(greener), Score(base))
}
