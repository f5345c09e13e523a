// Package carbon computes emission estimates and fleet-level sustainability
// aggregates over shipment lists.
package carbon

import (
	"math"
	"sort"

	"ecofreight-api-server/internal/models"
)

// Emission factors in kg CO2e per tonne-km, by transport mode.
var emissionFactors = map[string]float64{
	models.TransportTruck:      0.105,
	models.TransportRail:       0.028,
	models.TransportShip:       0.015,
	models.TransportAir:        0.602,
	models.TransportMultiModal: 0.065,
}

// DefaultDistanceKm is assumed when a shipment has no usable distance, so
// estimates stay comparable across shipments.
const DefaultDistanceKm = 500

// Estimate returns the carbon footprint in kg CO2e for a single shipment.
// Unknown transport modes fall back to the truck factor.
func Estimate(transportType string, weightKg, distanceKm float64) float64 {
	factor, ok := emissionFactors[transportType]
	if !ok {
		factor = emissionFactors[models.TransportTruck]
	}
	if distanceKm <= 0 {
		distanceKm = DefaultDistanceKm
	}
	if weightKg < 0 {
		weightKg = 0
	}
	return (weightKg / 1000.0) * distanceKm * factor
}

// ModeBreakdown is the per-transport-mode slice of a fleet summary.
type ModeBreakdown struct {
	TransportType string  `json:"transportType"`
	Count         int     `json:"count"`
	TotalKg       float64 `json:"totalKg"`
	Percentage    float64 `json:"percentage"`
}

// Summary aggregates carbon figures across a set of shipments.
type Summary struct {
	ShipmentCount int             `json:"shipmentCount"`
	TotalKg       float64         `json:"totalKg"`
	AverageKg     float64         `json:"averageKg"`
	Breakdown     []ModeBreakdown `json:"breakdown"`
}

// breakdownOrder keeps the response stable across calls.
var breakdownOrder = []string{
	models.TransportTruck,
	models.TransportRail,
	models.TransportShip,
	models.TransportAir,
	models.TransportMultiModal,
}

// Summarize reduces a shipment list to totals, average and a per-mode
// breakdown. Percentages are shares of shipment count and sum to 100 across
// represented modes when the list is non-empty.
func Summarize(shipments []models.Shipment) Summary {
	s := Summary{Breakdown: []ModeBreakdown{}}
	if len(shipments) == 0 {
		return s
	}

	counts := make(map[string]int)
	totals := make(map[string]float64)
	for _, sh := range shipments {
		s.TotalKg += sh.CarbonKg
		counts[sh.TransportType]++
		totals[sh.TransportType] += sh.CarbonKg
	}
	s.ShipmentCount = len(shipments)
	s.AverageKg = s.TotalKg / float64(s.ShipmentCount)

	for _, mode := range breakdownOrder {
		if counts[mode] == 0 {
			continue
		}
		s.Breakdown = append(s.Breakdown, ModeBreakdown{
			TransportType: mode,
			Count:         counts[mode],
			TotalKg:       totals[mode],
			Percentage:    float64(counts[mode]) / float64(s.ShipmentCount) * 100,
		})
	}
	// Modes outside the known set still count toward the total; sorted so
	// the response stays stable across calls.
	var unknown []string
	for mode := range counts {
		if _, known := emissionFactors[mode]; !known {
			unknown = append(unknown, mode)
		}
	}
	sort.Strings(unknown)
	for _, mode := range unknown {
		s.Breakdown = append(s.Breakdown, ModeBreakdown{
			TransportType: mode,
			Count:         counts[mode],
			TotalKg:       totals[mode],
			Percentage:    float64(counts[mode]) / float64(s.ShipmentCount) * 100,
		})
	}

	return s
}

// Score derives a heuristic 0-100 sustainability score from a fleet summary.
// Higher is better. An empty fleet scores 0.
func Score(s Summary) float64 {
	if s.ShipmentCount == 0 {
		return 0
	}

	score := 100.0

	// Penalize heavy average footprints: one point per 10 kg CO2e.
	score -= s.AverageKg / 10.0

	var airPct, lowCarbonPct float64
	for _, b := range s.Breakdown {
		switch b.TransportType {
		case models.TransportAir:
			airPct += b.Percentage
		case models.TransportRail, models.TransportShip:
			lowCarbonPct += b.Percentage
		}
	}
	score -= airPct * 0.4
	score += lowCarbonPct * 0.2

	return math.Min(100, math.Max(0, score))
}
