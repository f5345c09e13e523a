// Package advisor produces canned sustainability recommendations from
// threshold checks over recent shipment aggregates.
package advisor

import (
	"fmt"
	"time"

	"ecofreight-api-server/internal/carbon"
	"ecofreight-api-server/internal/models"
)

// Thresholds for the recommendation rules.
const (
	airSharePctThreshold     = 20.0
	avgFootprintKgThreshold  = 100.0
	delayedSharePctThreshold = 25.0
)

// CostPerKgCO2 is the rough cost attributed to a kilogram of CO2e when
// estimating savings in dollars.
const CostPerKgCO2 = 0.45

// Evaluate runs the recommendation rules over a shipment window and returns
// the suggestions that fired. An empty window yields no suggestions; when no
// rule fires a baseline efficiency tip is returned instead.
func Evaluate(shipments []models.Shipment, now time.Time) []models.Suggestion {
	if len(shipments) == 0 {
		return []models.Suggestion{}
	}

	summary := carbon.Summarize(shipments)

	var airPct, airTotalKg float64
	for _, b := range summary.Breakdown {
		if b.TransportType == models.TransportAir {
			airPct = b.Percentage
			airTotalKg = b.TotalKg
		}
	}

	delayed := 0
	for _, sh := range shipments {
		if sh.Status == models.StatusDelayed {
			delayed++
		}
	}
	delayedPct := float64(delayed) / float64(len(shipments)) * 100

	var out []models.Suggestion

	if airPct > airSharePctThreshold {
		savings := airTotalKg * 0.8 // rail emits roughly a fifth of air freight
		out = append(out, models.Suggestion{
			Title: "Shift air freight to rail",
			Description: fmt.Sprintf(
				"%.0f%% of recent shipments moved by air. Shifting suitable lanes to rail could cut their emissions by around 80%%.",
				airPct),
			CarbonSavingsKg: round2(savings),
			CostSavingsUSD:  round2(savings * CostPerKgCO2),
			CreatedAt:       now,
		})
	}

	if summary.AverageKg > avgFootprintKgThreshold {
		savings := summary.TotalKg * 0.15
		out = append(out, models.Suggestion{
			Title: "Consolidate partial loads",
			Description: fmt.Sprintf(
				"Average footprint per shipment is %.1f kg CO2e. Consolidating partial loads typically saves about 15%% of fleet emissions.",
				summary.AverageKg),
			CarbonSavingsKg: round2(savings),
			CostSavingsUSD:  round2(savings * CostPerKgCO2),
			CreatedAt:       now,
		})
	}

	if delayedPct > delayedSharePctThreshold {
		savings := summary.TotalKg * 0.05
		out = append(out, models.Suggestion{
			Title: "Add schedule buffers on delayed lanes",
			Description: fmt.Sprintf(
				"%.0f%% of recent shipments ran delayed. Buffered schedules reduce expedited re-routing and its emission overhead.",
				delayedPct),
			CarbonSavingsKg: round2(savings),
			CostSavingsUSD:  round2(savings * CostPerKgCO2),
			CreatedAt:       now,
		})
	}

	if len(out) == 0 {
		out = append(out, models.Suggestion{
			Title: "Maintain current transport mix",
			Description: fmt.Sprintf(
				"Fleet is operating within sustainability targets (average %.1f kg CO2e per shipment). Review tire pressure and idle-time policies for marginal gains.",
				summary.AverageKg),
			CarbonSavingsKg: round2(summary.TotalKg * 0.02),
			CostSavingsUSD:  round2(summary.TotalKg * 0.02 * CostPerKgCO2),
			CreatedAt:       now,
		})
	}

	return out
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
