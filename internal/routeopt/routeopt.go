// Package routeopt serves pre-authored route corridors. "Optimization" swaps
// the active variant from standard to eco; no path search is performed.
package routeopt

import (
	"context"

	"ecofreight-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Savings is the delta between the standard and eco variants of a corridor.
type Savings struct {
	DistanceKm  float64 `json:"distanceKm"`
	DurationHrs float64 `json:"durationHrs"`
	CarbonKg    float64 `json:"carbonKg"`
}

// Compare returns what the eco variant saves over the standard one. Negative
// values mean the eco variant costs more on that axis (typically duration).
func Compare(r models.Route) Savings {
	return Savings{
		DistanceKm:  r.Standard.DistanceKm - r.Eco.DistanceKm,
		DurationHrs: r.Standard.DurationHrs - r.Eco.DurationHrs,
		CarbonKg:    r.Standard.CarbonKg - r.Eco.CarbonKg,
	}
}

// ActiveVariant resolves the variant currently served for a corridor.
// An unset or unknown marker falls back to standard.
func ActiveVariant(r models.Route) models.RouteVariant {
	if r.Active == "eco" {
		return r.Eco
	}
	return r.Standard
}

// demoRoutes are the pre-authored corridors served by the optimizer demo.
var demoRoutes = []models.Route{
	{
		RouteID: "RT-001",
		Name:    "Rotterdam - Munich",
		Active:  "standard",
		Standard: models.RouteVariant{
			Name:        "standard",
			Waypoints:   []string{"Rotterdam", "Duisburg", "Frankfurt", "Nuremberg", "Munich"},
			DistanceKm:  840,
			DurationHrs: 11.5,
			CarbonKg:    1480,
		},
		Eco: models.RouteVariant{
			Name:        "eco",
			Waypoints:   []string{"Rotterdam", "Duisburg (rail)", "Munich"},
			DistanceKm:  805,
			DurationHrs: 16.0,
			CarbonKg:    610,
		},
	},
	{
		RouteID: "RT-002",
		Name:    "Shanghai - Hamburg",
		Active:  "standard",
		Standard: models.RouteVariant{
			Name:        "standard",
			Waypoints:   []string{"Shanghai", "Dubai (air)", "Hamburg"},
			DistanceKm:  8900,
			DurationHrs: 30,
			CarbonKg:    53600,
		},
		Eco: models.RouteVariant{
			Name:        "eco",
			Waypoints:   []string{"Shanghai", "Suez", "Rotterdam (sea)", "Hamburg"},
			DistanceKm:  19800,
			DurationHrs: 760,
			CarbonKg:    2980,
		},
	},
	{
		RouteID: "RT-003",
		Name:    "Chicago - Dallas",
		Active:  "standard",
		Standard: models.RouteVariant{
			Name:        "standard",
			Waypoints:   []string{"Chicago", "Springfield", "Little Rock", "Dallas"},
			DistanceKm:  1500,
			DurationHrs: 14,
			CarbonKg:    2630,
		},
		Eco: models.RouteVariant{
			Name:        "eco",
			Waypoints:   []string{"Chicago (rail)", "Dallas"},
			DistanceKm:  1445,
			DurationHrs: 22,
			CarbonKg:    700,
		},
	},
}

// SeedRoutes inserts the demo corridors if the routes collection is empty.
func SeedRoutes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("routes")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(demoRoutes))
	for _, r := range demoRoutes {
		docs = append(docs, r)
	}
	_, err = collection.InsertMany(ctx, docs)
	return err
}
