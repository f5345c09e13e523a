package routeopt

import (
	"testing"

	"ecofreight-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func corridor() models.Route {
	return models.Route{
		RouteID: "RT-TEST",
		Name:    "Test Corridor",
		Active:  "standard",
		Standard: models.RouteVariant{
			Name:        "standard",
			DistanceKm:  1000,
			DurationHrs: 12,
			CarbonKg:    1800,
		},
		Eco: models.RouteVariant{
			Name:        "eco",
			DistanceKm:  950,
			DurationHrs: 20,
			CarbonKg:    600,
		},
	}
}

func TestCompare(t *testing.T) {
	s := Compare(corridor())
	assert.InDelta(t, 50.0, s.DistanceKm, 1e-9)
	assert.InDelta(t, -8.0, s.DurationHrs, 1e-9, "eco variant trades duration for carbon")
	assert.InDelta(t, 1200.0, s.CarbonKg, 1e-9)
}

func TestActiveVariant(t *testing.T) {
	r := corridor()
	assert.Equal(t, r.Standard, ActiveVariant(r))

	r.Active = "eco"
	assert.Equal(t, r.Eco, ActiveVariant(r))
}

func TestActiveVariantFallsBackToStandard(t *testing.T) {
	r := corridor()
	for _, marker := range []string{"", "turbo", "ECO"} {
		r.Active = marker
		assert.Equal(t, r.Standard, ActiveVariant(r))
	}
}

func TestDemoRoutesAreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range demoRoutes {
		assert.False(t, seen[r.RouteID], "route ids must be unique")
		seen[r.RouteID] = true

		assert.Equal(t, "standard", r.Active, "corridors start on the standard variant")
		assert.Equal(t, "standard", r.Standard.Name)
		assert.Equal(t, "eco", r.Eco.Name)
		assert.NotEmpty(t, r.Standard.Waypoints)
		assert.NotEmpty(t, r.Eco.Waypoints)
		assert.Less(t, r.Eco.CarbonKg, r.Standard.CarbonKg, "the eco variant must actually emit less")
	}
}
