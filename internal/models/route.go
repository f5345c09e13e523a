// server/internal/models/route.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RouteVariant is one pre-authored way of running a corridor.
type RouteVariant struct {
	Name        string   `bson:"name" json:"name"` // "standard" or "eco"
	Waypoints   []string `bson:"waypoints" json:"waypoints"`
	DistanceKm  float64  `bson:"distanceKm" json:"distanceKm"`
	DurationHrs float64  `bson:"durationHrs" json:"durationHrs"`
	CarbonKg    float64  `bson:"carbonKg" json:"carbonKg"`
}

// Route is a shipping corridor with a standard and an eco variant. The
// optimizer swaps which variant is active; it does not search.
type Route struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RouteID  string             `bson:"routeID" json:"routeID"`
	Name     string             `bson:"name" json:"name"`
	Active   string             `bson:"active" json:"active"` // name of the active variant
	Standard RouteVariant       `bson:"standard" json:"standard"`
	Eco      RouteVariant       `bson:"eco" json:"eco"`
}
