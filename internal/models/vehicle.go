// server/internal/models/vehicle.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID     string             `bson:"vehicleID" json:"vehicleID"`
	PlateNumber   string             `bson:"plateNumber" json:"plateNumber"`
	DriverID      string             `bson:"driverID" json:"driverID"`
	TransportType string             `bson:"transportType" json:"transportType"` // truck, rail, ship, air
	CapacityKg    float64            `bson:"capacityKg" json:"capacityKg"`
	Status        string             `bson:"status" json:"status"` // AVAILABLE, IN_TRIP, MAINTENANCE
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
