// server/internal/models/sensor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SensorReading is a single IoT measurement attached to a shipment.
type SensorReading struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShipmentID    string             `bson:"shipmentID" json:"shipmentID"`
	RecordedAt    time.Time          `bson:"recordedAt" json:"recordedAt"`
	TemperatureC  float64            `bson:"temperatureC" json:"temperatureC"`
	HumidityPct   float64            `bson:"humidityPct" json:"humidityPct"`
	ShockDetected bool               `bson:"shockDetected" json:"shockDetected"`
	Location      Location           `bson:"location" json:"location"`
	BatteryPct    float64            `bson:"batteryPct" json:"batteryPct"`
	TxHash        string             `bson:"txHash,omitempty" json:"txHash"`
}
