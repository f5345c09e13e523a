// server/internal/models/shipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shipment statuses. Any status may be set to any other; the API only
// validates that the value is one of these four.
const (
	StatusProcessing = "processing"
	StatusInTransit  = "in_transit"
	StatusDelivered  = "delivered"
	StatusDelayed    = "delayed"
)

// Transport modes.
const (
	TransportTruck      = "truck"
	TransportRail       = "rail"
	TransportShip       = "ship"
	TransportAir        = "air"
	TransportMultiModal = "multi_modal"
)

type Shipment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingID    string             `bson:"trackingID" json:"trackingID"` // e.g. "ECO-1A2B3C4D"
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description"`
	Origin        string             `bson:"origin" json:"origin"`
	Destination   string             `bson:"destination" json:"destination"`
	Status        string             `bson:"status" json:"status"`
	TransportType string             `bson:"transportType" json:"transportType"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	WeightKg      float64            `bson:"weightKg" json:"weightKg"`
	DistanceKm    float64            `bson:"distanceKm" json:"distanceKm"`
	CarbonKg      float64            `bson:"carbonKg" json:"carbonKg"` // computed at creation
	CustomerID    string             `bson:"customerID" json:"customerID"`
	DriverID      string             `bson:"driverID,omitempty" json:"driverID"`
	TxHash        string             `bson:"txHash,omitempty" json:"txHash"`
	DeliveryPhoto *MediaPointer      `bson:"deliveryPhoto,omitempty" json:"deliveryPhoto,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the four known shipment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusInTransit, StatusDelivered, StatusDelayed:
		return true
	}
	return false
}

// ValidTransportType reports whether t is a known transport mode.
func ValidTransportType(t string) bool {
	switch t {
	case TransportTruck, TransportRail, TransportShip, TransportAir, TransportMultiModal:
		return true
	}
	return false
}

// StatusBadge is the display mapping for a shipment status.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// BadgeForStatus maps a status to its display badge. Unknown statuses fall
// back to a generic badge rather than failing.
func BadgeForStatus(status string) StatusBadge {
	switch status {
	case StatusProcessing:
		return StatusBadge{Label: "Processing", Color: "yellow"}
	case StatusInTransit:
		return StatusBadge{Label: "In Transit", Color: "blue"}
	case StatusDelivered:
		return StatusBadge{Label: "Delivered", Color: "green"}
	case StatusDelayed:
		return StatusBadge{Label: "Delayed", Color: "red"}
	default:
		return StatusBadge{Label: "Unknown", Color: "gray"}
	}
}
