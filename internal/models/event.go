// server/internal/models/event.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types anchored to the mock ledger.
const (
	EventShipmentCreated = "SHIPMENT_CREATED"
	EventStatusChanged   = "STATUS_CHANGED"
	EventSensorRecorded  = "SENSOR_RECORDED"
	EventReviewSubmitted = "REVIEW_SUBMITTED"
)

// ShipmentEvent is a ledger-anchored record of something that happened to a
// shipment. The transaction hash and block number are fabricated; there is no
// real chain behind them.
type ShipmentEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShipmentID  string             `bson:"shipmentID" json:"shipmentID"`
	EventType   string             `bson:"eventType" json:"eventType"`
	Details     json.RawMessage    `bson:"details,omitempty" json:"details,omitempty"`
	TxHash      string             `bson:"txHash" json:"txHash"`
	BlockNumber uint64             `bson:"blockNumber" json:"blockNumber"`
	Network     string             `bson:"network" json:"network"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
