// server/internal/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a customer rating for a delivered shipment. Reviews are hidden
// from customers until a manager approves them.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShipmentID string             `bson:"shipmentID" json:"shipmentID"`
	UserID     string             `bson:"userID" json:"userID"`
	Rating     int                `bson:"rating" json:"rating"` // 1..5
	Comment    string             `bson:"comment,omitempty" json:"comment"`
	Approved   bool               `bson:"approved" json:"approved"`
	TxHash     string             `bson:"txHash,omitempty" json:"txHash"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
