// server/internal/models/suggestion.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion is a generated sustainability recommendation.
type Suggestion struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	CarbonSavingsKg float64            `bson:"carbonSavingsKg" json:"carbonSavingsKg"`
	CostSavingsUSD  float64            `bson:"costSavingsUSD" json:"costSavingsUSD"`
	Implemented     bool               `bson:"implemented" json:"implemented"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
