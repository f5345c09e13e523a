// internal/api/handlers/suggestion_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"ecofreight-api-server/internal/advisor"
	"ecofreight-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SuggestionHandler struct {
	DB *mongo.Database
}

// suggestionWindow is how far back the advisor looks when aggregating.
const suggestionWindow = 30 * 24 * time.Hour

// GenerateSuggestions runs the advisor rules over the last 30 days of
// shipments and stores whatever fired.
func (h *SuggestionHandler) GenerateSuggestions(c *gin.Context) {
	since := time.Now().Add(-suggestionWindow)

	cursor, err := h.DB.Collection("shipments").Find(context.Background(), bson.M{
		"createdAt": bson.M{"$gte": since},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query shipments"})
		return
	}
	defer cursor.Close(context.Background())

	var shipments []models.Shipment
	if err = cursor.All(context.Background(), &shipments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode shipments"})
		return
	}

	suggestions := advisor.Evaluate(shipments, time.Now())
	if len(suggestions) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No shipments in the last 30 days, nothing to suggest", "suggestions": []models.Suggestion{}})
		return
	}

	docs := make([]interface{}, 0, len(suggestions))
	for _, s := range suggestions {
		docs = append(docs, s)
	}
	result, err := h.DB.Collection("ai_suggestions").InsertMany(context.Background(), docs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store suggestions"})
		return
	}
	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(suggestions) {
			suggestions[i].ID = oid
		}
	}

	c.JSON(http.StatusCreated, gin.H{"suggestions": suggestions})
}

// GetSuggestions lists stored suggestions, newest first.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("ai_suggestions").Find(context.Background(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query suggestions"})
		return
	}
	defer cursor.Close(context.Background())

	var suggestions []models.Suggestion
	if err = cursor.All(context.Background(), &suggestions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode suggestions"})
		return
	}

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	c.JSON(http.StatusOK, suggestions)
}

// ImplementSuggestion flags a suggestion as acted upon.
func (h *SuggestionHandler) ImplementSuggestion(c *gin.Context) {
	suggestionID := c.Param("id")

	oid, err := primitive.ObjectIDFromHex(suggestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion id"})
		return
	}

	result, err := h.DB.Collection("ai_suggestions").UpdateOne(
		context.Background(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"implemented": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update suggestion"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suggestion marked as implemented"})
}
