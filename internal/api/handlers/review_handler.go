// internal/api/handlers/review_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"ecofreight-api-server/internal/ledger"
	"ecofreight-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewHandler struct {
	DB     *mongo.Database
	Ledger *ledger.Ledger
}

type CreateReviewRequest struct {
	ShipmentID string `json:"shipmentID" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// CreateReview lets a customer rate one of their delivered shipments.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	var shipment models.Shipment
	err := h.DB.Collection("shipments").FindOne(context.Background(), bson.M{
		"trackingID": req.ShipmentID,
		"customerID": userID,
	}).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shipment"})
		}
		return
	}
	if shipment.Status != models.StatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only delivered shipments can be reviewed"})
		return
	}

	collection := h.DB.Collection("reviews")
	count, err := collection.CountDocuments(context.Background(), bson.M{"shipmentID": req.ShipmentID, "userID": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for review"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this shipment"})
		return
	}

	review := models.Review{
		ShipmentID: req.ShipmentID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Approved:   false,
		CreatedAt:  time.Now(),
	}

	event, err := h.Ledger.Submit(context.Background(), req.ShipmentID, models.EventReviewSubmitted, gin.H{
		"rating": req.Rating,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to anchor review on ledger", "details": err.Error()})
		return
	}
	review.TxHash = event.TxHash

	result, err := collection.InsertOne(context.Background(), review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews lists reviews, optionally filtered by shipment. Managers see
// everything; everyone else sees approved reviews only.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	filter := bson.M{}
	if shipmentID := c.Query("shipmentID"); shipmentID != "" {
		filter["shipmentID"] = shipmentID
	}
	if c.GetString("user_role") != models.RoleManager {
		filter["approved"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("reviews").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query reviews"})
		return
	}
	defer cursor.Close(context.Background())

	var reviews []models.Review
	if err = cursor.All(context.Background(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, reviews)
}

// ApproveReview marks a review as approved so customers can see it.
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	reviewID := c.Param("id")

	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	result, err := h.DB.Collection("reviews").UpdateOne(
		context.Background(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"approved": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve review"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review approved successfully"})
}
