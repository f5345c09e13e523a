// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"context"
	"net/http"

	"ecofreight-api-server/internal/carbon"
	"ecofreight-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DashboardHandler struct {
	DB *mongo.Database
}

// activeListLimit caps the shipment list embedded in a dashboard response.
const activeListLimit = 20

func (h *DashboardHandler) fetchScoped(c *gin.Context) ([]models.Shipment, error) {
	cursor, err := h.DB.Collection("shipments").Find(context.Background(), scopeFilter(c))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	var shipments []models.Shipment
	if err := cursor.All(context.Background(), &shipments); err != nil {
		return nil, err
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	return shipments, nil
}

// GetDashboard renders the role-scoped dashboard payload: status counts, an
// active shipment list, and the carbon summary with its score. Managers also
// get per-driver counts and the pending review count.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	shipments, err := h.fetchScoped(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query shipments"})
		return
	}

	statusCounts := map[string]int{
		models.StatusProcessing: 0,
		models.StatusInTransit:  0,
		models.StatusDelivered:  0,
		models.StatusDelayed:    0,
	}
	perDriver := map[string]int{}
	active := []models.Shipment{}
	for _, sh := range shipments {
		statusCounts[sh.Status]++
		if sh.DriverID != "" {
			perDriver[sh.DriverID]++
		}
		if sh.Status != models.StatusDelivered && len(active) < activeListLimit {
			active = append(active, sh)
		}
	}

	summary := carbon.Summarize(shipments)

	payload := gin.H{
		"totalShipments":      len(shipments),
		"statusCounts":        statusCounts,
		"activeShipments":     active,
		"carbonSummary":       summary,
		"sustainabilityScore": carbon.Score(summary),
	}

	if c.GetString("user_role") == models.RoleManager {
		pendingReviews, err := h.DB.Collection("reviews").CountDocuments(context.Background(), bson.M{"approved": false})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending reviews"})
			return
		}
		payload["shipmentsPerDriver"] = perDriver
		payload["pendingReviews"] = pendingReviews
	}

	c.JSON(http.StatusOK, payload)
}

// GetCarbonSummary returns the carbon aggregation for the caller's shipments.
func (h *DashboardHandler) GetCarbonSummary(c *gin.Context) {
	shipments, err := h.fetchScoped(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query shipments"})
		return
	}

	summary := carbon.Summarize(shipments)

	c.JSON(http.StatusOK, gin.H{
		"summary":             summary,
		"sustainabilityScore": carbon.Score(summary),
	})
}

// GetDrivers lists driver accounts so managers can assign shipments.
func (h *DashboardHandler) GetDrivers(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := h.DB.Collection("users").Find(context.Background(), bson.M{"role": models.RoleDriver}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	defer cursor.Close(context.Background())

	var drivers []models.User
	if err = cursor.All(context.Background(), &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode drivers"})
		return
	}

	if drivers == nil {
		drivers = []models.User{}
	}

	c.JSON(http.StatusOK, drivers)
}
