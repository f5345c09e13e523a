// internal/api/handlers/vehicle_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ecofreight-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VehicleHandler struct {
	DB *mongo.Database
}

type CreateVehicleRequest struct {
	PlateNumber   string  `json:"plateNumber" binding:"required"`
	TransportType string  `json:"transportType" binding:"required"`
	CapacityKg    float64 `json:"capacityKg" binding:"required,gt=0"`
	// DriverID is only honored for managers; drivers register their own vehicle.
	DriverID string `json:"driverID"`
}

// CreateVehicle registers a vehicle. Drivers register for themselves,
// managers may register on behalf of any driver.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidTransportType(req.TransportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transport type must be one of: truck, rail, ship, air, multi_modal"})
		return
	}

	driverID := c.GetString("user_id")
	if c.GetString("user_role") == models.RoleManager && req.DriverID != "" {
		driverID = req.DriverID
	}

	collection := h.DB.Collection("vehicles")

	count, err := collection.CountDocuments(context.Background(), bson.M{"plateNumber": req.PlateNumber})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for vehicle"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle with this plate number already exists"})
		return
	}

	now := time.Now()
	vehicle := models.Vehicle{
		VehicleID:     fmt.Sprintf("VEH-%s", uuid.New().String()[:8]),
		PlateNumber:   req.PlateNumber,
		DriverID:      driverID,
		TransportType: req.TransportType,
		CapacityKg:    req.CapacityKg,
		Status:        "AVAILABLE",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := collection.InsertOne(context.Background(), vehicle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		vehicle.ID = oid
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetAllVehicles lists the fleet. Manager only.
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err = cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetMyVehicles lists the vehicles registered to the calling driver.
func (h *VehicleHandler) GetMyVehicles(c *gin.Context) {
	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), bson.M{"driverID": c.GetString("user_id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err = cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}
