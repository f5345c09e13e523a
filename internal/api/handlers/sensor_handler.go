// internal/api/handlers/sensor_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ecofreight-api-server/internal/ledger"
	"ecofreight-api-server/internal/models"
	"ecofreight-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SensorHandler struct {
	DB     *mongo.Database
	Ledger *ledger.Ledger
	Hub    *socket.Hub
}

type AddReadingRequest struct {
	TemperatureC  float64 `json:"temperatureC"`
	HumidityPct   float64 `json:"humidityPct" binding:"min=0,max=100"`
	ShockDetected bool    `json:"shockDetected"`
	Latitude      float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude     float64 `json:"longitude" binding:"min=-180,max=180"`
	BatteryPct    float64 `json:"batteryPct" binding:"min=0,max=100"`
	// Anchor controls whether the reading is also written to the mock ledger.
	Anchor bool `json:"anchor"`
}

// AddReading records an IoT measurement against a shipment.
func (h *SensorHandler) AddReading(c *gin.Context) {
	trackingID := c.Param("id")

	var req AddReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The shipment must exist before readings can attach to it.
	count, err := h.DB.Collection("shipments").CountDocuments(context.Background(), bson.M{"trackingID": trackingID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for shipment"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	reading := models.SensorReading{
		ShipmentID:    trackingID,
		RecordedAt:    time.Now().UTC(),
		TemperatureC:  req.TemperatureC,
		HumidityPct:   req.HumidityPct,
		ShockDetected: req.ShockDetected,
		Location:      models.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		BatteryPct:    req.BatteryPct,
	}

	if req.Anchor {
		event, err := h.Ledger.Submit(context.Background(), trackingID, models.EventSensorRecorded, gin.H{
			"temperatureC":  req.TemperatureC,
			"humidityPct":   req.HumidityPct,
			"shockDetected": req.ShockDetected,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to anchor reading on ledger", "details": err.Error()})
			return
		}
		reading.TxHash = event.TxHash
	}

	result, err := h.DB.Collection("sensor_data").InsertOne(context.Background(), reading)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store sensor reading"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reading.ID = oid
	}

	h.pushReading(reading)

	c.JSON(http.StatusCreated, reading)
}

// GetReadings lists the readings for one shipment, newest first. The
// shipment must be visible to the caller's role; an unrelated customer gets
// a 404, not another customer's location trail.
func (h *SensorHandler) GetReadings(c *gin.Context) {
	trackingID := c.Param("id")

	count, err := h.DB.Collection("shipments").CountDocuments(context.Background(), visibleShipmentFilter(c, trackingID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for shipment"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	cursor, err := h.DB.Collection("sensor_data").Find(context.Background(), bson.M{"shipmentID": trackingID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query sensor readings"})
		return
	}
	defer cursor.Close(context.Background())

	var readings []models.SensorReading
	if err = cursor.All(context.Background(), &readings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode sensor readings"})
		return
	}

	if readings == nil {
		readings = []models.SensorReading{}
	}

	c.JSON(http.StatusOK, readings)
}

func (h *SensorHandler) pushReading(reading models.SensorReading) {
	if h.Hub == nil {
		return
	}
	msg, err := json.Marshal(wsPayload{Type: "sensor_reading", Reading: reading})
	if err != nil {
		return
	}
	h.Hub.Broadcast(msg, models.RoleManager)
}
