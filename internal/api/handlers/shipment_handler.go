// internal/api/handlers/shipment_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"ecofreight-api-server/config"
	"ecofreight-api-server/internal/carbon"
	"ecofreight-api-server/internal/ledger"
	"ecofreight-api-server/internal/models"
	"ecofreight-api-server/internal/s3"
	"ecofreight-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShipmentHandler struct {
	Cfg        config.Config
	DB         *mongo.Database
	Ledger     *ledger.Ledger
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

// --- Request bodies ---

type CreateShipmentRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	TransportType string  `json:"transportType" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	WeightKg      float64 `json:"weightKg" binding:"required,gt=0"`
	DistanceKm    float64 `json:"distanceKm"`
	CustomerID    string  `json:"customerID" binding:"required"`
	DriverID      string  `json:"driverID"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverID" binding:"required"`
}

// wsPayload is what gets pushed to connected dashboards on shipment changes.
type wsPayload struct {
	Type     string      `json:"type"`
	Shipment interface{} `json:"shipment,omitempty"`
	Reading  interface{} `json:"reading,omitempty"`
}

// scopeFilter restricts a shipments query to what the caller's role may see:
// managers see everything, drivers their assignments, customers their orders.
func scopeFilter(c *gin.Context) bson.M {
	role := c.GetString("user_role")
	userID := c.GetString("user_id")

	switch role {
	case models.RoleDriver:
		return bson.M{"driverID": userID}
	case models.RoleCustomer:
		return bson.M{"customerID": userID}
	default:
		return bson.M{}
	}
}

// visibleShipmentFilter is the shipments filter that decides whether the
// caller may see one shipment: the role scope plus the tracking id.
func visibleShipmentFilter(c *gin.Context, trackingID string) bson.M {
	filter := scopeFilter(c)
	filter["trackingID"] = trackingID
	return filter
}

// newTrackingID generates a human-readable tracking id like "ECO-1A2B3C4D".
func newTrackingID() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "ECO-" + fragment
}

// --- Handlers ---

// CreateShipment registers a shipment, computes its carbon footprint and
// anchors a creation event on the mock ledger.
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidTransportType(req.TransportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transport type must be one of: truck, rail, ship, air, multi_modal"})
		return
	}

	now := time.Now()
	shipment := models.Shipment{
		TrackingID:    newTrackingID(),
		Title:         req.Title,
		Description:   req.Description,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Status:        models.StatusProcessing,
		TransportType: req.TransportType,
		Quantity:      req.Quantity,
		WeightKg:      req.WeightKg,
		DistanceKm:    req.DistanceKm,
		CarbonKg:      carbon.Estimate(req.TransportType, req.WeightKg, req.DistanceKm),
		CustomerID:    req.CustomerID,
		DriverID:      req.DriverID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	event, err := h.Ledger.Submit(context.Background(), shipment.TrackingID, models.EventShipmentCreated, gin.H{
		"origin":      shipment.Origin,
		"destination": shipment.Destination,
		"carbonKg":    shipment.CarbonKg,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to anchor shipment on ledger", "details": err.Error()})
		return
	}
	shipment.TxHash = event.TxHash

	collection := h.DB.Collection("shipments")
	result, err := collection.InsertOne(context.Background(), shipment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipment"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shipment.ID = oid
	}

	c.JSON(http.StatusCreated, shipment)
}

// GetShipments lists shipments visible to the caller, newest first.
func (h *ShipmentHandler) GetShipments(c *gin.Context) {
	collection := h.DB.Collection("shipments")

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), scopeFilter(c), opts)
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

	if shipments == nil {
		shipments = []models.Shipment{}
	}

	c.JSON(http.StatusOK, shipments)
}

// GetShipment returns one shipment by tracking id, scoped to the caller's role.
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	trackingID := c.Param("id")

	var shipment models.Shipment
	err := h.DB.Collection("shipments").FindOne(context.Background(), visibleShipmentFilter(c, trackingID)).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shipment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipment": shipment,
		"badge":    models.BadgeForStatus(shipment.Status),
	})
}

// TrackShipment is the public tracking endpoint: no auth, tracking id only.
func (h *ShipmentHandler) TrackShipment(c *gin.Context) {
	trackingID := c.Param("trackingID")

	var shipment models.Shipment
	err := h.DB.Collection("shipments").FindOne(context.Background(), bson.M{"trackingID": trackingID}).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shipment"})
		}
		return
	}

	// The public view hides customer and driver references.
	c.JSON(http.StatusOK, gin.H{
		"trackingID":    shipment.TrackingID,
		"title":         shipment.Title,
		"origin":        shipment.Origin,
		"destination":   shipment.Destination,
		"status":        shipment.Status,
		"badge":         models.BadgeForStatus(shipment.Status),
		"transportType": shipment.TransportType,
		"carbonKg":      shipment.CarbonKg,
		"txHash":        shipment.TxHash,
		"updatedAt":     shipment.UpdatedAt,
	})
}

// UpdateStatus sets a shipment's status. Managers may update any shipment,
// drivers only their assignments. Any known status is accepted as the next
// one; there is no transition graph.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	trackingID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of: processing, in_transit, delivered, delayed"})
		return
	}

	filter := bson.M{"trackingID": trackingID}
	if c.GetString("user_role") == models.RoleDriver {
		filter["driverID"] = c.GetString("user_id")
	}

	collection := h.DB.Collection("shipments")
	var shipment models.Shipment
	err := collection.FindOneAndUpdate(
		context.Background(),
		filter,
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipment"})
		}
		return
	}

	event, err := h.Ledger.Submit(context.Background(), trackingID, models.EventStatusChanged, gin.H{
		"status": req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to anchor status change on ledger", "details": err.Error()})
		return
	}

	h.pushUpdate(shipment)

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"shipment": shipment,
		"txHash":   event.TxHash,
	})
}

// AssignDriver attaches a driver to a shipment.
func (h *ShipmentHandler) AssignDriver(c *gin.Context) {
	trackingID := c.Param("id")

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driverOID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver id"})
		return
	}

	var driver models.User
	err = h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": driverOID, "role": models.RoleDriver}).Decode(&driver)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	result, err := h.DB.Collection("shipments").UpdateOne(
		context.Background(),
		bson.M{"trackingID": trackingID},
		bson.M{"$set": bson.M{"driverID": req.DriverID, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Driver assigned to shipment " + trackingID})
}

// DeleteShipment removes a shipment. Manager only.
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	trackingID := c.Param("id")

	result, err := h.DB.Collection("shipments").DeleteOne(context.Background(), bson.M{"trackingID": trackingID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shipment"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shipment deleted successfully"})
}

// UploadDeliveryPhoto stores a proof-of-delivery photo on S3 and references
// it from the shipment. Driver only; must be the assigned driver.
func (h *ShipmentHandler) UploadDeliveryPhoto(c *gin.Context) {
	trackingID := c.Param("id")

	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("delivery-proofs/%s/%s%s", trackingID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := h.S3Uploader.UploadFile(context.Background(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		return
	}

	photo := models.MediaPointer{
		ID:       uuid.New().String(),
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	}

	result, err := h.DB.Collection("shipments").UpdateOne(
		context.Background(),
		bson.M{"trackingID": trackingID, "driverID": c.GetString("user_id")},
		bson.M{"$set": bson.M{"deliveryPhoto": photo, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found or not assigned to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "photo": photo})
}

// GetShipmentEvents returns the ledger history for one shipment. The
// shipment must be visible to the caller's role.
func (h *ShipmentHandler) GetShipmentEvents(c *gin.Context) {
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

	events, err := h.Ledger.History(context.Background(), trackingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query shipment events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *ShipmentHandler) pushUpdate(shipment models.Shipment) {
	if h.Hub == nil {
		return
	}
	msg, err := json.Marshal(wsPayload{Type: "shipment_updated", Shipment: shipment})
	if err != nil {
		return
	}
	h.Hub.Broadcast(msg, models.RoleManager)
	if shipment.DriverID != "" {
		h.Hub.Send(shipment.DriverID, msg)
	}
	if shipment.CustomerID != "" {
		h.Hub.Send(shipment.CustomerID, msg)
	}
}
