// internal/api/handlers/route_handler.go
package handlers

import (
	"context"
	"net/http"

	"ecofreight-api-server/internal/models"
	"ecofreight-api-server/internal/routeopt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RouteHandler struct {
	DB *mongo.Database
}

// GetRoutes lists all corridors with their active variant.
func (h *RouteHandler) GetRoutes(c *gin.Context) {
	cursor, err := h.DB.Collection("routes").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query routes"})
		return
	}
	defer cursor.Close(context.Background())

	var routes []models.Route
	if err = cursor.All(context.Background(), &routes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode routes"})
		return
	}

	if routes == nil {
		routes = []models.Route{}
	}

	c.JSON(http.StatusOK, routes)
}

// GetRoute returns one corridor plus its currently served variant.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("id")

	var route models.Route
	err := h.DB.Collection("routes").FindOne(context.Background(), bson.M{"routeID": routeID}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route":  route,
		"active": routeopt.ActiveVariant(route),
	})
}

// OptimizeRoute flips the corridor to its eco variant and reports the
// savings delta. This is a demo swap between two pre-authored variants, not
// a route search.
func (h *RouteHandler) OptimizeRoute(c *gin.Context) {
	routeID := c.Param("id")

	var route models.Route
	err := h.DB.Collection("routes").FindOne(context.Background(), bson.M{"routeID": routeID}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route"})
		}
		return
	}

	if route.Active != "eco" {
		_, err = h.DB.Collection("routes").UpdateOne(
			context.Background(),
			bson.M{"routeID": routeID},
			bson.M{"$set": bson.M{"active": "eco"}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route"})
			return
		}
		route.Active = "eco"
	}

	c.JSON(http.StatusOK, gin.H{
		"route":    route,
		"standard": route.Standard,
		"eco":      route.Eco,
		"savings":  routeopt.Compare(route),
	})
}
