// server/internal/api/routes/routes.go
package routes

import (
	"ecofreight-api-server/config"
	"ecofreight-api-server/internal/api/handlers"
	"ecofreight-api-server/internal/api/middleware"
	"ecofreight-api-server/internal/ledger"
	"ecofreight-api-server/internal/models"
	"ecofreight-api-server/internal/s3"
	"ecofreight-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers and route groups.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	chain *ledger.Ledger,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{Cfg: cfg, DB: db}
	shipmentHandler := &handlers.ShipmentHandler{Cfg: cfg, DB: db, Ledger: chain, S3Uploader: s3Uploader, Hub: wsHub}
	sensorHandler := &handlers.SensorHandler{DB: db, Ledger: chain, Hub: wsHub}
	reviewHandler := &handlers.ReviewHandler{DB: db, Ledger: chain}
	suggestionHandler := &handlers.SuggestionHandler{DB: db}
	routeHandler := &handlers.RouteHandler{DB: db}
	ledgerHandler := &handlers.LedgerHandler{Ledger: chain}
	dashboardHandler := &handlers.DashboardHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public tracking lookup, no JWT required.
		apiV1.GET("/track/:trackingID", shipmentHandler.TrackShipment)

		// === PROTECTED ROUTES ===

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.GET("/dashboard", dashboardHandler.GetDashboard)
			protected.GET("/carbon/summary", dashboardHandler.GetCarbonSummary)

			// Shipment management
			shipments := protected.Group("/shipments")
			{
				shipments.GET("/", shipmentHandler.GetShipments)
				shipments.GET("/:id", shipmentHandler.GetShipment)
				shipments.GET("/:id/events", shipmentHandler.GetShipmentEvents)
				shipments.GET("/:id/sensors", sensorHandler.GetReadings)

				managerShipmentRoutes := shipments.Group("/")
				managerShipmentRoutes.Use(middleware.Authorize(models.RoleManager))
				{
					managerShipmentRoutes.POST("/", shipmentHandler.CreateShipment)
					managerShipmentRoutes.PATCH("/:id/assign", shipmentHandler.AssignDriver)
					managerShipmentRoutes.DELETE("/:id", shipmentHandler.DeleteShipment)
				}

				operationalShipmentRoutes := shipments.Group("/")
				operationalShipmentRoutes.Use(middleware.Authorize(models.RoleManager, models.RoleDriver))
				{
					operationalShipmentRoutes.PATCH("/:id/status", shipmentHandler.UpdateStatus)
					operationalShipmentRoutes.POST("/:id/sensors", sensorHandler.AddReading)
				}

				driverShipmentRoutes := shipments.Group("/")
				driverShipmentRoutes.Use(middleware.Authorize(models.RoleDriver))
				{
					driverShipmentRoutes.POST("/:id/delivery-photo", shipmentHandler.UploadDeliveryPhoto)
				}
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("/", reviewHandler.GetReviews)

				customerReviewRoutes := reviews.Group("/")
				customerReviewRoutes.Use(middleware.Authorize(models.RoleCustomer))
				{
					customerReviewRoutes.POST("/", reviewHandler.CreateReview)
				}

				managerReviewRoutes := reviews.Group("/")
				managerReviewRoutes.Use(middleware.Authorize(models.RoleManager))
				{
					managerReviewRoutes.PATCH("/:id/approve", reviewHandler.ApproveReview)
				}
			}

			// Sustainability suggestions
			suggestions := protected.Group("/suggestions")
			{
				suggestions.GET("/", suggestionHandler.GetSuggestions)

				managerSuggestionRoutes := suggestions.Group("/")
				managerSuggestionRoutes.Use(middleware.Authorize(models.RoleManager))
				{
					managerSuggestionRoutes.POST("/generate", suggestionHandler.GenerateSuggestions)
					managerSuggestionRoutes.PATCH("/:id/implement", suggestionHandler.ImplementSuggestion)
				}
			}

			// Route optimizer demo
			routeGroup := protected.Group("/routes")
			{
				routeGroup.GET("/", routeHandler.GetRoutes)
				routeGroup.GET("/:id", routeHandler.GetRoute)

				managerRouteRoutes := routeGroup.Group("/")
				managerRouteRoutes.Use(middleware.Authorize(models.RoleManager))
				{
					managerRouteRoutes.POST("/:id/optimize", routeHandler.OptimizeRoute)
				}
			}

			// Mock ledger
			ledgerGroup := protected.Group("/ledger")
			{
				ledgerGroup.POST("/verify", ledgerHandler.Verify)
				ledgerGroup.GET("/transactions", ledgerHandler.GetRecentTransactions)
			}

			// Vehicles
			vehicles := protected.Group("/vehicles")
			vehicles.Use(middleware.Authorize(models.RoleManager, models.RoleDriver))
			{
				vehicles.POST("/", vehicleHandler.CreateVehicle)
				vehicles.GET("/my", vehicleHandler.GetMyVehicles)

				managerVehicleRoutes := vehicles.Group("/")
				managerVehicleRoutes.Use(middleware.Authorize(models.RoleManager))
				{
					managerVehicleRoutes.GET("/", vehicleHandler.GetAllVehicles)
				}
			}

			// Drivers directory for assignment
			managerRoutes := protected.Group("/")
			managerRoutes.Use(middleware.Authorize(models.RoleManager))
			{
				managerRoutes.GET("/drivers", dashboardHandler.GetDrivers)
			}
		}
	}

	return router
}
