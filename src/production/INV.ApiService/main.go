package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/controllers"
	device "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/device"
	inventory "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/inventory"
	"github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/stock"
	tracking "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/tracking"
	"github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/middleware"
	container "github.com/Ajithkumar-developer/Inventory/src/production/INV.Container"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting Inventory API Service")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	gateway, err := ctr.GetGateway()
	if err != nil {
		logger.FatalWithError(err, "Failed to create persistence gateway")
	}
	trackingRepo := repository.NewTrackingRepository(gateway)

	// Create services
	calculator := stock.NewCalculator(gateway, logger)
	deviceService := device.NewService(gateway, calculator, logger)
	inventoryService := inventory.NewService(gateway, logger)
	weightManager := tracking.NewWeightManager(gateway, trackingRepo, logger)
	activityManager := tracking.NewActivityManager(gateway, trackingRepo, logger)

	config := ctr.GetConfig()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	deviceController := controllers.NewDeviceController(deviceService, logger)
	trackingController := controllers.NewTrackingController(weightManager, activityManager, logger)
	inventoryController := controllers.NewInventoryController(inventoryService, logger)
	healthController := controllers.NewHealthController(db, logger)

	deviceController.RegisterRoutes(router)
	trackingController.RegisterRoutes(router)
	inventoryController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	port := config.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
