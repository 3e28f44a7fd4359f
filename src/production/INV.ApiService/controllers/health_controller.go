package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	database "github.com/Ajithkumar-developer/Inventory/src/production/INV.Database"
	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
)

// HealthController reports service and database health
type HealthController struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(db *gorm.DB, logger *logger.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.Health)
}

func (c *HealthController) Health(ctx *gin.Context) {
	status := "healthy"
	dbStatus := "up"
	code := http.StatusOK

	if err := database.Ping(c.db); err != nil {
		c.logger.ErrorWithError(err, "Database health check failed")
		status = "unhealthy"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC(),
	})
}
