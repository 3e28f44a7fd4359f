package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	tracking "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/tracking"
)

// TrackingController handles weight-history and activity-log requests
type TrackingController struct {
	weights  *tracking.WeightManager
	activity *tracking.ActivityManager
	logger   *logger.Logger
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(weights *tracking.WeightManager, activity *tracking.ActivityManager, logger *logger.Logger) *TrackingController {
	return &TrackingController{weights: weights, activity: activity, logger: logger}
}

// RegisterRoutes registers the history routes with Gin
func (c *TrackingController) RegisterRoutes(router *gin.Engine) {
	device := router.Group("/device")
	{
		device.POST("/:device_id/weight-tracking", c.CreateWeight)
		device.GET("/:device_id/weight-tracking", c.ListWeights)
		device.DELETE("/:device_id/weight-tracking", c.DeleteWeights)
		device.DELETE("/weight-tracking", c.ClearWeights)

		device.POST("/:device_id/activity-tracking", c.CreateActivity)
		device.GET("/:device_id/activity-tracking", c.ListActivity)
		device.DELETE("/:device_id/activity-tracking", c.DeleteActivity)
		device.DELETE("/activity-tracking", c.ClearActivity)
	}
}

func (c *TrackingController) CreateWeight(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var req models.WeightTrackingCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.weights.Create(ctx, id, *req.Weight))
}

func (c *TrackingController) ListWeights(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	window := ctx.Query("filter")
	ctx.JSON(http.StatusOK, c.weights.List(ctx, id, window))
}

func (c *TrackingController) DeleteWeights(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.weights.DeleteByDevice(ctx, id))
}

func (c *TrackingController) ClearWeights(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.weights.Clear(ctx))
}

func (c *TrackingController) CreateActivity(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var req models.ActivityLogCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.activity.Create(ctx, id, req.Event))
}

func (c *TrackingController) ListActivity(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	window := ctx.Query("filter")
	ctx.JSON(http.StatusOK, c.activity.List(ctx, id, window))
}

func (c *TrackingController) DeleteActivity(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.activity.DeleteByDevice(ctx, id))
}

func (c *TrackingController) ClearActivity(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.activity.Clear(ctx))
}
