package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	device "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/device"
)

// DeviceController handles device management requests
type DeviceController struct {
	service *device.Service
	logger  *logger.Logger
}

// NewDeviceController creates a new device controller
func NewDeviceController(service *device.Service, logger *logger.Logger) *DeviceController {
	return &DeviceController{service: service, logger: logger}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(router *gin.Engine) {
	devices := router.Group("/devices")
	{
		devices.POST("", c.CreateDevice)
		devices.GET("", c.ListDevices)
		devices.GET("/tracking", c.GetAllTracking)
		devices.GET("/:device_id", c.GetDevice)
		devices.PUT("/:device_id", c.UpdateDevice)
		devices.DELETE("/:device_id", c.DeleteDevice)

		devices.GET("/:device_id/sync", c.SyncDevice)
		devices.PUT("/:device_id/weight", c.UpdateWeight)
		devices.PUT("/:device_id/battery", c.UpdateBattery)
		devices.PUT("/:device_id/location", c.UpdateLocation)
		devices.PUT("/:device_id/tracking", c.UpdateTracking)
		devices.GET("/:device_id/tracking", c.GetTracking)
	}
}

func deviceID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("device_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail("invalid device_id"))
		return 0, false
	}
	return uint(id), true
}

func (c *DeviceController) CreateDevice(ctx *gin.Context) {
	var req models.DeviceCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.CreateDevice(ctx, req))
}

func (c *DeviceController) GetDevice(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.GetDevice(ctx, id))
}

func (c *DeviceController) ListDevices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.ListDevices(ctx))
}

func (c *DeviceController) UpdateDevice(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var update models.DeviceUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateDevice(ctx, id, update))
}

func (c *DeviceController) DeleteDevice(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.DeleteDevice(ctx, id))
}

func (c *DeviceController) SyncDevice(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.SyncDevice(ctx, id))
}

func (c *DeviceController) UpdateWeight(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var req api.WeightUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateWeight(ctx, id, *req.NewWeight))
}

func (c *DeviceController) UpdateBattery(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var req api.BatteryUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateBattery(ctx, id, req))
}

func (c *DeviceController) UpdateLocation(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var req api.LocationUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateLocation(ctx, id, req))
}

func (c *DeviceController) UpdateTracking(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	var update models.DeviceUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateTracking(ctx, id, update))
}

func (c *DeviceController) GetTracking(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.GetTracking(ctx, id))
}

func (c *DeviceController) GetAllTracking(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.GetAllTracking(ctx))
}
