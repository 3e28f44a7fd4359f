package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	inventory "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/inventory"
)

// InventoryController handles inventory management requests
type InventoryController struct {
	service *inventory.Service
	logger  *logger.Logger
}

// NewInventoryController creates a new inventory controller
func NewInventoryController(service *inventory.Service, logger *logger.Logger) *InventoryController {
	return &InventoryController{service: service, logger: logger}
}

// RegisterRoutes registers the inventory routes with Gin
func (c *InventoryController) RegisterRoutes(router *gin.Engine) {
	inv := router.Group("/inventory")
	{
		inv.POST("", c.CreateInventory)
		inv.GET("", c.ListInventory)
		inv.GET("/device/:device_id", c.GetByDevice)
		inv.GET("/:inventory_id", c.GetInventory)
		inv.PUT("/:inventory_id", c.UpdateInventory)
		inv.DELETE("/:inventory_id", c.DeleteInventory)

		inv.PUT("/:inventory_id/update-stock", c.UpdateStock)
		inv.PUT("/:inventory_id/assign-device", c.AssignDevice)
	}
}

func inventoryID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("inventory_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail("invalid inventory_id"))
		return 0, false
	}
	return uint(id), true
}

func (c *InventoryController) CreateInventory(ctx *gin.Context) {
	var req models.InventoryCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.CreateInventory(ctx, req))
}

func (c *InventoryController) GetInventory(ctx *gin.Context) {
	id, ok := inventoryID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.GetInventory(ctx, id))
}

func (c *InventoryController) ListInventory(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.ListInventory(ctx))
}

func (c *InventoryController) UpdateInventory(ctx *gin.Context) {
	id, ok := inventoryID(ctx)
	if !ok {
		return
	}
	var update models.InventoryUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateInventory(ctx, id, update))
}

func (c *InventoryController) DeleteInventory(ctx *gin.Context) {
	id, ok := inventoryID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.DeleteInventory(ctx, id))
}

func (c *InventoryController) UpdateStock(ctx *gin.Context) {
	id, ok := inventoryID(ctx)
	if !ok {
		return
	}
	var req models.StockUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.UpdateStock(ctx, id, req))
}

func (c *InventoryController) AssignDevice(ctx *gin.Context) {
	id, ok := inventoryID(ctx)
	if !ok {
		return
	}
	var req models.DeviceAssign
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, c.service.AssignDevice(ctx, id, req))
}

func (c *InventoryController) GetByDevice(ctx *gin.Context) {
	id, ok := deviceID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.service.GetByDevice(ctx, id))
}
