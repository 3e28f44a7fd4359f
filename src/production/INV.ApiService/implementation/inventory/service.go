package inventory

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

// Service manages inventory rows and joins them with their assigned
// device's live telemetry. Dangling device references are treated as
// unlinked, never as an error.
type Service struct {
	gw  *repository.Gateway
	log *logger.Logger
}

// NewService creates an inventory service
func NewService(gw *repository.Gateway, log *logger.Logger) *Service {
	return &Service{gw: gw, log: log.WithComponent("inventory-service")}
}

// CreateInventory persists a new inventory row
func (s *Service) CreateInventory(ctx context.Context, req models.InventoryCreate) *api.Response {
	item := req.Inventory()
	if err := repository.Create(ctx, s.gw, &item); err != nil {
		s.log.ErrorWithError(err, "Error creating inventory")
		return api.Fail(fmt.Sprintf("Error creating inventory: %v", err))
	}
	return api.OK("Inventory created successfully", item)
}

// GetInventory fetches one inventory row with its device projection
// embedded. A missing or dangling device reference embeds null.
func (s *Service) GetInventory(ctx context.Context, inventoryID uint) *api.Response {
	item, err := repository.ReadOne[models.Inventory](ctx, s.gw, repository.Filters{"InventoryId": inventoryID})
	if errors.Is(err, repository.ErrNotFound) {
		return api.Fail("Inventory not found")
	}
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error fetching inventory %d", inventoryID))
		return api.Fail(fmt.Sprintf("Error fetching inventory: %v", err))
	}

	var summary *models.DeviceSummary
	if item.DeviceId != nil {
		device, err := repository.ReadOne[models.Device](ctx, s.gw, repository.Filters{"DeviceId": *item.DeviceId})
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.ErrorWithError(err, fmt.Sprintf("Error fetching device for inventory %d", inventoryID))
			return api.Fail(fmt.Sprintf("Error fetching inventory: %v", err))
		}
		if device != nil {
			summary = device.Summary()
		}
	}

	return api.OK("Inventory fetched successfully", item.Detail(summary))
}

// ListInventory fetches all inventory rows, embeds each assigned
// device's telemetry via a lookup built once per call, and aggregates
// total, low-stock, out-of-stock and linked-device counts.
func (s *Service) ListInventory(ctx context.Context) *api.Response {
	items, err := repository.Read[models.Inventory](ctx, s.gw, nil)
	if err != nil {
		s.log.ErrorWithError(err, "Error fetching inventory")
		return api.Fail(fmt.Sprintf("Error fetching inventory: %v", err))
	}

	devices, err := repository.Read[models.Device](ctx, s.gw, nil)
	if err != nil {
		s.log.ErrorWithError(err, "Error fetching devices for inventory listing")
		return api.Fail(fmt.Sprintf("Error fetching inventory: %v", err))
	}

	deviceMap := make(map[uint]models.Device, len(devices))
	for _, d := range devices {
		deviceMap[d.DeviceId] = d
	}

	list := models.InventoryList{InventoryData: make([]models.InventoryDetail, 0, len(items))}

	for _, item := range items {
		list.TotalItems++

		// Counts are based on the stored status
		switch item.Status {
		case models.StockStatusLowStock:
			list.LowStock++
		case models.StockStatusOutOfStock:
			list.OutOfStock++
		}

		var summary *models.DeviceSummary
		if item.DeviceId != nil {
			if device, ok := deviceMap[*item.DeviceId]; ok {
				summary = device.Summary()
				list.LinkedDevices++
			}
		}

		list.InventoryData = append(list.InventoryData, item.Detail(summary))
	}

	return api.OK("Inventory fetched successfully", list)
}

// UpdateInventory applies a partial field merge to an inventory row.
// An empty mask is acknowledged without touching the row.
func (s *Service) UpdateInventory(ctx context.Context, inventoryID uint, update models.InventoryUpdate) *api.Response {
	fields := update.Fields()
	if len(fields) == 0 {
		return api.OK("No fields to update", api.RowsAffected{Rows: 0})
	}
	rows, err := repository.Update[models.Inventory](ctx, s.gw, repository.Filters{"InventoryId": inventoryID}, fields)
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error updating inventory %d", inventoryID))
		return api.Fail(fmt.Sprintf("Error updating inventory: %v", err))
	}
	if rows == 0 {
		return api.Fail("Inventory not found")
	}
	return api.OK("Inventory updated successfully", api.RowsAffected{Rows: rows})
}

// DeleteInventory removes an inventory row by id
func (s *Service) DeleteInventory(ctx context.Context, inventoryID uint) *api.Response {
	rows, err := repository.Delete[models.Inventory](ctx, s.gw, repository.Filters{"InventoryId": inventoryID})
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error deleting inventory %d", inventoryID))
		return api.Fail(fmt.Sprintf("Error deleting inventory: %v", err))
	}
	if rows == 0 {
		return api.Fail("Inventory not found")
	}
	return api.OK("Inventory deleted successfully", api.RowsAffected{Rows: rows})
}

// UpdateStock sets the stock quantity directly. Status is not
// recomputed here; classification happens on the weight-update path.
func (s *Service) UpdateStock(ctx context.Context, inventoryID uint, req models.StockUpdate) *api.Response {
	return s.UpdateInventory(ctx, inventoryID, models.InventoryUpdate{Stock: req.Stock})
}

// AssignDevice links the inventory row to a device
func (s *Service) AssignDevice(ctx context.Context, inventoryID uint, req models.DeviceAssign) *api.Response {
	deviceID := req.DeviceId
	return s.UpdateInventory(ctx, inventoryID, models.InventoryUpdate{DeviceId: &deviceID})
}

// GetByDevice returns all inventory rows monitored by the device
func (s *Service) GetByDevice(ctx context.Context, deviceID uint) *api.Response {
	items, err := repository.Read[models.Inventory](ctx, s.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error fetching inventory for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error fetching inventory by device: %v", err))
	}
	return api.OK("Inventory fetched by device", items)
}
