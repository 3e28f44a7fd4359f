package stock

import (
	"context"
	"fmt"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

// Calculator converts a device's weight delta into inventory stock
// consumption and recomputes the stock status of every inventory row
// monitored by that device.
type Calculator struct {
	gw  *repository.Gateway
	log *logger.Logger
}

// NewCalculator creates a stock calculator over the gateway
func NewCalculator(gw *repository.Gateway, log *logger.Logger) *Calculator {
	return &Calculator{gw: gw, log: log.WithComponent("stock-calculator")}
}

// Classify resolves the stock status from the quantity boundaries.
// Ties resolve toward the more severe status.
func Classify(stock, threshold, stockOut float64) string {
	switch {
	case stock <= stockOut:
		return models.StockStatusOutOfStock
	case stock <= threshold:
		return models.StockStatusLowStock
	default:
		return models.StockStatusNormal
	}
}

// Recalculate recomputes stock, consumption and status for every
// inventory row assigned to the device. A device without inventory is
// a no-op. Rows whose UnitWeight is zero or negative cannot be
// converted; they are skipped with a warning instead of failing the
// update path. Negative deltas (refills) are ignored.
func (c *Calculator) Recalculate(ctx context.Context, deviceID uint) error {
	device, err := repository.ReadOne[models.Device](ctx, c.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		return fmt.Errorf("fetch device %d: %w", deviceID, err)
	}

	items, err := repository.Read[models.Inventory](ctx, c.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		return fmt.Errorf("fetch inventory for device %d: %w", deviceID, err)
	}
	if len(items) == 0 {
		return nil
	}

	delta := device.LastReading - device.Weight

	for _, item := range items {
		if item.UnitWeight <= 0 {
			c.log.Warn(fmt.Sprintf("Inventory %d has no usable UnitWeight, skipping stock recompute", item.InventoryId))
			continue
		}
		if delta <= 0 {
			c.log.Debug(fmt.Sprintf("Device %d reported no consumption (delta=%.3f), skipping inventory %d", deviceID, delta, item.InventoryId))
			continue
		}

		unitsConsumed := delta / item.UnitWeight

		newStock := item.Stock - unitsConsumed
		if newStock < 0 {
			newStock = 0
		}

		newConsumption := item.Consumption + unitsConsumed
		if newConsumption < 0 {
			newConsumption = 0
		}

		status := Classify(newStock, item.Threshold, item.StockOut)

		rows, err := repository.Update[models.Inventory](ctx, c.gw,
			repository.Filters{"InventoryId": item.InventoryId},
			map[string]any{
				"Stock":       newStock,
				"Consumption": newConsumption,
				"Status":      status,
			})
		if err != nil {
			return fmt.Errorf("update inventory %d: %w", item.InventoryId, err)
		}
		if rows == 0 {
			c.log.Warn(fmt.Sprintf("Inventory %d disappeared during recompute", item.InventoryId))
			continue
		}

		c.log.Info(fmt.Sprintf(
			"Inventory %d recomputed | units=%.3f stock=%.3f status=%s",
			item.InventoryId, unitsConsumed, newStock, status))
	}

	return nil
}
