package device

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
	"github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/stock"
)

// Service orchestrates device CRUD, telemetry updates, history and
// activity logging, and stock recalculation. Every operation returns
// an envelope; store failures degrade to a failure envelope instead of
// propagating.
type Service struct {
	gw    *repository.Gateway
	stock *stock.Calculator
	log   *logger.Logger

	// weightLocks serializes read-then-write weight updates per device
	// id so two interleaved updates cannot lose a reading.
	weightLocks sync.Map
}

// NewService creates a device service
func NewService(gw *repository.Gateway, calc *stock.Calculator, log *logger.Logger) *Service {
	return &Service{
		gw:    gw,
		stock: calc,
		log:   log.WithComponent("device-service"),
	}
}

func (s *Service) lockDevice(deviceID uint) func() {
	value, _ := s.weightLocks.LoadOrStore(deviceID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateDevice persists a new device
func (s *Service) CreateDevice(ctx context.Context, req models.DeviceCreate) *api.Response {
	device := req.Device()
	if err := repository.Create(ctx, s.gw, &device); err != nil {
		s.log.ErrorWithError(err, "Error creating device")
		return api.Fail(fmt.Sprintf("Error creating device: %v", err))
	}
	return api.OK("Device created successfully", device)
}

// GetDevice fetches a single device by id
func (s *Service) GetDevice(ctx context.Context, deviceID uint) *api.Response {
	device, err := repository.ReadOne[models.Device](ctx, s.gw, repository.Filters{"DeviceId": deviceID})
	if errors.Is(err, repository.ErrNotFound) {
		return api.Fail("Device not found")
	}
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error fetching device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error fetching device: %v", err))
	}
	return api.OK("Device fetched successfully", device)
}

// ListDevices fetches all devices and tallies status counts.
// Unrecognized statuses stay uncounted but still appear in the list.
func (s *Service) ListDevices(ctx context.Context) *api.Response {
	devices, err := repository.Read[models.Device](ctx, s.gw, nil)
	if err != nil {
		s.log.ErrorWithError(err, "Error fetching devices")
		return api.Fail(fmt.Sprintf("Error fetching devices: %v", err))
	}

	list := models.DeviceList{Devices: make([]models.Device, 0, len(devices))}
	for _, d := range devices {
		list.Count(d.Status)
		list.Devices = append(list.Devices, d)
	}
	return api.OK("Devices fetched successfully", list)
}

// UpdateDevice applies a partial field merge to a device. An empty
// mask is acknowledged without touching the row.
func (s *Service) UpdateDevice(ctx context.Context, deviceID uint, update models.DeviceUpdate) *api.Response {
	fields := update.Fields()
	if len(fields) == 0 {
		return api.OK("No fields to update", api.RowsAffected{Rows: 0})
	}
	rows, err := repository.Update[models.Device](ctx, s.gw, repository.Filters{"DeviceId": deviceID}, fields)
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error updating device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error updating device: %v", err))
	}
	if rows == 0 {
		return api.Fail("Device not found")
	}
	return api.OK("Device updated successfully", api.RowsAffected{Rows: rows})
}

// DeleteDevice removes a device by id
func (s *Service) DeleteDevice(ctx context.Context, deviceID uint) *api.Response {
	rows, err := repository.Delete[models.Device](ctx, s.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error deleting device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error deleting device: %v", err))
	}
	if rows == 0 {
		return api.Fail("Device not found")
	}
	return api.OK("Device deleted successfully", api.RowsAffected{Rows: rows})
}

// UpdateWeight records a new weight reading: the previous weight moves
// into LastReading, a history row and an activity entry are appended,
// and stock is recalculated for any inventory the device monitors.
// Activity-log failures never block the primary update.
func (s *Service) UpdateWeight(ctx context.Context, deviceID uint, newWeight float64) *api.Response {
	unlock := s.lockDevice(deviceID)
	defer unlock()

	device, err := repository.ReadOne[models.Device](ctx, s.gw, repository.Filters{"DeviceId": deviceID})
	if errors.Is(err, repository.ErrNotFound) {
		return api.Fail("Device not found")
	}
	if err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error updating device weight %d", deviceID))
		return api.Fail(fmt.Sprintf("Error updating device weight: %v", err))
	}

	previousWeight := device.Weight

	if _, err := repository.Update[models.Device](ctx, s.gw,
		repository.Filters{"DeviceId": deviceID},
		map[string]any{
			"LastReading": previousWeight,
			"Weight":      newWeight,
		}); err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error updating device weight %d", deviceID))
		return api.Fail(fmt.Sprintf("Error updating device weight: %v", err))
	}

	s.log.Info(fmt.Sprintf("Device %d updated | LastReading=%.3f, Weight=%.3f", deviceID, previousWeight, newWeight))

	history := models.WeightTracking{DeviceId: deviceID, Weight: newWeight, DateTime: time.Now().UTC()}
	if err := repository.Create(ctx, s.gw, &history); err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error appending weight history for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error updating device weight: %v", err))
	}

	s.logActivity(ctx, deviceID, fmt.Sprintf("Weight updated from %.3f to %.3f", previousWeight, newWeight))

	if err := s.stock.Recalculate(ctx, deviceID); err != nil {
		s.log.ErrorWithError(err, fmt.Sprintf("Error recalculating stock for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error updating device weight: %v", err))
	}

	return api.OK("Device weight updated and stock recalculated", api.WeightUpdateResult{
		DeviceId:    deviceID,
		LastReading: previousWeight,
		Weight:      newWeight,
	})
}

// UpdateBattery updates the battery level and records the change
func (s *Service) UpdateBattery(ctx context.Context, deviceID uint, req api.BatteryUpdateRequest) *api.Response {
	resp := s.UpdateDevice(ctx, deviceID, models.DeviceUpdate{Battery: req.Battery})
	if resp.Success {
		s.logActivity(ctx, deviceID, fmt.Sprintf("Battery updated to %.1f%%", *req.Battery))
	}
	return resp
}

// UpdateLocation updates the coordinates and records the change
func (s *Service) UpdateLocation(ctx context.Context, deviceID uint, req api.LocationUpdateRequest) *api.Response {
	update := models.DeviceUpdate{Latitude: req.Latitude, Longitude: req.Longitude, LocationName: req.LocationName}
	resp := s.UpdateDevice(ctx, deviceID, update)
	if resp.Success {
		s.logActivity(ctx, deviceID, fmt.Sprintf("Location updated to (%.6f, %.6f)", *req.Latitude, *req.Longitude))
	}
	return resp
}

// UpdateTracking applies a partial tracking-field update and records
// which fields changed
func (s *Service) UpdateTracking(ctx context.Context, deviceID uint, update models.DeviceUpdate) *api.Response {
	fields := update.Fields()
	resp := s.UpdateDevice(ctx, deviceID, update)
	if resp.Success && len(fields) > 0 {
		changed := make([]string, 0, len(fields))
		for name := range fields {
			changed = append(changed, name)
		}
		sort.Strings(changed)
		s.logActivity(ctx, deviceID, fmt.Sprintf("Tracking fields updated: %v", changed))
	}
	return resp
}

// SyncDevice acknowledges a sync request and records it. Device state
// reconciliation is intentionally not performed.
func (s *Service) SyncDevice(ctx context.Context, deviceID uint) *api.Response {
	s.logActivity(ctx, deviceID, "Device Synced")
	return api.OK("Device synced successfully", map[string]any{"DeviceId": deviceID})
}

// GetTracking returns the device's current telemetry
func (s *Service) GetTracking(ctx context.Context, deviceID uint) *api.Response {
	return s.GetDevice(ctx, deviceID)
}

// GetAllTracking returns telemetry for all devices
func (s *Service) GetAllTracking(ctx context.Context) *api.Response {
	return s.ListDevices(ctx)
}

// logActivity appends an activity entry. Failures are logged and
// swallowed so they never fail the primary operation.
func (s *Service) logActivity(ctx context.Context, deviceID uint, event string) {
	entry := models.ActivityLog{DeviceId: deviceID, Event: event, DateTime: time.Now().UTC()}
	if err := repository.Create(ctx, s.gw, &entry); err != nil {
		s.log.WithError(err).Warn(fmt.Sprintf("Failed to record activity for device %d: %s", deviceID, event))
	}
}
