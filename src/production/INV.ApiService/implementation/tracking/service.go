package tracking

import (
	"context"
	"fmt"
	"time"

	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

// WeightManager manages the append-only weight history of devices
type WeightManager struct {
	gw   *repository.Gateway
	repo *repository.TrackingRepository
	log  *logger.Logger
}

// NewWeightManager creates a weight history manager
func NewWeightManager(gw *repository.Gateway, repo *repository.TrackingRepository, log *logger.Logger) *WeightManager {
	return &WeightManager{gw: gw, repo: repo, log: log.WithComponent("weight-tracking")}
}

// Create appends a weight history row for the device
func (m *WeightManager) Create(ctx context.Context, deviceID uint, weight float64) *api.Response {
	row := models.WeightTracking{DeviceId: deviceID, Weight: weight, DateTime: time.Now().UTC()}
	if err := repository.Create(ctx, m.gw, &row); err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error recording weight for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error recording weight: %v", err))
	}
	return api.OK("Weight recorded successfully", row)
}

// List returns the device's history newest-first, optionally limited
// to a trailing day/week/month window.
func (m *WeightManager) List(ctx context.Context, deviceID uint, window string) *api.Response {
	since := models.WindowStart(window, time.Now().UTC())
	rows, err := m.repo.ListWeights(ctx, deviceID, since)
	if err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error fetching weight history for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error fetching weight history: %v", err))
	}
	return api.OK("Weight history fetched successfully", rows)
}

// DeleteByDevice removes the history of one device only
func (m *WeightManager) DeleteByDevice(ctx context.Context, deviceID uint) *api.Response {
	rows, err := repository.Delete[models.WeightTracking](ctx, m.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error deleting weight history for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error deleting weight history: %v", err))
	}
	return api.OK("Weight history deleted", api.Deleted{Deleted: rows})
}

// Clear removes the history of every device
func (m *WeightManager) Clear(ctx context.Context) *api.Response {
	rows, err := repository.Delete[models.WeightTracking](ctx, m.gw, nil)
	if err != nil {
		m.log.ErrorWithError(err, "Error clearing weight history")
		return api.Fail(fmt.Sprintf("Error clearing weight history: %v", err))
	}
	return api.OK("Weight tracking cleared", api.Deleted{Deleted: rows})
}

// ActivityManager manages the append-only activity log of devices
type ActivityManager struct {
	gw   *repository.Gateway
	repo *repository.TrackingRepository
	log  *logger.Logger
}

// NewActivityManager creates an activity log manager
func NewActivityManager(gw *repository.Gateway, repo *repository.TrackingRepository, log *logger.Logger) *ActivityManager {
	return &ActivityManager{gw: gw, repo: repo, log: log.WithComponent("activity-log")}
}

// Create appends an activity entry for the device
func (m *ActivityManager) Create(ctx context.Context, deviceID uint, event string) *api.Response {
	row := models.ActivityLog{DeviceId: deviceID, Event: event, DateTime: time.Now().UTC()}
	if err := repository.Create(ctx, m.gw, &row); err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error recording activity for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error recording activity: %v", err))
	}
	return api.OK("Activity recorded successfully", row)
}

// List returns the device's activity log newest-first, optionally
// limited to a trailing day/week/month window.
func (m *ActivityManager) List(ctx context.Context, deviceID uint, window string) *api.Response {
	since := models.WindowStart(window, time.Now().UTC())
	rows, err := m.repo.ListEvents(ctx, deviceID, since)
	if err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error fetching activity log for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error fetching activity log: %v", err))
	}
	return api.OK("Activity log fetched successfully", rows)
}

// DeleteByDevice removes the activity log of one device only
func (m *ActivityManager) DeleteByDevice(ctx context.Context, deviceID uint) *api.Response {
	rows, err := repository.Delete[models.ActivityLog](ctx, m.gw, repository.Filters{"DeviceId": deviceID})
	if err != nil {
		m.log.ErrorWithError(err, fmt.Sprintf("Error deleting activity log for device %d", deviceID))
		return api.Fail(fmt.Sprintf("Error deleting activity log: %v", err))
	}
	return api.OK("Activity log deleted", api.Deleted{Deleted: rows})
}

// Clear removes the activity log of every device
func (m *ActivityManager) Clear(ctx context.Context) *api.Response {
	rows, err := repository.Delete[models.ActivityLog](ctx, m.gw, nil)
	if err != nil {
		m.log.ErrorWithError(err, "Error clearing activity log")
		return api.Fail(fmt.Sprintf("Error clearing activity log: %v", err))
	}
	return api.OK("Activity log cleared", api.Deleted{Deleted: rows})
}
