package repository

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
)

// TrackingRepository serves the ordered, time-windowed history reads
// the generic gateway's equality contract cannot express. Writes and
// deletes still go through the gateway.
type TrackingRepository struct {
	gw *Gateway
}

// NewTrackingRepository creates a repository over the gateway
func NewTrackingRepository(gw *Gateway) *TrackingRepository {
	return &TrackingRepository{gw: gw}
}

// newestFirst orders by DateTime descending with dialect-aware quoting
var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "DateTime"}, Desc: true},
}}

// ListWeights returns a device's weight history newest-first,
// optionally restricted to entries at or after since.
func (r *TrackingRepository) ListWeights(ctx context.Context, deviceID uint, since *time.Time) ([]models.WeightTracking, error) {
	db, cancel := r.gw.scope(ctx)
	defer cancel()

	query := db.Model(&models.WeightTracking{}).Where(map[string]any{"DeviceId": deviceID})
	if since != nil {
		query = query.Where(clause.Gte{Column: clause.Column{Name: "DateTime"}, Value: *since})
	}

	var rows []models.WeightTracking
	if err := query.Clauses(newestFirst).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEvents returns a device's activity log newest-first, optionally
// restricted to entries at or after since.
func (r *TrackingRepository) ListEvents(ctx context.Context, deviceID uint, since *time.Time) ([]models.ActivityLog, error) {
	db, cancel := r.gw.scope(ctx)
	defer cancel()

	query := db.Model(&models.ActivityLog{}).Where(map[string]any{"DeviceId": deviceID})
	if since != nil {
		query = query.Where(clause.Gte{Column: clause.Column{Name: "DateTime"}, Value: *since})
	}

	var rows []models.ActivityLog
	if err := query.Clauses(newestFirst).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
