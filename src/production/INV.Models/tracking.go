package models

import "time"

// History window filters accepted by the tracking endpoints
const (
	WindowDay   = "day"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// WeightTracking is an append-only weight history row. Rows are never
// mutated; they are removed only by explicit per-device or global clear.
type WeightTracking struct {
	Id       uint      `gorm:"column:Id;primaryKey;autoIncrement" json:"Id"`
	DeviceId uint      `gorm:"column:DeviceId;index" json:"DeviceId"`
	Weight   float64   `gorm:"column:Weight" json:"Weight"`
	DateTime time.Time `gorm:"column:DateTime;index" json:"DateTime"`
}

// TableName overrides the default table name
func (WeightTracking) TableName() string { return "WeightTracking" }

// ActivityLog is an append-only audit row recording device events
type ActivityLog struct {
	Id       uint      `gorm:"column:Id;primaryKey;autoIncrement" json:"Id"`
	DeviceId uint      `gorm:"column:DeviceId;index" json:"DeviceId"`
	Event    string    `gorm:"column:Event;size:500" json:"Event"`
	DateTime time.Time `gorm:"column:DateTime;index" json:"DateTime"`
}

// TableName overrides the default table name
func (ActivityLog) TableName() string { return "ActivityLog" }

// WeightTrackingCreate is the request body for manual history inserts.
// Pointer so a zero reading passes required validation.
type WeightTrackingCreate struct {
	Weight *float64 `json:"Weight" binding:"required"`
}

// ActivityLogCreate is the request body for manual log inserts
type ActivityLogCreate struct {
	Event string `json:"Event" binding:"required"`
}

// WindowStart converts a history filter into the start of its trailing
// window from now. Unknown filters mean no window.
func WindowStart(filter string, now time.Time) *time.Time {
	var start time.Time
	switch filter {
	case WindowDay:
		start = now.AddDate(0, 0, -1)
	case WindowWeek:
		start = now.AddDate(0, 0, -7)
	case WindowMonth:
		start = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &start
}
