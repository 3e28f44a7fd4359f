package models

import "time"

// Device lifecycle status values. Values outside this set are tolerated
// in storage but excluded from summary counts.
const (
	DeviceStatusOnline     = "Online"
	DeviceStatusOffline    = "Offline"
	DeviceStatusUnlinked   = "Unlinked"
	DeviceStatusLowBattery = "LowBattery"
)

// Device is a telemetry-reporting unit (e.g. a smart scale).
// LastReading holds the weight value immediately prior to the most
// recent update. It is a single slot, overwritten on every weight
// update, never appended.
type Device struct {
	DeviceId     uint      `gorm:"column:DeviceId;primaryKey;autoIncrement" json:"DeviceId"`
	DeviceName   string    `gorm:"column:DeviceName;size:255" json:"DeviceName"`
	Weight       float64   `gorm:"column:Weight" json:"Weight"`
	LastReading  float64   `gorm:"column:LastReading" json:"LastReading"`
	Battery      float64   `gorm:"column:Battery" json:"Battery"`
	Latitude     float64   `gorm:"column:Latitude" json:"Latitude"`
	Longitude    float64   `gorm:"column:Longitude" json:"Longitude"`
	LocationName string    `gorm:"column:LocationName;size:255" json:"LocationName"`
	Status       string    `gorm:"column:Status;size:50" json:"Status"`
	CreatedAt    time.Time `gorm:"column:CreatedAt;autoCreateTime" json:"CreatedAt"`
	UpdatedAt    time.Time `gorm:"column:UpdatedAt;autoUpdateTime" json:"UpdatedAt"`
}

// TableName overrides the default table name
func (Device) TableName() string { return "Device" }

// DeviceCreate carries the writable fields for device creation
type DeviceCreate struct {
	DeviceName   string  `json:"DeviceName" binding:"required"`
	Weight       float64 `json:"Weight"`
	LastReading  float64 `json:"LastReading"`
	Battery      float64 `json:"Battery"`
	Latitude     float64 `json:"Latitude"`
	Longitude    float64 `json:"Longitude"`
	LocationName string  `json:"LocationName"`
	Status       string  `json:"Status"`
}

// Device builds the entity to persist
func (c DeviceCreate) Device() Device {
	status := c.Status
	if status == "" {
		status = DeviceStatusUnlinked
	}
	return Device{
		DeviceName:   c.DeviceName,
		Weight:       c.Weight,
		LastReading:  c.LastReading,
		Battery:      c.Battery,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		LocationName: c.LocationName,
		Status:       status,
	}
}

// DeviceUpdate is a field mask for partial device updates. Only fields
// explicitly present in the request are applied.
type DeviceUpdate struct {
	DeviceName   *string  `json:"DeviceName"`
	Weight       *float64 `json:"Weight"`
	LastReading  *float64 `json:"LastReading"`
	Battery      *float64 `json:"Battery"`
	Latitude     *float64 `json:"Latitude"`
	Longitude    *float64 `json:"Longitude"`
	LocationName *string  `json:"LocationName"`
	Status       *string  `json:"Status"`
}

// Fields returns the set columns as an update map
func (u DeviceUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	if u.DeviceName != nil {
		fields["DeviceName"] = *u.DeviceName
	}
	if u.Weight != nil {
		fields["Weight"] = *u.Weight
	}
	if u.LastReading != nil {
		fields["LastReading"] = *u.LastReading
	}
	if u.Battery != nil {
		fields["Battery"] = *u.Battery
	}
	if u.Latitude != nil {
		fields["Latitude"] = *u.Latitude
	}
	if u.Longitude != nil {
		fields["Longitude"] = *u.Longitude
	}
	if u.LocationName != nil {
		fields["LocationName"] = *u.LocationName
	}
	if u.Status != nil {
		fields["Status"] = *u.Status
	}
	return fields
}

// DeviceStatusCount tallies devices per recognized status
type DeviceStatusCount struct {
	Online     int `json:"Online"`
	Offline    int `json:"Offline"`
	Unlinked   int `json:"Unlinked"`
	LowBattery int `json:"LowBattery"`
}

// Count adds one device status to the tally; unrecognized values are
// left uncounted.
func (c *DeviceStatusCount) Count(status string) {
	switch status {
	case DeviceStatusOnline:
		c.Online++
	case DeviceStatusOffline:
		c.Offline++
	case DeviceStatusUnlinked:
		c.Unlinked++
	case DeviceStatusLowBattery:
		c.LowBattery++
	}
}

// DeviceList is the payload for device listings
type DeviceList struct {
	DeviceStatusCount
	Devices []Device `json:"Devices"`
}

// DeviceSummary is the reduced projection embedded in inventory reads
type DeviceSummary struct {
	DeviceId     uint    `json:"DeviceId"`
	DeviceName   string  `json:"DeviceName"`
	LastReading  float64 `json:"LastReading"`
	Weight       float64 `json:"Weight"`
	LocationName string  `json:"LocationName"`
}

// Summary builds the reduced projection for inventory embedding
func (d Device) Summary() *DeviceSummary {
	return &DeviceSummary{
		DeviceId:     d.DeviceId,
		DeviceName:   d.DeviceName,
		LastReading:  d.LastReading,
		Weight:       d.Weight,
		LocationName: d.LocationName,
	}
}
