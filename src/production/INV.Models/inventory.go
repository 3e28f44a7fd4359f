package models

import "time"

// Inventory stock status values
const (
	StockStatusNormal     = "Normal"
	StockStatusLowStock   = "LowStock"
	StockStatusOutOfStock = "OutOfStock"
)

// Inventory is a stocked item tracked by mass, optionally monitored by
// one device. DeviceId is a weak reference: a dangling id is tolerated
// and treated as unlinked.
type Inventory struct {
	InventoryId uint      `gorm:"column:InventoryId;primaryKey;autoIncrement" json:"InventoryId"`
	ItemCode    string    `gorm:"column:ItemCode;size:100" json:"ItemCode"`
	ItemName    string    `gorm:"column:ItemName;size:255" json:"ItemName"`
	Category    string    `gorm:"column:Category;size:100" json:"Category"`
	Description string    `gorm:"column:Description;size:500" json:"Description"`
	DeviceId    *uint     `gorm:"column:DeviceId" json:"DeviceId"`
	UnitWeight  float64   `gorm:"column:UnitWeight" json:"UnitWeight"`
	Stock       float64   `gorm:"column:Stock" json:"Stock"`
	Threshold   float64   `gorm:"column:Threshold" json:"Threshold"`
	StockOut    float64   `gorm:"column:StockOut" json:"StockOut"`
	Consumption float64   `gorm:"column:Consumption" json:"Consumption"`
	Status      string    `gorm:"column:Status;size:50" json:"Status"`
	CreatedAt   time.Time `gorm:"column:CreatedAt;autoCreateTime" json:"CreatedAt"`
	UpdatedAt   time.Time `gorm:"column:UpdatedAt;autoUpdateTime" json:"UpdatedAt"`
}

// TableName overrides the default table name
func (Inventory) TableName() string { return "Inventory" }

// InventoryCreate carries the writable fields for inventory creation
type InventoryCreate struct {
	ItemCode    string  `json:"ItemCode"`
	ItemName    string  `json:"ItemName" binding:"required"`
	Category    string  `json:"Category"`
	Description string  `json:"Description"`
	DeviceId    *uint   `json:"DeviceId"`
	UnitWeight  float64 `json:"UnitWeight"`
	Stock       float64 `json:"Stock"`
	Threshold   float64 `json:"Threshold"`
	StockOut    float64 `json:"StockOut"`
	Consumption float64 `json:"Consumption"`
	Status      string  `json:"Status"`
}

// Inventory builds the entity to persist
func (c InventoryCreate) Inventory() Inventory {
	status := c.Status
	if status == "" {
		status = StockStatusNormal
	}
	return Inventory{
		ItemCode:    c.ItemCode,
		ItemName:    c.ItemName,
		Category:    c.Category,
		Description: c.Description,
		DeviceId:    c.DeviceId,
		UnitWeight:  c.UnitWeight,
		Stock:       c.Stock,
		Threshold:   c.Threshold,
		StockOut:    c.StockOut,
		Consumption: c.Consumption,
		Status:      status,
	}
}

// InventoryUpdate is a field mask for partial inventory updates
type InventoryUpdate struct {
	ItemCode    *string  `json:"ItemCode"`
	ItemName    *string  `json:"ItemName"`
	Category    *string  `json:"Category"`
	Description *string  `json:"Description"`
	DeviceId    *uint    `json:"DeviceId"`
	UnitWeight  *float64 `json:"UnitWeight"`
	Stock       *float64 `json:"Stock"`
	Threshold   *float64 `json:"Threshold"`
	StockOut    *float64 `json:"StockOut"`
	Consumption *float64 `json:"Consumption"`
	Status      *string  `json:"Status"`
}

// Fields returns the set columns as an update map
func (u InventoryUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	if u.ItemCode != nil {
		fields["ItemCode"] = *u.ItemCode
	}
	if u.ItemName != nil {
		fields["ItemName"] = *u.ItemName
	}
	if u.Category != nil {
		fields["Category"] = *u.Category
	}
	if u.Description != nil {
		fields["Description"] = *u.Description
	}
	if u.DeviceId != nil {
		fields["DeviceId"] = *u.DeviceId
	}
	if u.UnitWeight != nil {
		fields["UnitWeight"] = *u.UnitWeight
	}
	if u.Stock != nil {
		fields["Stock"] = *u.Stock
	}
	if u.Threshold != nil {
		fields["Threshold"] = *u.Threshold
	}
	if u.StockOut != nil {
		fields["StockOut"] = *u.StockOut
	}
	if u.Consumption != nil {
		fields["Consumption"] = *u.Consumption
	}
	if u.Status != nil {
		fields["Status"] = *u.Status
	}
	return fields
}

// InventoryDetail is an inventory row with its assigned device's live
// telemetry embedded. Device is null when no device is assigned or the
// reference is dangling.
type InventoryDetail struct {
	InventoryId uint           `json:"InventoryId"`
	ItemCode    string         `json:"ItemCode"`
	ItemName    string         `json:"ItemName"`
	Category    string         `json:"Category"`
	Description string         `json:"Description"`
	Device      *DeviceSummary `json:"Device"`
	UnitWeight  float64        `json:"UnitWeight"`
	Stock       float64        `json:"Stock"`
	Threshold   float64        `json:"Threshold"`
	StockOut    float64        `json:"StockOut"`
	Consumption float64        `json:"Consumption"`
	Status      string         `json:"Status"`
	CreatedAt   time.Time      `json:"CreatedAt"`
	UpdatedAt   time.Time      `json:"UpdatedAt"`
}

// Detail joins the inventory row with an optional device projection
func (i Inventory) Detail(device *DeviceSummary) InventoryDetail {
	return InventoryDetail{
		InventoryId: i.InventoryId,
		ItemCode:    i.ItemCode,
		ItemName:    i.ItemName,
		Category:    i.Category,
		Description: i.Description,
		Device:      device,
		UnitWeight:  i.UnitWeight,
		Stock:       i.Stock,
		Threshold:   i.Threshold,
		StockOut:    i.StockOut,
		Consumption: i.Consumption,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// InventoryList is the payload for inventory listings with aggregates
type InventoryList struct {
	TotalItems    int               `json:"TotalItems"`
	LowStock      int               `json:"LowStock"`
	OutOfStock    int               `json:"OutOfStock"`
	LinkedDevices int               `json:"LinkedDevices"`
	InventoryData []InventoryDetail `json:"InventoryData"`
}

// StockUpdate sets the stock quantity directly. Pointer so zero is a
// valid quantity; only an absent field is rejected.
type StockUpdate struct {
	Stock *float64 `json:"Stock" binding:"required"`
}

// DeviceAssign links an inventory row to a device
type DeviceAssign struct {
	DeviceId uint `json:"DeviceId" binding:"required"`
}
