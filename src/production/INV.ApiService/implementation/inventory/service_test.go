package inventory_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	inventory "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/inventory"
	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

func newTestService(t *testing.T) (*inventory.Service, *repository.Gateway) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Device{}, &models.Inventory{}, &models.WeightTracking{}, &models.ActivityLog{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	gw := repository.NewGateway(db, 5*time.Second)
	return inventory.NewService(gw, logger.GetGlobalLogger()), gw
}

func createItem(t *testing.T, svc *inventory.Service, req models.InventoryCreate) models.Inventory {
	t.Helper()
	resp := svc.CreateInventory(context.Background(), req)
	if !resp.Success {
		t.Fatalf("create inventory failed: %s", resp.Message)
	}
	item, ok := resp.Data.(models.Inventory)
	if !ok {
		t.Fatalf("unexpected create payload type %T", resp.Data)
	}
	return item
}

func seedDevice(t *testing.T, gw *repository.Gateway, d models.Device) uint {
	t.Helper()
	if err := repository.Create(context.Background(), gw, &d); err != nil {
		t.Fatalf("seed device failed: %v", err)
	}
	return d.DeviceId
}

func TestCreateInventoryDefaultsStatus(t *testing.T) {
	svc, _ := newTestService(t)

	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice"})
	if item.Status != models.StockStatusNormal {
		t.Errorf("expected default status %q, got %q", models.StockStatusNormal, item.Status)
	}
}

func TestGetInventoryEmbedsDevice(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	deviceID := seedDevice(t, gw, models.Device{DeviceName: "Scale", Weight: 950, LastReading: 1000, LocationName: "Pantry"})
	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice", DeviceId: &deviceID})

	resp := svc.GetInventory(ctx, item.InventoryId)
	if !resp.Success {
		t.Fatalf("get failed: %s", resp.Message)
	}
	detail, ok := resp.Data.(models.InventoryDetail)
	if !ok {
		t.Fatalf("unexpected payload type %T", resp.Data)
	}
	if detail.Device == nil {
		t.Fatal("expected embedded device projection")
	}
	if detail.Device.DeviceName != "Scale" || detail.Device.Weight != 950 || detail.Device.LastReading != 1000 {
		t.Errorf("unexpected device projection: %+v", detail.Device)
	}
}

func TestGetInventoryDanglingDeviceIsNull(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing := uint(999)
	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice", DeviceId: &missing})

	resp := svc.GetInventory(ctx, item.InventoryId)
	if !resp.Success {
		t.Fatalf("get failed: %s", resp.Message)
	}
	detail := resp.Data.(models.InventoryDetail)
	if detail.Device != nil {
		t.Errorf("expected null device for dangling reference, got %+v", detail.Device)
	}
}

func TestGetInventoryNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	resp := svc.GetInventory(context.Background(), 999)
	if resp.Success || resp.Message != "Inventory not found" {
		t.Errorf("expected 'Inventory not found' failure, got %+v", resp)
	}
}

func TestListInventoryAggregates(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	deviceID := seedDevice(t, gw, models.Device{DeviceName: "Scale"})
	dangling := uint(999)

	createItem(t, svc, models.InventoryCreate{ItemName: "Rice", DeviceId: &deviceID, Status: models.StockStatusNormal})
	createItem(t, svc, models.InventoryCreate{ItemName: "Beans", Status: models.StockStatusLowStock})
	createItem(t, svc, models.InventoryCreate{ItemName: "Flour", DeviceId: &dangling, Status: models.StockStatusOutOfStock})

	resp := svc.ListInventory(ctx)
	if !resp.Success {
		t.Fatalf("list failed: %s", resp.Message)
	}
	list, ok := resp.Data.(models.InventoryList)
	if !ok {
		t.Fatalf("unexpected payload type %T", resp.Data)
	}

	if list.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", list.TotalItems)
	}
	if list.LowStock != 1 || list.OutOfStock != 1 {
		t.Errorf("expected 1 low-stock and 1 out-of-stock, got %d/%d", list.LowStock, list.OutOfStock)
	}
	// The dangling reference does not count as linked
	if list.LinkedDevices != 1 {
		t.Errorf("expected 1 linked device, got %d", list.LinkedDevices)
	}
	if len(list.InventoryData) != 3 {
		t.Errorf("expected 3 detail rows, got %d", len(list.InventoryData))
	}
}

func TestUpdateInventoryPartialMask(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice", Category: "Grains", Stock: 50})

	name := "Basmati Rice"
	resp := svc.UpdateInventory(ctx, item.InventoryId, models.InventoryUpdate{ItemName: &name})
	if !resp.Success {
		t.Fatalf("update failed: %s", resp.Message)
	}

	after, err := repository.ReadOne[models.Inventory](ctx, gw, repository.Filters{"InventoryId": item.InventoryId})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if after.ItemName != "Basmati Rice" {
		t.Errorf("expected renamed item, got %q", after.ItemName)
	}
	if after.Category != "Grains" || after.Stock != 50 {
		t.Errorf("expected untouched fields to survive, got %+v", after)
	}
}

func TestUpdateInventoryNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Rice"
	resp := svc.UpdateInventory(context.Background(), 999, models.InventoryUpdate{ItemName: &name})
	if resp.Success || resp.Message != "Inventory not found" {
		t.Errorf("expected 'Inventory not found' failure, got %+v", resp)
	}
}

func TestDeleteInventory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice"})

	if resp := svc.DeleteInventory(ctx, item.InventoryId); !resp.Success {
		t.Fatalf("delete failed: %s", resp.Message)
	}
	if resp := svc.DeleteInventory(ctx, item.InventoryId); resp.Success {
		t.Error("expected failure on second delete")
	}
}

func TestUpdateStockDoesNotReclassify(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	item := createItem(t, svc, models.InventoryCreate{
		ItemName: "Rice", Stock: 50, Threshold: 10, StockOut: 2, Status: models.StockStatusNormal,
	})

	stock := 5.0
	resp := svc.UpdateStock(ctx, item.InventoryId, models.StockUpdate{Stock: &stock})
	if !resp.Success {
		t.Fatalf("stock update failed: %s", resp.Message)
	}

	after, err := repository.ReadOne[models.Inventory](ctx, gw, repository.Filters{"InventoryId": item.InventoryId})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if after.Stock != 5 {
		t.Errorf("expected stock 5, got %v", after.Stock)
	}
	// Classification only happens on the weight-update path
	if after.Status != models.StockStatusNormal {
		t.Errorf("expected status unchanged, got %q", after.Status)
	}
}

func TestUpdateStockAcceptsZero(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice", Stock: 50})

	stock := 0.0
	resp := svc.UpdateStock(ctx, item.InventoryId, models.StockUpdate{Stock: &stock})
	if !resp.Success {
		t.Fatalf("zero-stock update failed: %s", resp.Message)
	}

	after, err := repository.ReadOne[models.Inventory](ctx, gw, repository.Filters{"InventoryId": item.InventoryId})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if after.Stock != 0 {
		t.Errorf("expected stock 0, got %v", after.Stock)
	}
}

func TestUpdateInventoryEmptyMaskIsAcknowledged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice"})

	resp := svc.UpdateInventory(ctx, item.InventoryId, models.InventoryUpdate{})
	if !resp.Success {
		t.Fatalf("expected empty mask to be acknowledged, got %s", resp.Message)
	}
}

func TestAssignDevice(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	deviceID := seedDevice(t, gw, models.Device{DeviceName: "Scale"})
	item := createItem(t, svc, models.InventoryCreate{ItemName: "Rice"})

	resp := svc.AssignDevice(ctx, item.InventoryId, models.DeviceAssign{DeviceId: deviceID})
	if !resp.Success {
		t.Fatalf("assign failed: %s", resp.Message)
	}

	after, err := repository.ReadOne[models.Inventory](ctx, gw, repository.Filters{"InventoryId": item.InventoryId})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if after.DeviceId == nil || *after.DeviceId != deviceID {
		t.Errorf("expected assigned device %d, got %v", deviceID, after.DeviceId)
	}
}

func TestGetByDevice(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	deviceID := seedDevice(t, gw, models.Device{DeviceName: "Scale"})
	createItem(t, svc, models.InventoryCreate{ItemName: "Rice", DeviceId: &deviceID})
	createItem(t, svc, models.InventoryCreate{ItemName: "Beans", DeviceId: &deviceID})
	createItem(t, svc, models.InventoryCreate{ItemName: "Flour"})

	resp := svc.GetByDevice(ctx, deviceID)
	if !resp.Success {
		t.Fatalf("get by device failed: %s", resp.Message)
	}
	items, ok := resp.Data.([]models.Inventory)
	if !ok {
		t.Fatalf("unexpected payload type %T", resp.Data)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items for device, got %d", len(items))
	}
}
