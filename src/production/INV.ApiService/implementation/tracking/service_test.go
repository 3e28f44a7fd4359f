package tracking_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	tracking "github.com/Ajithkumar-developer/Inventory/src/production/INV.ApiService/implementation/tracking"
	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	models "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models"
	api "github.com/Ajithkumar-developer/Inventory/src/production/INV.Models/api"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

func newTestManagers(t *testing.T) (*tracking.WeightManager, *tracking.ActivityManager, *repository.Gateway) {
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
	repo := repository.NewTrackingRepository(gw)
	log := logger.GetGlobalLogger()
	return tracking.NewWeightManager(gw, repo, log), tracking.NewActivityManager(gw, repo, log), gw
}

func TestWeightManagerCreateAndList(t *testing.T) {
	weights, _, _ := newTestManagers(t)
	ctx := context.Background()

	for _, w := range []float64{1000, 950, 900} {
		if resp := weights.Create(ctx, 1, w); !resp.Success {
			t.Fatalf("create failed: %s", resp.Message)
		}
	}

	resp := weights.List(ctx, 1, "")
	if !resp.Success {
		t.Fatalf("list failed: %s", resp.Message)
	}
	rows, ok := resp.Data.([]models.WeightTracking)
	if !ok {
		t.Fatalf("unexpected payload type %T", resp.Data)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Newest first
	if rows[0].Weight != 900 {
		t.Errorf("expected most recent weight 900 first, got %v", rows[0].Weight)
	}
}

func TestWeightManagerListWindow(t *testing.T) {
	weights, _, gw := newTestManagers(t)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := []models.WeightTracking{
		{DeviceId: 1, Weight: 800, DateTime: now.AddDate(0, -2, 0)},
		{DeviceId: 1, Weight: 900, DateTime: now.AddDate(0, 0, -3)},
		{DeviceId: 1, Weight: 950, DateTime: now.Add(-2 * time.Hour)},
	}
	for i := range rows {
		if err := repository.Create(ctx, gw, &rows[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	resp := weights.List(ctx, 1, models.WindowDay)
	if !resp.Success {
		t.Fatalf("list failed: %s", resp.Message)
	}
	got := resp.Data.([]models.WeightTracking)
	if len(got) != 1 || got[0].Weight != 950 {
		t.Errorf("expected only the reading from the last day, got %v", got)
	}

	resp = weights.List(ctx, 1, models.WindowWeek)
	got = resp.Data.([]models.WeightTracking)
	if len(got) != 2 {
		t.Errorf("expected 2 readings in the last week, got %d", len(got))
	}

	// Unknown filter means no window
	resp = weights.List(ctx, 1, "year")
	got = resp.Data.([]models.WeightTracking)
	if len(got) != 3 {
		t.Errorf("expected all 3 readings for unknown filter, got %d", len(got))
	}
}

func TestWeightManagerDeleteByDeviceLeavesOthers(t *testing.T) {
	weights, _, _ := newTestManagers(t)
	ctx := context.Background()

	weights.Create(ctx, 1, 100)
	weights.Create(ctx, 1, 90)
	weights.Create(ctx, 2, 500)

	resp := weights.DeleteByDevice(ctx, 1)
	if !resp.Success {
		t.Fatalf("delete failed: %s", resp.Message)
	}
	if deleted := resp.Data.(api.Deleted); deleted.Deleted != 2 {
		t.Errorf("expected 2 rows deleted, got %d", deleted.Deleted)
	}

	other := weights.List(ctx, 2, "")
	if rows := other.Data.([]models.WeightTracking); len(rows) != 1 {
		t.Errorf("expected device 2 history untouched, got %d rows", len(rows))
	}
}

func TestWeightManagerClear(t *testing.T) {
	weights, _, _ := newTestManagers(t)
	ctx := context.Background()

	weights.Create(ctx, 1, 100)
	weights.Create(ctx, 2, 500)

	resp := weights.Clear(ctx)
	if !resp.Success {
		t.Fatalf("clear failed: %s", resp.Message)
	}
	if deleted := resp.Data.(api.Deleted); deleted.Deleted != 2 {
		t.Errorf("expected 2 rows cleared, got %d", deleted.Deleted)
	}
}

func TestActivityManagerCreateAndList(t *testing.T) {
	_, activity, _ := newTestManagers(t)
	ctx := context.Background()

	if resp := activity.Create(ctx, 1, "Device Synced"); !resp.Success {
		t.Fatalf("create failed: %s", resp.Message)
	}
	if resp := activity.Create(ctx, 1, "Battery updated to 80.0%"); !resp.Success {
		t.Fatalf("create failed: %s", resp.Message)
	}

	resp := activity.List(ctx, 1, "")
	if !resp.Success {
		t.Fatalf("list failed: %s", resp.Message)
	}
	rows := resp.Data.([]models.ActivityLog)
	if len(rows) != 2 {
		t.Errorf("expected 2 entries, got %d", len(rows))
	}
}

func TestActivityManagerDeleteAndClear(t *testing.T) {
	_, activity, _ := newTestManagers(t)
	ctx := context.Background()

	activity.Create(ctx, 1, "a")
	activity.Create(ctx, 2, "b")

	resp := activity.DeleteByDevice(ctx, 1)
	if deleted := resp.Data.(api.Deleted); deleted.Deleted != 1 {
		t.Errorf("expected 1 entry deleted, got %d", deleted.Deleted)
	}

	resp = activity.Clear(ctx)
	if deleted := resp.Data.(api.Deleted); deleted.Deleted != 1 {
		t.Errorf("expected 1 entry cleared, got %d", deleted.Deleted)
	}
}
