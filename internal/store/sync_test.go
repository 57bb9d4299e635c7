package store

import (
	"context"
	"errors"
	"testing"

	"phonestock/internal/db"
	"phonestock/internal/model"
)

func TestSyncDevicesCreatesAndOverwrites(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rows := []model.DeviceRow{
		{IMEI: "111111111111111", Model: "Apple iPhone 13", Price: "799.99", ShopID: "1"},
		{IMEI: "222222222222222", Model: "Samsung Galaxy S22", Price: "699", Condition: "refurbished", ShopID: "1"},
	}

	applied, err := SyncDevices(ctx, database, rows, SyncRejectBatch)
	if err != nil {
		t.Fatalf("SyncDevices: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 rows applied, got %d", applied)
	}

	device, err := GetDevice(ctx, database, "111111111111111")
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if device.Price != 799.99 {
		t.Errorf("expected price 799.99, got %v", device.Price)
	}

	// Synced rows are immediately searchable.
	found, err := SearchDevices(ctx, database, "galaxy", 0, "")
	if err != nil {
		t.Fatalf("SearchDevices: %v", err)
	}
	if len(found) != 1 || found[0].IMEI != "222222222222222" {
		t.Errorf("expected the synced Galaxy, got %v", found)
	}

	// A second sync is an overwrite by IMEI, not a duplicate insert.
	rows[0].Price = "749.99"
	if _, err := SyncDevices(ctx, database, rows, SyncRejectBatch); err != nil {
		t.Fatalf("second SyncDevices: %v", err)
	}

	devices, _ := ListDevices(ctx, database, 0)
	if len(devices) != 2 {
		t.Errorf("expected 2 devices after re-sync, got %d", len(devices))
	}
	device, _ = GetDevice(ctx, database, "111111111111111")
	if device.Price != 749.99 {
		t.Errorf("expected overwritten price 749.99, got %v", device.Price)
	}
}

func TestSyncDevicesDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rows := []model.DeviceRow{
		{IMEI: "333333333333333", Model: "Xiaomi 13", Price: "450"},
	}
	if _, err := SyncDevices(ctx, database, rows, SyncRejectBatch); err != nil {
		t.Fatalf("SyncDevices: %v", err)
	}

	device, err := GetDevice(ctx, database, "333333333333333")
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if device.Condition != model.ConditionNew {
		t.Errorf("expected default condition 'new', got %q", device.Condition)
	}
	if device.Status != model.StatusInStock {
		t.Errorf("expected default status 'in_stock', got %q", device.Status)
	}
	if device.ShopID != 1 {
		t.Errorf("expected default shop 1, got %d", device.ShopID)
	}
}

func TestSyncDevicesRejectBatch(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rows := []model.DeviceRow{
		{IMEI: "111111111111111", Model: "Apple iPhone 13", Price: "799"},
		{IMEI: "222222222222222", Model: "", Price: "699"},
		{IMEI: "333333333333333", Model: "Xiaomi 13", Price: "450"},
	}

	_, err := SyncDevices(ctx, database, rows, SyncRejectBatch)
	if !errors.Is(err, ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}

	// Nothing from the batch may land, not even the rows before the bad one.
	devices, _ := ListDevices(ctx, database, 0)
	if len(devices) != 0 {
		t.Errorf("expected 0 devices after rejected batch, got %d", len(devices))
	}
}

func TestSyncDevicesSkipBadRows(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rows := []model.DeviceRow{
		{IMEI: "111111111111111", Model: "Apple iPhone 13", Price: "799"},
		{IMEI: "222222222222222", Model: "Samsung Galaxy S22", Price: "not a number"},
		{IMEI: "", Model: "Xiaomi 13", Price: "450"},
		{IMEI: "444444444444444", Model: "Xiaomi 13", Price: "-450"},
		{IMEI: "555555555555555", Model: "Google Pixel 8", Price: "650"},
	}

	applied, err := SyncDevices(ctx, database, rows, SyncSkipBadRows)
	if err != nil {
		t.Fatalf("SyncDevices: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 rows applied, got %d", applied)
	}

	devices, _ := ListDevices(ctx, database, 0)
	if len(devices) != 2 {
		t.Errorf("expected 2 devices, got %d", len(devices))
	}
}

func TestSyncDevicesCreatesPlaceholderShops(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rows := []model.DeviceRow{
		{IMEI: "111111111111111", Model: "Apple iPhone 13", Price: "799", ShopID: "7"},
	}
	if _, err := SyncDevices(ctx, database, rows, SyncRejectBatch); err != nil {
		t.Fatalf("SyncDevices: %v", err)
	}

	shop, err := GetShop(ctx, database, 7)
	if err != nil {
		t.Fatalf("GetShop: %v", err)
	}
	if shop == nil {
		t.Fatal("expected placeholder shop 7 to exist")
	}
}
