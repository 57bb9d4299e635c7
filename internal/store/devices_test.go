package store

import (
	"context"
	"errors"
	"testing"

	"phonestock/internal/db"
	"phonestock/internal/model"
	"phonestock/internal/validate"
)

func TestGetDeviceNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := GetDevice(context.Background(), database, "000000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchDevices(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop1 := seedShop(t, database, "Main")
	shop2 := seedShop(t, database, "Branch")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop1)
	seedDevice(t, database, "222222222222222", "Apple iPhone 14", 999, shop2)
	seedDevice(t, database, "333333333333333", "Samsung Galaxy S22", 699, shop1)

	// Case-insensitive substring over the textual fields.
	devices, err := SearchDevices(ctx, database, "iphone", 0, "")
	if err != nil {
		t.Fatalf("SearchDevices: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(devices))
	}
	if devices[0].IMEI != "111111111111111" {
		t.Errorf("expected insertion order, got %s first", devices[0].IMEI)
	}

	// IMEI is searchable too.
	devices, _ = SearchDevices(ctx, database, "333333333333333", 0, "")
	if len(devices) != 1 || devices[0].Model != "Samsung Galaxy S22" {
		t.Errorf("expected IMEI match for the Galaxy, got %v", devices)
	}

	// Shop filter.
	devices, _ = SearchDevices(ctx, database, "iphone", shop2, "")
	if len(devices) != 1 || devices[0].IMEI != "222222222222222" {
		t.Errorf("expected only the shop 2 iPhone, got %v", devices)
	}

	// Condition filter.
	devices, _ = SearchDevices(ctx, database, "iphone", 0, model.ConditionUsed)
	if len(devices) != 0 {
		t.Errorf("expected no used iPhones, got %d", len(devices))
	}
}

func TestSearchDevicesQueryTooShort(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := SearchDevices(context.Background(), database, " a ", 0, "")
	if !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("expected ErrInvalid for one-character query, got %v", err)
	}
}

func TestSearchDevicesStripsCharacters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop)

	devices, err := SearchDevices(ctx, database, `iph<on>e`, 0, "")
	if err != nil {
		t.Fatalf("SearchDevices: %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("expected sanitized query to still match, got %d devices", len(devices))
	}
}

func TestDevicePhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop)

	if err := SetDevicePhoto(ctx, database, "111111111111111", []byte("jpeg bytes"), "image/jpeg"); err != nil {
		t.Fatalf("SetDevicePhoto: %v", err)
	}

	data, mime, err := GetDevicePhoto(ctx, database, "111111111111111")
	if err != nil {
		t.Fatalf("GetDevicePhoto: %v", err)
	}
	if string(data) != "jpeg bytes" || mime != "image/jpeg" {
		t.Errorf("unexpected photo round trip: %q %q", data, mime)
	}

	if err := SetDevicePhoto(ctx, database, "000000000000000", nil, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown device, got %v", err)
	}
}

func TestGetDeviceHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop1 := seedShop(t, database, "Main")
	shop2 := seedShop(t, database, "Branch")

	seller := model.SellerInfo{Name: "Ana", Phone: "041000000"}
	_, _, err := IntakeUsedDevice(ctx, database, "444444444444444", "SN-1",
		"Apple iPhone 12", seller, model.ConditionUsed, 200, shop1, "admin", "")
	if err != nil {
		t.Fatalf("IntakeUsedDevice: %v", err)
	}

	if _, err := TransferDevice(ctx, database, "444444444444444", shop1, shop2, 1, ""); err != nil {
		t.Fatalf("TransferDevice: %v", err)
	}

	purchase, err := RecordSale(ctx, database, "444444444444444", "Bojan", "", shop2, "cash", "")
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if _, err := ProcessReturn(ctx, database, purchase.ID, "dead pixel", "opened", "admin", ""); err != nil {
		t.Fatalf("ProcessReturn: %v", err)
	}

	history, err := GetDeviceHistory(ctx, database, "444444444444444")
	if err != nil {
		t.Fatalf("GetDeviceHistory: %v", err)
	}
	if len(history.Intakes) != 1 {
		t.Errorf("expected 1 intake, got %d", len(history.Intakes))
	}
	if len(history.Transfers) != 1 {
		t.Errorf("expected 1 transfer, got %d", len(history.Transfers))
	}
	if len(history.Purchases) != 1 {
		t.Errorf("expected 1 purchase, got %d", len(history.Purchases))
	}
	if len(history.Returns) != 1 {
		t.Errorf("expected 1 return, got %d", len(history.Returns))
	}
	if history.Device.Status != model.StatusReturned {
		t.Errorf("expected device status 'returned', got %q", history.Device.Status)
	}
}
