package store

import (
	"context"
	"errors"
	"testing"

	"phonestock/internal/db"
	"phonestock/internal/validate"
)

func TestCreateAndGetProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, err := CreateProduct(ctx, database, "USB-C cable", 9.99, 40)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Name != "USB-C cable" || product.Stock != 40 {
		t.Errorf("unexpected product: %+v", product)
	}

	if _, err := CreateProduct(ctx, database, "bad", 1, -1); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("expected ErrInvalid for negative stock, got %v", err)
	}

	if _, err := GetProduct(ctx, database, 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLowStockProducts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateProduct(ctx, database, "Screen protector", 14.99, 2)
	CreateProduct(ctx, database, "USB-C cable", 9.99, 5)
	CreateProduct(ctx, database, "Charger", 24.99, 30)

	// Threshold is inclusive.
	products, err := LowStockProducts(ctx, database, DefaultLowStockThreshold)
	if err != nil {
		t.Fatalf("LowStockProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(products))
	}
	if products[0].Name != "Screen protector" {
		t.Errorf("expected lowest stock first, got %q", products[0].Name)
	}

	if _, err := LowStockProducts(ctx, database, -1); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("expected ErrInvalid for negative threshold, got %v", err)
	}
}

func TestUpdateProductField(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := CreateProduct(ctx, database, "USB-C cable", 9.99, 40)

	ok, err := UpdateProductField(ctx, database, product.ID, "stock", 35)
	if err != nil {
		t.Fatalf("UpdateProductField: %v", err)
	}
	if !ok {
		t.Fatal("expected update to report success")
	}

	updated, _ := GetProduct(ctx, database, product.ID)
	if updated.Stock != 35 {
		t.Errorf("expected stock 35, got %d", updated.Stock)
	}

	// Unknown fields and missing products report false, not an error.
	ok, err = UpdateProductField(ctx, database, product.ID, "password_hash", "x")
	if err != nil || ok {
		t.Errorf("expected false for non-whitelisted field, got ok=%v err=%v", ok, err)
	}
	ok, err = UpdateProductField(ctx, database, 12345, "stock", 1)
	if err != nil || ok {
		t.Errorf("expected false for unknown product, got ok=%v err=%v", ok, err)
	}
}
