package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
	"phonestock/internal/validate"
)

// productFields maps patchable field names to their columns. Anything not
// listed here is rejected by UpdateProductField.
var productFields = map[string]string{
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

// CreateProduct creates a count-tracked product variant.
func CreateProduct(ctx context.Context, db *sql.DB, name string, price float64, stock int) (*model.Product, error) {
	if _, err := validate.Stock(stock); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`,
		name, price, stock,
	)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	return GetProduct(ctx, db, id)
}

// GetProduct returns a product by ID, or ErrNotFound.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	p := &model.Product{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, price, stock, updated_at FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// LowStockProducts returns products whose stock is at or below the
// threshold. The threshold must be non-negative.
func LowStockProducts(ctx context.Context, db *sql.DB, threshold int) ([]model.Product, error) {
	threshold, err := validate.Stock(threshold)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, price, stock, updated_at FROM products
		 WHERE stock <= ? ORDER BY stock, id`, threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("listing low stock products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProductField patches a single whitelisted field of a product.
// Returns false, not an error, for an unknown field name or a missing id;
// callers must check the boolean.
func UpdateProductField(ctx context.Context, db *sql.DB, id int64, field string, value any) (bool, error) {
	column, ok := productFields[field]
	if !ok {
		return false, nil
	}

	result, err := db.ExecContext(ctx,
		`UPDATE products SET `+column+` = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		value, id,
	)
	if err != nil {
		return false, fmt.Errorf("updating product field %s: %w", field, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking update result: %w", err)
	}
	return n > 0, nil
}
