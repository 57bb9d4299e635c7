package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
)

// CreateShop creates a new shop location.
func CreateShop(ctx context.Context, db *sql.DB, name, location string) (*model.Shop, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO shops (name, location) VALUES (?, ?)`,
		name, location,
	)
	if err != nil {
		return nil, fmt.Errorf("creating shop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting shop id: %w", err)
	}

	return GetShop(ctx, db, id)
}

// GetShop returns a shop by ID, or nil when it does not exist.
func GetShop(ctx context.Context, db *sql.DB, id int64) (*model.Shop, error) {
	s := &model.Shop{}
	var location sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, location, is_active, created_at FROM shops WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &location, &s.IsActive, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shop: %w", err)
	}
	s.Location = location.String
	return s, nil
}

// ListShops returns all shops, optionally only active ones.
func ListShops(ctx context.Context, db *sql.DB, activeOnly bool) ([]model.Shop, error) {
	q := `SELECT id, name, location, is_active, created_at FROM shops`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing shops: %w", err)
	}
	defer rows.Close()

	var shops []model.Shop
	for rows.Next() {
		var s model.Shop
		var location sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &location, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning shop: %w", err)
		}
		s.Location = location.String
		shops = append(shops, s)
	}
	return shops, rows.Err()
}
