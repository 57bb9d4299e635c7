package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phonestock/internal/model"
)

// ProcessReturn files a return against a purchase. The purchase must exist
// (ErrNotFound) and be within the return window, inclusive at the boundary
// (ErrReturnExpired otherwise). The refund amount snapshots the original
// sale price; the device transitions to returned in the same transaction.
func ProcessReturn(ctx context.Context, db *sql.DB, purchaseID int64, reason, condition, processedBy, notes string) (*model.Return, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var imei string
	var salePrice float64
	var saleDate time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT device_imei, purchase_price, purchase_date FROM purchases WHERE id = ?`,
		purchaseID,
	).Scan(&imei, &salePrice, &saleDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purchase %d: %w", purchaseID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checking purchase: %w", err)
	}

	now := timeNow()
	if now.Sub(saleDate) > ReturnWindow {
		return nil, fmt.Errorf("purchase %d sold at %s: %w", purchaseID,
			saleDate.Format(time.RFC3339), ErrReturnExpired)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE devices SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE imei = ?`,
		model.StatusReturned, imei,
	); err != nil {
		return nil, fmt.Errorf("updating device status: %w", err)
	}

	insert, err := tx.ExecContext(ctx,
		`INSERT INTO returns (purchase_id, return_date, reason, condition,
		        refund_amount, status, processed_by, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		purchaseID, now, reason, condition, salePrice, model.ReturnPending,
		processedBy, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("recording return: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing return: %w", err)
	}

	returnID, _ := insert.LastInsertId()
	return GetReturn(ctx, db, returnID)
}

// GetReturn returns a return record by ID, or ErrNotFound.
func GetReturn(ctx context.Context, db *sql.DB, id int64) (*model.Return, error) {
	ret := &model.Return{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, purchase_id, return_date, reason, condition, refund_amount,
		        status, processed_by, notes
		 FROM returns WHERE id = ?`, id,
	).Scan(&ret.ID, &ret.PurchaseID, &ret.ReturnDate, &ret.Reason, &ret.Condition,
		&ret.RefundAmount, &ret.Status, &ret.ProcessedBy, &notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("return %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting return: %w", err)
	}
	ret.Notes = notes.String
	return ret, nil
}

// ListReturnsByPurchase returns all returns filed against a purchase.
func ListReturnsByPurchase(ctx context.Context, db *sql.DB, purchaseID int64) ([]model.Return, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, purchase_id, return_date, reason, condition, refund_amount,
		        status, processed_by, notes
		 FROM returns WHERE purchase_id = ? ORDER BY return_date`, purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing returns: %w", err)
	}
	defer rows.Close()

	var returns []model.Return
	for rows.Next() {
		var ret model.Return
		var notes sql.NullString
		if err := rows.Scan(&ret.ID, &ret.PurchaseID, &ret.ReturnDate, &ret.Reason,
			&ret.Condition, &ret.RefundAmount, &ret.Status, &ret.ProcessedBy,
			&notes); err != nil {
			return nil, fmt.Errorf("scanning return: %w", err)
		}
		ret.Notes = notes.String
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}
