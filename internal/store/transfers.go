package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
)

// TransferDevice relocates a device from one shop to another. The device
// must currently sit at the source shop, else ErrTransfer. A transfer
// changes only the shop, never the commercial status; the append-only
// transfer row is created completed since transfers are synchronous.
func TransferDevice(ctx context.Context, db *sql.DB, imei string, fromShopID, toShopID, initiatedBy int64, notes string) (*model.Transfer, error) {
	if fromShopID == toShopID {
		return nil, fmt.Errorf("source and destination shop are the same: %w", ErrTransfer)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE devices SET shop_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE imei = ? AND shop_id = ?`,
		toShopID, imei, fromShopID,
	)
	if err != nil {
		return nil, fmt.Errorf("relocating device: %w", err)
	}
	if n, _ := result.RowsAffected(); n != 1 {
		return nil, fmt.Errorf("device %s not found in source shop %d: %w", imei, fromShopID, ErrTransfer)
	}

	now := timeNow()
	insert, err := tx.ExecContext(ctx,
		`INSERT INTO transfers (device_imei, from_shop_id, to_shop_id, status,
		        initiated_by, transfer_date, completed_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		imei, fromShopID, toShopID, model.TransferCompleted, initiatedBy,
		now, now, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("recording transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transfer: %w", err)
	}

	transferID, _ := insert.LastInsertId()
	return GetTransfer(ctx, db, transferID)
}

// GetTransfer returns a transfer by ID, or ErrNotFound.
func GetTransfer(ctx context.Context, db *sql.DB, id int64) (*model.Transfer, error) {
	t := &model.Transfer{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT t.id, t.device_imei, t.from_shop_id, t.to_shop_id, t.status,
		        t.initiated_by, t.transfer_date, t.completed_date, t.notes,
		        d.model AS device_model, fs.name AS from_shop_name, ts.name AS to_shop_name
		 FROM transfers t
		 JOIN devices d ON d.imei = t.device_imei
		 JOIN shops fs ON fs.id = t.from_shop_id
		 JOIN shops ts ON ts.id = t.to_shop_id
		 WHERE t.id = ?`, id,
	).Scan(&t.ID, &t.DeviceIMEI, &t.FromShopID, &t.ToShopID, &t.Status,
		&t.InitiatedBy, &t.TransferDate, &t.CompletedDate, &notes,
		&t.DeviceModel, &t.FromShopName, &t.ToShopName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transfer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting transfer: %w", err)
	}
	t.Notes = notes.String
	return t, nil
}

// ListTransfers returns transfers newest first, optionally filtered by
// device or by shop (matching either side).
func ListTransfers(ctx context.Context, db *sql.DB, imei string, shopID int64) ([]model.Transfer, error) {
	query := `SELECT t.id, t.device_imei, t.from_shop_id, t.to_shop_id, t.status,
	                 t.initiated_by, t.transfer_date, t.completed_date, t.notes,
	                 d.model AS device_model, fs.name AS from_shop_name, ts.name AS to_shop_name
	          FROM transfers t
	          JOIN devices d ON d.imei = t.device_imei
	          JOIN shops fs ON fs.id = t.from_shop_id
	          JOIN shops ts ON ts.id = t.to_shop_id
	          WHERE 1=1`
	var args []any

	if imei != "" {
		query += ` AND t.device_imei = ?`
		args = append(args, imei)
	}
	if shopID > 0 {
		query += ` AND (t.from_shop_id = ? OR t.to_shop_id = ?)`
		args = append(args, shopID, shopID)
	}

	query += ` ORDER BY t.transfer_date DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var transfers []model.Transfer
	for rows.Next() {
		var t model.Transfer
		var notes sql.NullString
		if err := rows.Scan(&t.ID, &t.DeviceIMEI, &t.FromShopID, &t.ToShopID,
			&t.Status, &t.InitiatedBy, &t.TransferDate, &t.CompletedDate, &notes,
			&t.DeviceModel, &t.FromShopName, &t.ToShopName); err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}
		t.Notes = notes.String
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
