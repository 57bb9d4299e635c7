package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"phonestock/internal/model"
)

// SyncPolicy controls how a batch reacts to a malformed source row.
type SyncPolicy int

const (
	// SyncRejectBatch aborts the whole batch on the first bad row; nothing
	// is applied. This is the default: a partially applied import drifts
	// the catalog into a state a re-run cannot easily detect.
	SyncRejectBatch SyncPolicy = iota

	// SyncSkipBadRows applies the good rows and drops the bad ones.
	SyncSkipBadRows
)

// SyncDevices reconciles spreadsheet rows into the device catalog. Each row
// is resolved by IMEI: created if absent, otherwise every catalog field is
// overwritten from the source, unconditionally rather than merged. The
// spreadsheet is the system of record for catalog attributes. Returns the
// number of rows applied.
func SyncDevices(ctx context.Context, db *sql.DB, rows []model.DeviceRow, policy SyncPolicy) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	applied := 0
	for i, row := range rows {
		parsed, err := parseRow(row)
		if err != nil {
			if policy == SyncSkipBadRows {
				continue
			}
			return 0, fmt.Errorf("row %d: %v: %w", i+1, err, ErrSync)
		}

		// The source may reference shops that do not exist yet; create
		// placeholders so the foreign key holds.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO shops (id, name) VALUES (?, 'Shop ' || ?)`,
			parsed.ShopID, parsed.ShopID,
		); err != nil {
			return 0, fmt.Errorf("row %d: ensuring shop %d: %w", i+1, parsed.ShopID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO devices (imei, serial_number, model, ram, storage,
			        network, color, price, condition, status, shop_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(imei) DO UPDATE SET
			        serial_number = excluded.serial_number,
			        model = excluded.model,
			        ram = excluded.ram,
			        storage = excluded.storage,
			        network = excluded.network,
			        color = excluded.color,
			        price = excluded.price,
			        condition = excluded.condition,
			        status = excluded.status,
			        shop_id = excluded.shop_id,
			        updated_at = CURRENT_TIMESTAMP`,
			parsed.IMEI, parsed.SerialNumber, parsed.Model, parsed.RAM,
			parsed.Storage, parsed.Network, parsed.Color, parsed.Price,
			parsed.Condition, parsed.Status, parsed.ShopID,
		); err != nil {
			return 0, fmt.Errorf("row %d: upserting device %s: %w", i+1, parsed.IMEI, err)
		}

		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sync: %w", err)
	}

	return applied, nil
}

type parsedRow struct {
	IMEI, SerialNumber, Model, RAM, Storage, Network, Color string
	Condition, Status                                       string
	Price                                                   float64
	ShopID                                                  int64
}

// parseRow validates and converts a raw sheet row. IMEI, Model and a
// numeric, non-negative Price are required; Condition, Status and Shop_ID
// default like the source format does.
func parseRow(row model.DeviceRow) (*parsedRow, error) {
	p := &parsedRow{
		IMEI:         strings.TrimSpace(row.IMEI),
		SerialNumber: strings.TrimSpace(row.SerialNumber),
		Model:        strings.TrimSpace(row.Model),
		RAM:          strings.TrimSpace(row.RAM),
		Storage:      strings.TrimSpace(row.Storage),
		Network:      strings.TrimSpace(row.Network),
		Color:        strings.TrimSpace(row.Color),
		Condition:    strings.TrimSpace(row.Condition),
		Status:       strings.TrimSpace(row.Status),
	}

	if p.IMEI == "" {
		return nil, fmt.Errorf("missing IMEI")
	}
	if p.Model == "" {
		return nil, fmt.Errorf("missing Model")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row.Price), 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric Price %q", row.Price)
	}
	if price < 0 {
		return nil, fmt.Errorf("negative Price %v", price)
	}
	p.Price = price

	if p.Condition == "" {
		p.Condition = model.ConditionNew
	}
	switch p.Condition {
	case model.ConditionNew, model.ConditionUsed, model.ConditionRefurbished:
	default:
		return nil, fmt.Errorf("unknown Condition %q", p.Condition)
	}

	if p.Status == "" {
		p.Status = model.StatusInStock
	}
	switch p.Status {
	case model.StatusInStock, model.StatusSold, model.StatusReturned:
	default:
		return nil, fmt.Errorf("unknown Status %q", p.Status)
	}

	shopID := int64(1)
	if s := strings.TrimSpace(row.ShopID); s != "" {
		shopID, err = strconv.ParseInt(s, 10, 64)
		if err != nil || shopID <= 0 {
			return nil, fmt.Errorf("invalid Shop_ID %q", row.ShopID)
		}
	}
	p.ShopID = shopID

	return p, nil
}
