package model

import "time"

// Product is a count-tracked catalog variant (accessories, bulk SKUs), the
// second inventory sub-model next to per-IMEI devices.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}
