// Package store implements the canonical inventory store and the guarded
// mutations on it. All functions take a context and the database handle;
// multi-step mutations run inside a single SQLite transaction so that the
// device state change and its satellite record become visible together or
// not at all.
package store

import (
	"errors"
	"time"
)

// Business-rule constants.
const (
	// WarrantyDays is the default warranty stamped on a sale.
	WarrantyDays = 365

	// ReturnWindow is how long after a sale a return may be filed,
	// inclusive at the boundary.
	ReturnWindow = 3 * 24 * time.Hour

	// UsedMarkup is the fixed multiplier applied to a used device's intake
	// price to set its resale price.
	UsedMarkup = 1.3

	// DefaultLowStockThreshold is the stock level at or below which a
	// count-tracked product is reported as low.
	DefaultLowStockThreshold = 5
)

// Typed failures. Callers distinguish these with errors.Is; the web and chat
// layers translate them into user-facing responses.
var (
	// ErrNotFound reports an entity lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState reports an operation that is not legal for the
	// entity's current state, e.g. selling a device that is not in stock.
	ErrInvalidState = errors.New("invalid state")

	// ErrReturnExpired reports a return filed after the return window.
	ErrReturnExpired = errors.New("return window expired")

	// ErrTransfer reports a failed shop transfer.
	ErrTransfer = errors.New("transfer failed")

	// ErrSync reports a malformed source row during a spreadsheet import.
	ErrSync = errors.New("sync failed")
)

// timeNow is swapped out by tests that exercise the return-window boundary.
var timeNow = time.Now
