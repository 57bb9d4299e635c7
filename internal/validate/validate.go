// Package validate checks and sanitizes user-supplied input before it
// reaches the store.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid reports malformed input.
var ErrInvalid = errors.New("invalid input")

// stripped lists the characters removed from search queries. Defensive
// sanitization, not a security boundary.
const stripped = `<>"/\&;`

// Query trims and sanitizes a search query. Queries shorter than two
// characters after trimming are rejected.
func Query(query string) (string, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return "", fmt.Errorf("query must be at least 2 characters: %w", ErrInvalid)
	}

	var b strings.Builder
	for _, r := range query {
		if !strings.ContainsRune(stripped, r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// ID checks that an identifier is positive.
func ID(id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive: %w", ErrInvalid)
	}
	return id, nil
}

// Stock checks that a stock count or threshold is non-negative.
func Stock(stock int) (int, error) {
	if stock < 0 {
		return 0, fmt.Errorf("stock cannot be negative: %w", ErrInvalid)
	}
	return stock, nil
}
