package validate

import (
	"errors"
	"testing"
)

func TestQuery(t *testing.T) {
	got, err := Query("  iPhone 13  ")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got != "iPhone 13" {
		t.Errorf("expected trimmed query, got %q", got)
	}

	got, err = Query(`iph<one>"/\&;`)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got != "iphone" {
		t.Errorf("expected stripped query %q, got %q", "iphone", got)
	}
}

func TestQueryTooShort(t *testing.T) {
	for _, q := range []string{"", "a", " a ", "\t\n"} {
		if _, err := Query(q); !errors.Is(err, ErrInvalid) {
			t.Errorf("Query(%q): expected ErrInvalid, got %v", q, err)
		}
	}
}

func TestID(t *testing.T) {
	if _, err := ID(1); err != nil {
		t.Errorf("ID(1): %v", err)
	}
	for _, id := range []int64{0, -1} {
		if _, err := ID(id); !errors.Is(err, ErrInvalid) {
			t.Errorf("ID(%d): expected ErrInvalid, got %v", id, err)
		}
	}
}

func TestStock(t *testing.T) {
	if _, err := Stock(0); err != nil {
		t.Errorf("Stock(0): %v", err)
	}
	if _, err := Stock(-1); !errors.Is(err, ErrInvalid) {
		t.Errorf("Stock(-1): expected ErrInvalid, got %v", err)
	}
}
