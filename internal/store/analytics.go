package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"

	"phonestock/internal/model"
)

// ShopStats holds per-shop inventory counts.
type ShopStats struct {
	ShopID             int64 `json:"shop_id"`
	TotalCount         int   `json:"total_count"`
	InStockCount       int   `json:"in_stock_count"`
	DistinctModelCount int   `json:"distinct_model_count"`
}

// Summary holds catalog-wide inventory and price analytics.
type Summary struct {
	TotalCount        int            `json:"total_count"`
	InStockCount      int            `json:"in_stock_count"`
	OutOfStockCount   int            `json:"out_of_stock_count"`
	StockRatePercent  float64        `json:"stock_rate_percent"`
	AveragePrice      float64        `json:"average_price"`
	MedianPrice       float64        `json:"median_price"`
	MinPrice          float64        `json:"min_price"`
	MaxPrice          float64        `json:"max_price"`
	PerShop           []ShopStats    `json:"per_shop"`
	ModelDistribution map[string]int `json:"model_distribution"`
}

// Analytics computes the inventory summary with a single full-table scan.
// There is no incremental maintenance; catalog size bounds the work.
func Analytics(ctx context.Context, db *sql.DB) (*Summary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT price, status, shop_id, model FROM devices ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("scanning devices: %w", err)
	}
	defer rows.Close()

	type shopAcc struct {
		total, inStock int
		models         map[string]struct{}
	}

	s := &Summary{ModelDistribution: make(map[string]int)}
	shops := make(map[int64]*shopAcc)
	var prices []float64
	var priceSum float64

	for rows.Next() {
		var price float64
		var status, deviceModel string
		var shopID int64
		if err := rows.Scan(&price, &status, &shopID, &deviceModel); err != nil {
			return nil, fmt.Errorf("scanning device row: %w", err)
		}

		s.TotalCount++
		if status == model.StatusInStock {
			s.InStockCount++
		}

		prices = append(prices, price)
		priceSum += price

		acc := shops[shopID]
		if acc == nil {
			acc = &shopAcc{models: make(map[string]struct{})}
			shops[shopID] = acc
		}
		acc.total++
		if status == model.StatusInStock {
			acc.inStock++
		}
		acc.models[deviceModel] = struct{}{}

		// Brand is the first whitespace token of the model name.
		if fields := strings.Fields(deviceModel); len(fields) > 0 {
			s.ModelDistribution[fields[0]]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading devices: %w", err)
	}

	s.OutOfStockCount = s.TotalCount - s.InStockCount
	if s.TotalCount > 0 {
		s.StockRatePercent = round2(float64(s.InStockCount) / float64(s.TotalCount) * 100)
		s.AveragePrice = round2(priceSum / float64(s.TotalCount))
		sort.Float64s(prices)
		s.MinPrice = prices[0]
		s.MaxPrice = prices[len(prices)-1]
		s.MedianPrice = round2(median(prices))
	}

	ids := make([]int64, 0, len(shops))
	for id := range shops {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		acc := shops[id]
		s.PerShop = append(s.PerShop, ShopStats{
			ShopID:             id,
			TotalCount:         acc.total,
			InStockCount:       acc.inStock,
			DistinctModelCount: len(acc.models),
		})
	}

	return s, nil
}

// median expects a sorted, non-empty slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
