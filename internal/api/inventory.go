package api

import (
	"database/sql"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"phonestock/internal/model"
	"phonestock/internal/sheet"
	"phonestock/internal/store"
)

// InventoryHandler handles analytics, low-stock, product patch and sync
// endpoints.
type InventoryHandler struct {
	DB         *sql.DB
	ExcelPath  string
	SyncPolicy store.SyncPolicy
}

// Analytics handles GET /api/analytics.
func (h *InventoryHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := store.Analytics(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}

// LowStock handles GET /api/products/low-stock.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := store.DefaultLowStockThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = t
	}

	products, err := store.LowStockProducts(r.Context(), h.DB, threshold)
	if err != nil {
		storeError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

type patchProductRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// PatchProduct handles PATCH /api/products/{id}.
func (h *InventoryHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req patchProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := store.UpdateProductField(r.Context(), h.DB, id, req.Field, req.Value)
	if err != nil {
		storeError(w, err)
		return
	}
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown field or product")
		return
	}

	product, err := store.GetProduct(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// Sync handles POST /api/sync: re-imports the workbook into the catalog.
func (h *InventoryHandler) Sync(w http.ResponseWriter, r *http.Request) {
	rows, err := sheet.ReadDevices(h.ExcelPath)
	if err != nil {
		log.WithError(err).Error("reading import workbook")
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := store.SyncDevices(r.Context(), h.DB, rows, h.SyncPolicy)
	if err != nil {
		storeError(w, err)
		return
	}

	log.WithField("count", count).Info("catalog synced from workbook")
	jsonResponse(w, http.StatusOK, map[string]int{"synced": count})
}
