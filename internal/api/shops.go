package api

import (
	"database/sql"
	"net/http"

	"phonestock/internal/model"
	"phonestock/internal/store"
)

// ShopsHandler handles shop endpoints.
type ShopsHandler struct {
	DB *sql.DB
}

type createShopRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// List handles GET /api/shops.
func (h *ShopsHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := store.ListShops(r.Context(), h.DB, r.URL.Query().Get("active") == "1")
	if err != nil {
		storeError(w, err)
		return
	}
	if shops == nil {
		shops = []model.Shop{}
	}
	jsonResponse(w, http.StatusOK, shops)
}

// Create handles POST /api/shops.
func (h *ShopsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createShopRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	shop, err := store.CreateShop(r.Context(), h.DB, req.Name, req.Location)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, shop)
}
