package api

import (
	"database/sql"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"phonestock/internal/model"
	"phonestock/internal/store"
)

// TransfersHandler handles inter-shop transfer endpoints.
type TransfersHandler struct {
	DB *sql.DB
}

type createTransferRequest struct {
	IMEI       string `json:"imei"`
	FromShopID int64  `json:"from_shop_id"`
	ToShopID   int64  `json:"to_shop_id"`
	Notes      string `json:"notes"`
}

// Create handles POST /api/transfers.
func (h *TransfersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IMEI == "" || req.FromShopID <= 0 || req.ToShopID <= 0 {
		jsonError(w, http.StatusBadRequest, "imei, from_shop_id and to_shop_id are required")
		return
	}

	claims := GetClaims(r.Context())
	transfer, err := store.TransferDevice(r.Context(), h.DB, req.IMEI,
		req.FromShopID, req.ToShopID, claims.UserID, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"user": claims.Username,
		"imei": transfer.DeviceIMEI,
		"from": transfer.FromShopName,
		"to":   transfer.ToShopName,
	}).Info("transfer completed")
	jsonResponse(w, http.StatusCreated, transfer)
}

// List handles GET /api/transfers.
func (h *TransfersHandler) List(w http.ResponseWriter, r *http.Request) {
	var shopID int64
	if v := r.URL.Query().Get("shop_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid shop_id")
			return
		}
		shopID = id
	}

	transfers, err := store.ListTransfers(r.Context(), h.DB, r.URL.Query().Get("imei"), shopID)
	if err != nil {
		storeError(w, err)
		return
	}
	if transfers == nil {
		transfers = []model.Transfer{}
	}
	jsonResponse(w, http.StatusOK, transfers)
}
