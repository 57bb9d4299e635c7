package api

import (
	"database/sql"
	"net/http"

	log "github.com/sirupsen/logrus"

	"phonestock/internal/model"
	"phonestock/internal/store"
)

// SalesHandler handles sale, return and used-device intake endpoints.
type SalesHandler struct {
	DB *sql.DB
}

type recordSaleRequest struct {
	IMEI          string `json:"imei"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	ShopID        int64  `json:"shop_id"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type processReturnRequest struct {
	PurchaseID int64  `json:"purchase_id"`
	Reason     string `json:"reason"`
	Condition  string `json:"condition"`
	Notes      string `json:"notes"`
}

type intakeRequest struct {
	IMEI         string  `json:"imei"`
	SerialNumber string  `json:"serial_number"`
	Model        string  `json:"model"`
	SellerName   string  `json:"seller_name"`
	SellerPhone  string  `json:"seller_phone"`
	Condition    string  `json:"condition"`
	Price        float64 `json:"price"`
	ShopID       int64   `json:"shop_id"`
	Notes        string  `json:"notes"`
}

// RecordSale handles POST /api/sales.
func (h *SalesHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IMEI == "" || req.CustomerName == "" || req.ShopID <= 0 {
		jsonError(w, http.StatusBadRequest, "imei, customer_name and shop_id are required")
		return
	}

	purchase, err := store.RecordSale(r.Context(), h.DB, req.IMEI,
		req.CustomerName, req.CustomerPhone, req.ShopID, req.PaymentMethod, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"imei":  purchase.DeviceIMEI,
		"price": purchase.PurchasePrice,
		"shop":  purchase.ShopID,
	}).Info("sale recorded")
	jsonResponse(w, http.StatusCreated, purchase)
}

// ProcessReturn handles POST /api/returns.
func (h *SalesHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	var req processReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PurchaseID <= 0 || req.Reason == "" {
		jsonError(w, http.StatusBadRequest, "purchase_id and reason are required")
		return
	}

	claims := GetClaims(r.Context())
	ret, err := store.ProcessReturn(r.Context(), h.DB, req.PurchaseID,
		req.Reason, req.Condition, claims.Username, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"purchase_id": ret.PurchaseID,
		"refund":      ret.RefundAmount,
	}).Info("return processed")
	jsonResponse(w, http.StatusCreated, ret)
}

// Intake handles POST /api/intakes.
func (h *SalesHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IMEI == "" || req.Model == "" || req.SellerName == "" || req.Price < 0 || req.ShopID <= 0 {
		jsonError(w, http.StatusBadRequest, "imei, model, seller_name, price and shop_id are required")
		return
	}

	claims := GetClaims(r.Context())
	seller := model.SellerInfo{Name: req.SellerName, Phone: req.SellerPhone}
	device, intake, err := store.IntakeUsedDevice(r.Context(), h.DB, req.IMEI,
		req.SerialNumber, req.Model, seller, req.Condition, req.Price,
		req.ShopID, claims.Username, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"imei":       device.IMEI,
		"paid":       intake.PurchasePrice,
		"list_price": device.Price,
		"shop":       device.ShopID,
	}).Info("used device intake")
	jsonResponse(w, http.StatusCreated, map[string]any{
		"device": device,
		"intake": intake,
	})
}
