package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"phonestock/internal/imaging"
	"phonestock/internal/model"
	"phonestock/internal/store"
)

// DevicesHandler handles device catalog endpoints.
type DevicesHandler struct {
	DB *sql.DB
}

// List handles GET /api/devices. With a q parameter it searches the
// catalog; otherwise it lists, optionally filtered by shop.
func (h *DevicesHandler) List(w http.ResponseWriter, r *http.Request) {
	var shopID int64
	if v := r.URL.Query().Get("shop_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid shop_id")
			return
		}
		shopID = id
	}

	var devices []model.Device
	var err error
	if q := r.URL.Query().Get("q"); q != "" {
		devices, err = store.SearchDevices(r.Context(), h.DB, q, shopID, r.URL.Query().Get("condition"))
	} else {
		devices, err = store.ListDevices(r.Context(), h.DB, shopID)
	}
	if err != nil {
		storeError(w, err)
		return
	}
	if devices == nil {
		devices = []model.Device{}
	}
	jsonResponse(w, http.StatusOK, devices)
}

// Get handles GET /api/devices/{imei}.
func (h *DevicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, err := store.GetDevice(r.Context(), h.DB, r.PathValue("imei"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, device)
}

// GetHistory handles GET /api/devices/{imei}/history.
func (h *DevicesHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := store.GetDeviceHistory(r.Context(), h.DB, r.PathValue("imei"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, history)
}

// UploadPhoto handles PUT /api/devices/{imei}/photo.
func (h *DevicesHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	// Limit to 10 MB before processing.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetDevicePhoto(r.Context(), h.DB, r.PathValue("imei"), photo.Data, photo.MIME); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/devices/{imei}/photo.
func (h *DevicesHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetDevicePhoto(r.Context(), h.DB, r.PathValue("imei"))
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
