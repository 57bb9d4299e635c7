package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"phonestock/internal/store"
	"phonestock/internal/validate"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.WithError(err).Error("encoding response")
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError translates a typed store failure into an HTTP response. The
// store never formats user-facing text, so the mapping lives here.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidState),
		errors.Is(err, store.ErrReturnExpired),
		errors.Is(err, store.ErrTransfer):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, store.ErrSync):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("store operation failed")
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
