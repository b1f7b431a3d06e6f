package utils

import (
	"encoding/json"
	"net/http"

	"maison/apperr"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]any{"success": false, "message": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithAppError maps a domain error to its HTTP status and writes the
// standard failure envelope. Unrecognized errors surface as 500 with the
// underlying message passed through.
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, apperr.Status(err), err.Error())
}

type M map[string]interface{}
