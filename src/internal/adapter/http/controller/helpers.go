package controller

import (
	"encoding/json"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func wrap(handler http.Handler, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware != nil {
		return authMiddleware(handler)
	}
	return handler
}

// statusFor maps service response messages onto HTTP statuses, the
// same way the services phrase them.
func statusFor(message string) int {
	switch {
	case message == "validation failed":
		return http.StatusBadRequest
	case strings.HasSuffix(message, "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
