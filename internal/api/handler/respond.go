package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// mapError translates domain sentinel errors to HTTP status codes.
// All mapping lives here so individual handlers stay concise.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrMethodNotAllowed):
		respondError(w, http.StatusMethodNotAllowed, domain.ErrMethodNotAllowed.Error())
	case errors.Is(err, domain.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, domain.ErrRateLimited.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// NotFound handles every path no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	mapError(w, domain.ErrNotFound)
}

// MethodNotAllowed handles a known path requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	mapError(w, domain.ErrMethodNotAllowed)
}

// TooManyRequests is the rejection response for the rate limit middleware.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	mapError(w, domain.ErrRateLimited)
}
