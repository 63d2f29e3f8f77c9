package handler

import (
	"net/http"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// HealthHandler serves the liveness probe endpoint.
type HealthHandler struct {
	info domain.AppInfo
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{info: domain.CurrentAppInfo()}
}

// Health handles GET /api/health
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  domain.AppInfo
// @Router   /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.info)
}
