// This file implements the quota reporting endpoint.
//
// Route:
//   - GET /usage -> current quota standing for the calling shop

package handler

import (
	"log/slog"
	"net/http"

	"github.com/shokunin-apps/label-shokunin/internal/auth"
	"github.com/shokunin-apps/label-shokunin/internal/service"
)

// UsageHandler reports quota standing.
type UsageHandler struct {
	usageService service.UsageService
	logger       *slog.Logger
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService service.UsageService, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger,
	}
}

// RegisterRoutes registers usage routes on the provided mux.
func (h *UsageHandler) RegisterRoutes(mux *http.ServeMux, requireShop func(http.Handler) http.Handler) {
	mux.Handle("GET /usage", requireShop(http.HandlerFunc(h.HandleGetUsage)))
	mux.Handle("DELETE /usage", requireShop(http.HandlerFunc(h.HandleOffboard)))
}

// HandleGetUsage returns the shop's current quota standing. Reading never
// consumes quota; the only side effect is the lazy month rollover.
func (h *UsageHandler) HandleGetUsage(w http.ResponseWriter, r *http.Request) {
	shop := auth.GetShop(r.Context())

	usage, err := h.usageService.GetRemaining(r.Context(), shop)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, usageToResponse(usage))
}

// HandleOffboard removes the shop's usage record. Called when the app is
// uninstalled from the shop.
func (h *UsageHandler) HandleOffboard(w http.ResponseWriter, r *http.Request) {
	shop := auth.GetShop(r.Context())

	if err := h.usageService.Offboard(r.Context(), shop); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
