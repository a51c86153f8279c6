// This file serves the static catalogs the print UI builds its pickers
// from: label templates, printer presets, and subscription plans.
//
// Routes:
//   - GET /templates
//   - GET /presets
//   - GET /plans
//
// The catalogs are compiled-in configuration; these routes are public.

package handler

import (
	"net/http"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// CatalogHandler serves the static catalogs.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// RegisterRoutes registers catalog routes on the provided mux.
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /templates", h.HandleListTemplates)
	mux.HandleFunc("GET /presets", h.HandleListPresets)
	mux.HandleFunc("GET /plans", h.HandleListPlans)
}

type templateResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	NameJa      string  `json:"nameJa"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

func (h *CatalogHandler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := domain.Templates()
	resp := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, templateResponse{
			ID:          t.ID,
			Name:        t.Name,
			NameJa:      t.NameJa,
			Description: t.Description,
			Size:        string(t.Size),
			Width:       t.Width,
			Height:      t.Height,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type presetResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model,omitempty"`
	PaperCode     string  `json:"paperCode,omitempty"`
	Description   string  `json:"description"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height,omitempty"`
	Continuous    bool    `json:"continuous"`
	LabelsPerPage int     `json:"labelsPerPage,omitempty"`
}

func (h *CatalogHandler) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	presets := domain.PrinterPresets()
	resp := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, presetResponse{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         string(p.Brand),
			Model:         p.Model,
			PaperCode:     p.PaperCode,
			Description:   p.Description,
			Width:         p.Width,
			Height:        p.Height,
			Continuous:    p.Continuous,
			LabelsPerPage: p.LabelsPerPage,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type planResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	AmountJPY   int64  `json:"amountJpy"`
	LabelLimit  int    `json:"labelLimit"` // -1 means unlimited
	Unlimited   bool   `json:"unlimited"`
	Description string `json:"description"`
}

func (h *CatalogHandler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	plans := domain.Plans()
	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, planResponse{
			ID:          string(p.ID),
			Name:        p.Name,
			NameEn:      p.NameEn,
			AmountJPY:   p.AmountJPY,
			LabelLimit:  p.LabelLimit,
			Unlimited:   p.Unlimited(),
			Description: p.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
