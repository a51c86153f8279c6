// Package handler contains HTTP handlers for the Label Shokunin API.
//
// This file implements the print endpoints:
//
//   - POST /print   -> quota-gated print document generation
//   - POST /preview -> print document generation without quota
//
// Both routes require shop authentication.
package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"net/http"

	"github.com/shokunin-apps/label-shokunin/internal/auth"
	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/layout"
	"github.com/shokunin-apps/label-shokunin/internal/printdoc"
	"github.com/shokunin-apps/label-shokunin/internal/service"
)

// PrintHandler handles print document requests.
type PrintHandler struct {
	printService service.PrintService
	logger       *slog.Logger
}

// NewPrintHandler creates a new PrintHandler.
func NewPrintHandler(printService service.PrintService, logger *slog.Logger) *PrintHandler {
	return &PrintHandler{
		printService: printService,
		logger:       logger,
	}
}

// RegisterRoutes registers print routes on the provided mux.
func (h *PrintHandler) RegisterRoutes(mux *http.ServeMux, requireShop func(http.Handler) http.Handler) {
	mux.Handle("POST /print", requireShop(http.HandlerFunc(h.HandlePrint)))
	mux.Handle("POST /preview", requireShop(http.HandlerFunc(h.HandlePreview)))
}

// -----------------------------------------------------------------------------
// Request / response shapes
// -----------------------------------------------------------------------------

type productRequest struct {
	ProductID    string `json:"productId"`
	VariantID    string `json:"variantId"`
	Title        string `json:"title"`
	VariantTitle string `json:"variantTitle"`
	SKU          string `json:"sku"`
	Barcode      string `json:"barcode"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

type settingsRequest struct {
	ShowPrice       *bool   `json:"showPrice"`
	ShowTaxIncluded *bool   `json:"showTaxIncluded"`
	TaxRate         *int    `json:"taxRate"`
	ShowSKU         *bool   `json:"showSku"`
	ShowProductName *bool   `json:"showProductName"`
	ShowVariantName *bool   `json:"showVariantName"`
	ShowBarcode     *bool   `json:"showBarcode"`
	BarcodeFormat   string  `json:"barcodeFormat"`
	LabelSize       string  `json:"labelSize"`
	CustomWidth     float64 `json:"customWidth"`
	CustomHeight    float64 `json:"customHeight"`
}

type printRequest struct {
	Products     []productRequest `json:"products"`
	Settings     settingsRequest  `json:"settings"`
	TemplateID   string           `json:"templateId"`
	PresetID     string           `json:"presetId"`
	CustomWidth  float64          `json:"customWidth"`
	CustomHeight float64          `json:"customHeight"`
}

type usageResponse struct {
	Allowed   bool `json:"allowed"`
	NoPlan    bool `json:"noPlan"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
	Used      int  `json:"used"`
}

type labelResponse struct {
	Handle         string `json:"handle"`
	BarcodeState   string `json:"barcodeState"`
	BarcodeValue   string `json:"barcodeValue,omitempty"`
	BarcodeFormat  string `json:"barcodeFormat,omitempty"`
	BarcodeMessage string `json:"barcodeMessage,omitempty"`
	BarcodeImage   string `json:"barcodeImage,omitempty"` // PNG data URL
	RenderError    string `json:"renderError,omitempty"`

	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Price   string `json:"price,omitempty"`
	TaxNote string `json:"taxNote,omitempty"`
}

type pageResponse struct {
	Mode         string  `json:"mode"`
	A4           bool    `json:"a4"`
	PageWidthMm  float64 `json:"pageWidthMm,omitempty"`
	PageHeightMm float64 `json:"pageHeightMm,omitempty"`
	MarginTopMm  float64 `json:"marginTopMm"`
	MarginLeftMm float64 `json:"marginLeftMm"`
	GapMm        float64 `json:"gapMm"`
	ShowBorders  bool    `json:"showBorders"`
	BreakPerUnit bool    `json:"breakPerUnit"`
}

type fontsResponse struct {
	Name    float64 `json:"name"`
	Variant float64 `json:"variant"`
	SKU     float64 `json:"sku"`
	Price   float64 `json:"price"`
	TaxNote float64 `json:"taxNote"`
}

type documentResponse struct {
	ID            string          `json:"id"`
	Page          pageResponse    `json:"page"`
	LabelWidthMm  float64         `json:"labelWidthMm"`
	LabelHeightMm float64         `json:"labelHeightMm"`
	Fonts         fontsResponse   `json:"fonts"`
	Labels        []labelResponse `json:"labels"`
}

type printResponse struct {
	Document *documentResponse `json:"document,omitempty"`
	Usage    *usageResponse    `json:"usage,omitempty"`
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

// HandlePrint reserves quota for the batch and returns the print document.
// A quota rejection responds 402 with the usage standing; the counter is
// untouched in that case.
func (h *PrintHandler) HandlePrint(w http.ResponseWriter, r *http.Request) {
	const op = "handler.print"

	shop := auth.GetShop(r.Context())

	in, err := h.decodeInput(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	doc, usage, err := h.printService.Print(r.Context(), shop, in)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if doc == nil {
		// Quota rejected the batch. 402 carries the standing so the UI
		// can show remaining quota and an upgrade path.
		writeJSON(w, http.StatusPaymentRequired, printResponse{
			Usage: usageToResponse(usage),
		})
		return
	}

	writeJSON(w, http.StatusOK, printResponse{
		Document: documentToResponse(doc),
		Usage:    usageToResponse(usage),
	})
}

// HandlePreview builds the document without charging quota.
func (h *PrintHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	doc, err := h.printService.Preview(r.Context(), in)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, printResponse{
		Document: documentToResponse(doc),
	})
}

// -----------------------------------------------------------------------------
// Decoding
// -----------------------------------------------------------------------------

func (h *PrintHandler) decodeInput(r *http.Request) (printdoc.Input, error) {
	const op = "handler.print.decode"

	var req printRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return printdoc.Input{}, domain.Invalid(op, "invalid JSON body")
	}

	if len(req.Products) == 0 {
		return printdoc.Input{}, domain.Invalid(op, "no products selected")
	}

	in := printdoc.Input{
		Products:       make([]domain.SelectedProduct, 0, len(req.Products)),
		Settings:       resolveSettings(req.Settings),
		CustomWidthMm:  req.CustomWidth,
		CustomHeightMm: req.CustomHeight,
	}

	for _, p := range req.Products {
		in.Products = append(in.Products, domain.SelectedProduct{
			ProductID:    p.ProductID,
			VariantID:    p.VariantID,
			Title:        p.Title,
			VariantTitle: p.VariantTitle,
			SKU:          p.SKU,
			Barcode:      p.Barcode,
			Price:        p.Price,
			Quantity:     p.Quantity,
		})
	}

	switch {
	case req.PresetID != "":
		preset, ok := domain.PresetByID(req.PresetID)
		if !ok {
			return printdoc.Input{}, domain.Invalid(op, "unknown printer preset: "+req.PresetID)
		}
		in.Preset = &preset
	case req.TemplateID != "":
		tmpl, ok := domain.TemplateByID(req.TemplateID)
		if !ok {
			return printdoc.Input{}, domain.Invalid(op, "unknown template: "+req.TemplateID)
		}
		in.Template = &tmpl
	default:
		return printdoc.Input{}, domain.Invalid(op, "a templateId or presetId is required")
	}

	return in, nil
}

// resolveSettings merges the request over the batch defaults. Absent
// booleans keep their default rather than collapsing to false.
func resolveSettings(req settingsRequest) domain.LabelSettings {
	s := domain.DefaultLabelSettings()

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&s.ShowPrice, req.ShowPrice)
	setBool(&s.ShowTaxIncluded, req.ShowTaxIncluded)
	setBool(&s.ShowSKU, req.ShowSKU)
	setBool(&s.ShowProductName, req.ShowProductName)
	setBool(&s.ShowVariantName, req.ShowVariantName)
	setBool(&s.ShowBarcode, req.ShowBarcode)

	if req.TaxRate != nil {
		s.TaxRate = *req.TaxRate
	}
	if req.BarcodeFormat != "" {
		s.BarcodeFormat = domain.BarcodeFormat(req.BarcodeFormat)
	}
	if req.LabelSize != "" {
		s.LabelSize = domain.LabelSize(req.LabelSize)
	}
	s.CustomWidth = req.CustomWidth
	s.CustomHeight = req.CustomHeight

	return s
}

// -----------------------------------------------------------------------------
// Encoding
// -----------------------------------------------------------------------------

func usageToResponse(u domain.UsageResult) *usageResponse {
	return &usageResponse{
		Allowed:   u.Allowed,
		NoPlan:    u.NoPlan,
		Remaining: u.Remaining,
		Limit:     u.Limit,
		Used:      u.Used,
	}
}

func documentToResponse(doc *printdoc.Document) *documentResponse {
	resp := &documentResponse{
		ID: doc.ID.String(),
		Page: pageResponse{
			Mode:         string(doc.Page.Mode),
			A4:           doc.Page.A4,
			PageWidthMm:  doc.Page.PageWidthMm,
			PageHeightMm: doc.Page.PageHeightMm,
			MarginTopMm:  doc.Page.MarginTopMm,
			MarginLeftMm: doc.Page.MarginLeftMm,
			GapMm:        doc.Page.GapMm,
			ShowBorders:  doc.Page.ShowBorders,
			BreakPerUnit: doc.Page.BreakPerUnit,
		},
		LabelWidthMm:  doc.LabelWidthMm,
		LabelHeightMm: doc.LabelHeightMm,
		Fonts: fontsResponse{
			Name:    doc.Fonts.Name,
			Variant: doc.Fonts.Variant,
			SKU:     doc.Fonts.SKU,
			Price:   doc.Fonts.Price,
			TaxNote: doc.Fonts.TaxNote,
		},
		Labels: make([]labelResponse, 0, len(doc.Labels)),
	}

	for _, l := range doc.Labels {
		lr := labelResponse{
			Handle:         l.Handle,
			BarcodeState:   string(l.Content.BarcodeState),
			BarcodeMessage: l.Content.BarcodeMessage,
			RenderError:    l.RenderError,
			Name:           l.Content.Name,
			Variant:        l.Content.Variant,
			SKU:            l.Content.SKU,
			Price:          l.Content.Price,
			TaxNote:        l.Content.TaxNote,
		}
		if l.Content.BarcodeState == layout.BarcodeOK {
			lr.BarcodeValue = l.Content.Barcode.Raw
			lr.BarcodeFormat = string(l.Content.Barcode.Format)
		}
		if l.Symbol != nil {
			if data, err := encodePNG(l.Symbol); err == nil {
				lr.BarcodeImage = data
			}
		}
		resp.Labels = append(resp.Labels, lr)
	}

	return resp
}

// encodePNG renders the barcode image as a PNG data URL.
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
