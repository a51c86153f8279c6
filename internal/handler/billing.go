// This file implements the billing endpoints.
//
// Routes:
//   - POST /billing/checkout -> start a Stripe Checkout for a plan
//   - POST /billing/portal   -> open the Stripe Customer Portal
//
// Both routes require shop authentication.

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shokunin-apps/label-shokunin/internal/auth"
	"github.com/shokunin-apps/label-shokunin/internal/billing"
	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// BillingHandler handles subscription billing requests.
type BillingHandler struct {
	billing billing.Service
	logger  *slog.Logger
}

// NewBillingHandler creates a new BillingHandler.
// billingService may be nil when Stripe is not configured.
func NewBillingHandler(billingService billing.Service, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		billing: billingService,
		logger:  logger,
	}
}

// RegisterRoutes registers billing routes on the provided mux.
func (h *BillingHandler) RegisterRoutes(mux *http.ServeMux, requireShop func(http.Handler) http.Handler) {
	mux.Handle("POST /billing/checkout", requireShop(http.HandlerFunc(h.HandleCheckout)))
	mux.Handle("POST /billing/portal", requireShop(http.HandlerFunc(h.HandlePortal)))
}

type checkoutRequest struct {
	Plan       string `json:"plan"`
	Email      string `json:"email"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// HandleCheckout creates a Stripe Checkout session for the requested plan.
func (h *BillingHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "handler.billing.checkout"

	if h.billing == nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.EINTERNAL, op, "billing is not configured"))
		return
	}

	shop := auth.GetShop(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "invalid JSON body"))
		return
	}

	plan := domain.PlanID(req.Plan)
	if _, ok := domain.PlanByID(plan); !ok {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "unknown plan: "+req.Plan))
		return
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "successUrl and cancelUrl are required"))
		return
	}

	customerID, err := h.billing.CreateCustomer(req.Email, shop)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "failed to create billing customer"))
		return
	}

	url, err := h.billing.CreateCheckoutSession(customerID, shop, plan, req.SuccessURL, req.CancelURL)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "failed to create checkout session"))
		return
	}

	h.logger.Info("checkout session created", "shop", shop, "plan", plan)
	writeJSON(w, http.StatusOK, checkoutResponse{URL: url})
}

type portalRequest struct {
	CustomerID string `json:"customerId"`
	ReturnURL  string `json:"returnUrl"`
}

// HandlePortal creates a Stripe Customer Portal session.
func (h *BillingHandler) HandlePortal(w http.ResponseWriter, r *http.Request) {
	const op = "handler.billing.portal"

	if h.billing == nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.EINTERNAL, op, "billing is not configured"))
		return
	}

	var req portalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "invalid JSON body"))
		return
	}
	if req.CustomerID == "" || req.ReturnURL == "" {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "customerId and returnUrl are required"))
		return
	}

	url, err := h.billing.CreatePortalSession(req.CustomerID, req.ReturnURL)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "failed to create portal session"))
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{URL: url})
}
