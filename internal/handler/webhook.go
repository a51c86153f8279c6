// This file implements the Stripe webhook handler for processing billing
// events.
//
// Route:
//   - POST /webhooks/stripe -> HandleStripeWebhook
//
// This route is PUBLIC (no auth middleware) because Stripe calls it
// directly. Authentication is via the Stripe webhook signature. Events
// are routed back to the shop through the subscription metadata attached
// at checkout.

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v79"

	"github.com/shokunin-apps/label-shokunin/internal/billing"
	"github.com/shokunin-apps/label-shokunin/internal/service"
)

// WebhookHandler handles incoming webhook events from Stripe.
type WebhookHandler struct {
	billing      billing.Service
	usageService service.UsageService
	logger       *slog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
// billingService may be nil when Stripe is not configured.
func NewWebhookHandler(billingService billing.Service, usageService service.UsageService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		billing:      billingService,
		usageService: usageService,
		logger:       logger,
	}
}

// RegisterRoutes registers webhook routes on the provided mux.
// These routes are PUBLIC — no auth middleware.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhooks/stripe", h.HandleStripeWebhook)
}

// HandleStripeWebhook processes incoming Stripe webhook events.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		h.logger.Warn("stripe webhook received but billing is not configured")
		w.WriteHeader(http.StatusOK)
		return
	}

	// Read body (limit to 64KB)
	body, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	event, err := h.billing.VerifyWebhookSignature(body, signature)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.logger.Info("stripe webhook received", "type", event.Type, "id", event.ID)

	switch event.Type {
	case "customer.subscription.created":
		h.handleSubscriptionChanged(event, "created")
	case "customer.subscription.updated":
		h.handleSubscriptionChanged(event, "updated")
	case "customer.subscription.deleted":
		h.handleSubscriptionDeleted(event)
	default:
		h.logger.Debug("unhandled webhook event type", "type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

// handleSubscriptionChanged sets the shop's plan from the subscribed price.
func (h *WebhookHandler) handleSubscriptionChanged(event stripe.Event, action string) {
	sub, shop, ok := h.decodeSubscription(event, action)
	if !ok {
		return
	}

	// A subscription that is no longer collectible loses its plan.
	if sub.Status != stripe.SubscriptionStatusActive && sub.Status != stripe.SubscriptionStatusTrialing {
		if err := h.usageService.UpdatePlan(webhookCtx(), shop, ""); err != nil {
			h.logger.Error("failed to clear plan", "error", err, "shop", shop, "action", action)
		}
		h.logger.Info("plan cleared for inactive subscription",
			"shop", shop, "status", sub.Status, "action", action)
		return
	}

	if len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		h.logger.Warn("subscription event missing price", "subscription_id", sub.ID, "action", action)
		return
	}

	plan := h.billing.PlanForPriceID(sub.Items.Data[0].Price.ID)
	if plan == "" {
		h.logger.Warn("subscription price does not match any plan",
			"price_id", sub.Items.Data[0].Price.ID, "shop", shop)
		return
	}

	if err := h.usageService.UpdatePlan(webhookCtx(), shop, plan); err != nil {
		h.logger.Error("failed to update plan", "error", err, "shop", shop, "action", action)
		return
	}

	h.logger.Info("subscription event processed",
		"shop", shop, "action", action, "plan", plan, "status", sub.Status)
}

// handleSubscriptionDeleted clears the shop's plan.
func (h *WebhookHandler) handleSubscriptionDeleted(event stripe.Event) {
	sub, shop, ok := h.decodeSubscription(event, "deleted")
	if !ok {
		return
	}

	if err := h.usageService.UpdatePlan(webhookCtx(), shop, ""); err != nil {
		h.logger.Error("failed to clear plan on subscription deletion", "error", err, "shop", shop)
		return
	}

	h.logger.Info("subscription deleted", "shop", shop, "subscription_id", sub.ID)
}

// decodeSubscription parses the event payload and resolves the shop from
// the subscription metadata set at checkout.
func (h *WebhookHandler) decodeSubscription(event stripe.Event, action string) (stripe.Subscription, string, bool) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		h.logger.Error("failed to parse subscription event", "error", err, "action", action)
		return sub, "", false
	}

	shop := sub.Metadata["shop"]
	if shop == "" {
		h.logger.Warn("subscription event missing shop metadata",
			"subscription_id", sub.ID, "action", action)
		return sub, "", false
	}

	return sub, shop, true
}

// webhookCtx returns a background context for webhook processing.
// Webhooks are async events and don't have a user request context.
func webhookCtx() context.Context {
	return context.Background()
}
