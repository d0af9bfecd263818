package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"rentora-backend/internal/models"
	"rentora-backend/internal/services"
	"rentora-backend/pkg/utils"
)

type WebhookHandler struct {
	Billing *services.BillingService
}

func NewWebhookHandler(billing *services.BillingService) *WebhookHandler {
	return &WebhookHandler{Billing: billing}
}

// WhatsAppStatus receives delivery-status callbacks from the gateway.
// The gateway is configured to post the message id and status; anything
// else in the provider payload is ignored. Always returns 200 so the
// gateway does not retry.
func (h *WebhookHandler) WhatsAppStatus(w http.ResponseWriter, r *http.Request) {
	var req models.WebhookStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MessageID == "" {
		utils.JSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if err := h.Billing.ApplyDeliveryStatus(r.Context(), req.MessageID, req.Status); err != nil {
		log.Printf("[Webhook] Delivery status update for %s failed: %v", req.MessageID, err)
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"received": true})
}
