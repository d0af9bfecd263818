package handlers

import (
	"net/http"

	"rentora-backend/internal/services"
	"rentora-backend/pkg/utils"
)

type BillingHandler struct {
	Service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{Service: service}
}

// GenerateInvoices is the scheduled billing trigger. Idempotent: a
// retry on the same day generates nothing new.
func (h *BillingHandler) GenerateInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.GenerateInvoices(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, result)
}
