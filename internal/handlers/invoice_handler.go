package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/services"
	"rentora-backend/pkg/utils"
)

type InvoiceHandler struct {
	Repo    *repositories.InvoiceRepository
	Billing *services.BillingService
}

func NewInvoiceHandler(repo *repositories.InvoiceRepository, billing *services.BillingService) *InvoiceHandler {
	return &InvoiceHandler{Repo: repo, Billing: billing}
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	status := models.InvoiceStatus(r.URL.Query().Get("status"))

	if leaseID, _ := strconv.Atoi(r.URL.Query().Get("lease_id")); leaseID > 0 {
		invoices, err := h.Repo.ListByLease(r.Context(), leaseID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, invoices)
		return
	}

	invoices, err := h.Repo.List(r.Context(), status)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	invoice, err := h.Repo.GetWithDetails(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

// ApproveInvoices flips draft invoices to PENDING and sends the WhatsApp
// notices. Notice failures do not fail the approval.
func (h *InvoiceHandler) ApproveInvoices(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveInvoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.InvoiceIDs) == 0 {
		utils.Error(w, http.StatusBadRequest, "invoice_ids is required")
		return
	}

	if err := h.Billing.ApproveAndSend(r.Context(), req.InvoiceIDs); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"approved": len(req.InvoiceIDs),
	})
}
