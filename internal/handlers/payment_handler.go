package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentora-backend/internal/billing"
	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/services"
	"rentora-backend/pkg/utils"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.RecordPayment(r.Context(), &req)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Invoice not found")
		return
	case errors.Is(err, billing.ErrInvoiceSettled):
		utils.Error(w, http.StatusConflict, "Invoice is already fully paid")
		return
	case errors.Is(err, billing.ErrInvalidAmount), errors.Is(err, billing.ErrNothingToAllocate),
		errors.Is(err, services.ErrMissingInvoiceID), errors.Is(err, services.ErrWalletNotTender):
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}

func (h *PaymentHandler) ListByInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, _ := strconv.Atoi(mux.Vars(r)["invoice_id"])

	payments, err := h.Service.ListByInvoice(r.Context(), invoiceID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListByLease(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["lease_id"])

	payments, err := h.Service.ListByLease(r.Context(), leaseID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, payments)
}
