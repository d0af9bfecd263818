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

type LeaseHandler struct {
	Service *services.LeaseService
	Repo    *repositories.LeaseRepository
}

func NewLeaseHandler(service *services.LeaseService, repo *repositories.LeaseRepository) *LeaseHandler {
	return &LeaseHandler{Service: service, Repo: repo}
}

func (h *LeaseHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lease, err := h.Service.Create(r.Context(), &req)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Tenant or unit not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, lease)
}

func (h *LeaseHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	lease, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Lease not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	if tenantID, _ := strconv.Atoi(r.URL.Query().Get("tenant_id")); tenantID > 0 {
		leases, err := h.Repo.ListByTenant(r.Context(), tenantID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, leases)
		return
	}

	leases, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, leases)
}

// TerminateLease ends the lease and frees its unit. The lease stays in
// the database so invoices and payments keep their history.
func (h *LeaseHandler) TerminateLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	err := h.Service.Terminate(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Active lease not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
