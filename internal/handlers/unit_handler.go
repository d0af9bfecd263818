package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/pkg/utils"
)

type UnitHandler struct {
	Repo *repositories.UnitRepository
}

func NewUnitHandler(repo *repositories.UnitRepository) *UnitHandler {
	return &UnitHandler{Repo: repo}
}

func (h *UnitHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PropertyID <= 0 || req.UnitNumber == "" {
		utils.Error(w, http.StatusBadRequest, "property_id and unit_number are required")
		return
	}
	if req.RentAmount < 0 {
		utils.Error(w, http.StatusBadRequest, "rent_amount cannot be negative")
		return
	}

	unit := &models.Unit{
		PropertyID: req.PropertyID,
		UnitNumber: req.UnitNumber,
		RentAmount: req.RentAmount,
	}
	if err := h.Repo.Create(r.Context(), unit); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, unit)
}

func (h *UnitHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	unit, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Unit not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, unit)
}

func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	propertyID, _ := strconv.Atoi(r.URL.Query().Get("property_id"))

	units, err := h.Repo.List(r.Context(), propertyID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, units)
}

func (h *UnitHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RentAmount < 0 {
		utils.Error(w, http.StatusBadRequest, "rent_amount cannot be negative")
		return
	}

	err := h.Repo.Update(r.Context(), id, &req)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Unit not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
