package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rentora-backend/internal/services"
	"rentora-backend/internal/timeutil"
	"rentora-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

// GetCollectionsCSV streams one month's payments as CSV.
// ?month=YYYY-MM, defaulting to the current month.
func (h *ReportHandler) GetCollectionsCSV(w http.ResponseWriter, r *http.Request) {
	month := timeutil.Now()
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.ParseInLocation("2006-01", m, timeutil.Kigali)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		month = parsed
	}

	data, err := h.Service.CollectionsCSV(r.Context(), month)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("collections-%s.csv", timeutil.StartOfMonth(month).Format("2006-01"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}

// ArchiveMonth uploads the previous month's collections CSV to R2
func (h *ReportHandler) ArchiveMonth(w http.ResponseWriter, r *http.Request) {
	lastMonth := timeutil.StartOfMonth(timeutil.Now()).AddDate(0, -1, 0)

	if err := h.Service.ArchiveMonth(r.Context(), lastMonth); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"month":   lastMonth.Format("2006-01"),
	})
}
