package v1

import (
	"net/http"

	"jayam-backend/internal/usecase"
	"jayam-backend/pkg/utils"
)

type AdminStatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{statsUC: uc}
}

// GetMonthlyStats serves the delivered-order aggregate for a single
// calendar month. Both query params are mandatory.
func (h *AdminStatsHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("month") == "" || r.URL.Query().Get("year") == "" {
		utils.WriteError(w, http.StatusBadRequest, "month and year are required")
		return
	}
	month := utils.ParseInt(r.URL.Query().Get("month"), 0)
	year := utils.ParseInt(r.URL.Query().Get("year"), 0)

	stats, err := h.statsUC.GetMonthlyStats(r.Context(), month, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}
