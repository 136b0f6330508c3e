package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cashwell/cashwell/internal/adapter/http/dto"
	"github.com/cashwell/cashwell/internal/usecase"
)

// StatsHandler handles read-only stats HTTP requests.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Overview returns profit/loss/net/count for the filtered window.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ov, err := h.statsUC.GetOverview(r.Context(), usecase.OverviewInput{
		Owner:  q.Get("owner"),
		Period: q.Get("period"),
	})
	if err != nil {
		writeDomainError(w, err, "failed to compute overview")
		return
	}

	writeJSON(w, http.StatusOK, dto.OverviewFromUseCase(ov))
}

// DailyProfit returns the primary member's net for today.
func (h *StatsHandler) DailyProfit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"daily_profit": h.statsUC.GetDailyProfit(r.Context()),
	})
}

// Records returns the best day/month/year.
func (h *StatsHandler) Records(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.RecordsFromUseCase(h.statsUC.GetRecords(r.Context())))
}

// Rankings returns member rankings for the requested mode.
func (h *StatsHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.statsUC.GetRankings(r.Context(), r.URL.Query().Get("mode"))
	if err != nil {
		writeDomainError(w, err, "failed to compute rankings")
		return
	}

	writeJSON(w, http.StatusOK, dto.RankingFromUseCase(ranking))
}

// MemberStats returns one member's period stats.
func (h *StatsHandler) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.GetMemberStats(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("period"))
	if err != nil {
		writeDomainError(w, err, "failed to compute member stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberStatsFromUseCase(stats))
}

// MonthlyNet returns the primary member's per-month nets for a year.
func (h *StatsHandler) MonthlyNet(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", time.Now().Year())
	nets := h.statsUC.MonthlyNet(r.Context(), year)

	writeJSON(w, http.StatusOK, map[string]any{
		"year":   year,
		"months": nets[:],
	})
}
