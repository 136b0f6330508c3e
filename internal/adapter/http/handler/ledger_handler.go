package handler

import (
	"net/http"

	"github.com/cashwell/cashwell/internal/adapter/http/dto"
	"github.com/cashwell/cashwell/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	consistencyUC *usecase.ConsistencyUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(consistencyUC *usecase.ConsistencyUseCase) *LedgerHandler {
	return &LedgerHandler{consistencyUC: consistencyUC}
}

// CheckConsistency replays the entry log and reports balance drift.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.consistencyUC.Check(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromUseCase(report))
}
