package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckAccount(ctx context.Context, accountID string) (*usecase.ConsistencyReport, error)
	CheckAll(ctx context.Context) ([]*usecase.ConsistencyReport, error)
}

// LedgerHandler serves ledger integrity checks.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckAll verifies every account's balance against its newest entry.
func (h *LedgerHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ledgerUC.CheckAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyReportsFromUseCase(reports))
}

// CheckAccount verifies one account's balance against its newest entry.
func (h *LedgerHandler) CheckAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	report, err := h.ledgerUC.CheckAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "consistency check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
