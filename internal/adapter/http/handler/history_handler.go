package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	AccountHistory(ctx context.Context, input usecase.AccountHistoryInput) ([]*usecase.HistoryLine, error)
	ListEntries(ctx context.Context, input usecase.AccountHistoryInput) ([]*domain.LedgerEntry, error)
	EventLegs(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error)
}

// HistoryHandler serves grouped and raw account history.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// History lists an account's grouped display lines, newest first.
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	lines, err := h.historyUC.AccountHistory(r.Context(), usecase.AccountHistoryInput{
		AccountID: id,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to load history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryLinesFromUseCase(lines))
}

// Entries lists an account's raw ledger entries, ungrouped.
func (h *HistoryHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.historyUC.ListEntries(r.Context(), usecase.AccountHistoryInput{
		AccountID: id,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// EventLegs lists every leg of one business event across accounts.
func (h *HistoryHandler) EventLegs(w http.ResponseWriter, r *http.Request) {
	correlationID := chi.URLParam(r, "correlationID")
	if correlationID == "" {
		writeError(w, http.StatusBadRequest, "missing correlation ID", "")
		return
	}

	entries, err := h.historyUC.EventLegs(r.Context(), correlationID)
	if err != nil {
		writeDomainError(w, "failed to load event legs", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
