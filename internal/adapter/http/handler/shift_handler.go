package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/infrastructure/metrics"
	"github.com/kaskita/kasledger/internal/usecase"
)

// ShiftService defines the behavior needed by ShiftHandler.
type ShiftService interface {
	StartShift(ctx context.Context, input usecase.StartShiftInput) (*domain.ShiftStatus, error)
	CurrentShift(ctx context.Context) (*domain.ShiftStatus, error)
	CloseShift(ctx context.Context) (*domain.ShiftStatus, error)
}

// ReconciliationService defines the behavior needed for shift
// reconciliation.
type ReconciliationService interface {
	ReconcileShift(ctx context.Context, input usecase.ReconcileShiftInput) (*domain.ShiftReconciliation, error)
	ListReconciliations(ctx context.Context, limit, offset int) ([]*domain.ShiftReconciliation, error)
}

// ShiftHandler handles operator shift HTTP requests.
type ShiftHandler struct {
	shiftUC     ShiftService
	reconcileUC ReconciliationService
	metrics     *metrics.Metrics
}

// NewShiftHandler creates a new ShiftHandler. Metrics may be nil.
func NewShiftHandler(shiftUC ShiftService, reconcileUC ReconciliationService, m *metrics.Metrics) *ShiftHandler {
	return &ShiftHandler{
		shiftUC:     shiftUC,
		reconcileUC: reconcileUC,
		metrics:     m,
	}
}

// Start opens a new operator shift.
func (h *ShiftHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shift, err := h.shiftUC.StartShift(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to start shift", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ShiftsOpened.Inc()
	}
	writeJSON(w, http.StatusCreated, dto.ShiftFromDomain(shift))
}

// Current returns the open shift.
func (h *ShiftHandler) Current(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftUC.CurrentShift(r.Context())
	if err != nil {
		writeDomainError(w, "failed to get current shift", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ShiftFromDomain(shift))
}

// Close ends the open shift.
func (h *ShiftHandler) Close(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftUC.CloseShift(r.Context())
	if err != nil {
		writeDomainError(w, "failed to close shift", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ShiftsClosed.Inc()
	}
	writeJSON(w, http.StatusOK, dto.ShiftFromDomain(shift))
}

// Reconcile compares expected against counted cash for the open shift.
func (h *ShiftHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rec, err := h.reconcileUC.ReconcileShift(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to reconcile shift", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReconciliationsRecorded.Inc()
		h.metrics.ReconciliationDrift.Observe(math.Abs(float64(rec.Difference)))
	}
	writeJSON(w, http.StatusCreated, dto.ReconciliationFromDomain(rec))
}

// ListReconciliations lists past reconciliation records.
func (h *ShiftHandler) ListReconciliations(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	recs, err := h.reconcileUC.ListReconciliations(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reconciliations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationsFromDomain(recs))
}
