package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/infrastructure/metrics"
	"github.com/kaskita/kasledger/internal/usecase"
)

// PostingService defines the behavior needed by PostingHandler.
type PostingService interface {
	Post(ctx context.Context, ev domain.Event) (*usecase.PostingResult, error)
}

// PostingHandler exposes one endpoint per business event kind. Every
// endpoint decodes its own strongly typed request and funnels into the
// same atomic posting path.
type PostingHandler struct {
	postingUC PostingService
	metrics   *metrics.Metrics
}

// NewPostingHandler creates a new PostingHandler. Metrics may be nil.
func NewPostingHandler(postingUC PostingService, m *metrics.Metrics) *PostingHandler {
	return &PostingHandler{postingUC: postingUC, metrics: m}
}

// eventRequest is implemented by every posting request DTO.
type eventRequest interface {
	ToEvent() domain.Event
}

func (h *PostingHandler) post(w http.ResponseWriter, r *http.Request, req eventRequest) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ev := req.ToEvent()
	start := time.Now()
	result, err := h.postingUC.Post(r.Context(), ev)
	h.observe(ev.Kind(), result, err, time.Since(start))
	if err != nil {
		writeDomainError(w, "failed to post event", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingFromResult(result))
}

func (h *PostingHandler) observe(kind domain.EventKind, result *usecase.PostingResult, err error, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	h.metrics.PostingsTotal.WithLabelValues(string(kind), status).Inc()
	h.metrics.PostingDuration.Observe(elapsed.Seconds())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPossibleDuplicate):
			h.metrics.DuplicateFlags.Inc()
		case errors.Is(err, domain.ErrConcurrentModification):
			h.metrics.RetryExhaustions.Inc()
		}
		return
	}

	if result.NoOp {
		h.metrics.NoOpAdjustments.Inc()
	}
	for _, label := range result.LowBalance {
		h.metrics.LowBalanceSignals.WithLabelValues(label).Inc()
	}
	if kind == domain.EventSettlement && len(result.Entries) > 0 {
		h.metrics.SettlementsTotal.Inc()
		h.metrics.SettlementAmounts.Observe(float64(result.Entries[0].Amount))
	}
}

// TransferOut posts an outbound customer transfer.
func (h *PostingHandler) TransferOut(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.TransferOutRequest{})
}

// Withdrawal posts a customer cash withdrawal.
func (h *PostingHandler) Withdrawal(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.WithdrawalRequest{})
}

// TopUp posts a wallet top-up, bill payment or PPOB sale.
func (h *PostingHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.TopUpRequest{})
}

// KJPWithdrawal posts a card-based social-aid withdrawal.
func (h *PostingHandler) KJPWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.KJPWithdrawalRequest{})
}

// EDCService posts a manual card-swipe cash-out.
func (h *PostingHandler) EDCService(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.EDCServiceRequest{})
}

// InternalTransfer posts a move between two own accounts.
func (h *PostingHandler) InternalTransfer(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.InternalTransferRequest{})
}

// CapitalInjection posts owner capital into an account.
func (h *PostingHandler) CapitalInjection(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.CapitalInjectionRequest{})
}

// CapitalWithdrawal posts owner capital out of an account.
func (h *PostingHandler) CapitalWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.CapitalWithdrawalRequest{})
}

// BalanceAdjustment corrects an account to its counted balance.
func (h *PostingHandler) BalanceAdjustment(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.BalanceAdjustmentRequest{})
}

// Settlement flushes a merchant account into its settlement destination.
func (h *PostingHandler) Settlement(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, &dto.SettlementRequest{})
}
