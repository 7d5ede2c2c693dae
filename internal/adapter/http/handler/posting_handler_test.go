package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

type stubPostingService struct {
	gotEvent domain.Event
	result   *usecase.PostingResult
	err      error
}

func (s *stubPostingService) Post(_ context.Context, ev domain.Event) (*usecase.PostingResult, error) {
	s.gotEvent = ev
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestPostingHandlerTransferOut(t *testing.T) {
	svc := &stubPostingService{
		result: &usecase.PostingResult{
			CorrelationID: "corr-1",
			Entries: []*domain.LedgerEntry{
				{ID: "e1", AccountID: "acc-bca", Type: domain.EntryDebit, Amount: 102500},
			},
		},
	}
	h := NewPostingHandler(svc, nil)

	cash := int64(50000)
	body, _ := json.Marshal(dto.TransferOutRequest{
		CustomerName:    "Budi Santoso",
		SourceAccountID: "acc-bca",
		Principal:       100000,
		ServiceFee:      10000,
		ExternalFee:     2500,
		Payment: dto.PaymentRequest{
			Method:            "split",
			CashAmount:        &cash,
			TransferAccountID: "acc-receiving",
		},
	})

	rec := httptest.NewRecorder()
	h.TransferOut(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events/transfer-out", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	ev, ok := svc.gotEvent.(*domain.TransferOutEvent)
	if !ok {
		t.Fatalf("expected TransferOutEvent, got %T", svc.gotEvent)
	}
	if ev.Principal != 100000 || ev.ServiceFee != 10000 || ev.ExternalFee != 2500 {
		t.Fatalf("unexpected amounts on event: %+v", ev)
	}
	if ev.Payment.Method != domain.PaymentSplit || ev.Payment.CashAmount == nil || *ev.Payment.CashAmount != 50000 {
		t.Fatalf("unexpected payment on event: %+v", ev.Payment)
	}

	var resp dto.PostingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CorrelationID != "corr-1" || len(resp.Entries) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostingHandlerInsufficientBalance(t *testing.T) {
	svc := &stubPostingService{
		err: &domain.InsufficientBalanceError{AccountLabel: "BCA", Shortfall: 50000},
	}
	h := NewPostingHandler(svc, nil)

	body, _ := json.Marshal(dto.WithdrawalRequest{
		CustomerName:         "Siti",
		DestinationAccountID: "acc-bca",
		Principal:            100000,
		FeeMode:              "deducted",
	})

	rec := httptest.NewRecorder()
	h.Withdrawal(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events/withdrawal", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPostingHandlerDuplicateConflict(t *testing.T) {
	svc := &stubPostingService{
		err: &domain.PossibleDuplicateError{
			ExistingRecordID: "rec-9",
			CustomerName:     "Budi Santoso",
			Counterparty:     "EDC BRI",
			FeeAmount:        5000,
		},
	}
	h := NewPostingHandler(svc, nil)

	body, _ := json.Marshal(dto.EDCServiceRequest{
		CustomerName:      "Budi Santoso",
		MachineName:       "EDC BRI",
		MerchantAccountID: "acc-merchant",
		Principal:         200000,
		Fee:               5000,
	})

	rec := httptest.NewRecorder()
	h.EDCService(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events/edc", bytes.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Duplicate == nil || resp.Duplicate.ExistingRecordID != "rec-9" {
		t.Fatalf("expected duplicate details, got %+v", resp)
	}
}

func TestPostingHandlerInvalidBody(t *testing.T) {
	h := NewPostingHandler(&stubPostingService{}, nil)

	rec := httptest.NewRecorder()
	h.TopUp(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events/topup", bytes.NewReader([]byte("{not json"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
