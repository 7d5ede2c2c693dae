package dto

import (
	"time"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

// AccountResponse represents a kas account in API responses.
type AccountResponse struct {
	ID                  string    `json:"id"`
	Label               string    `json:"label"`
	Type                string    `json:"type"`
	Balance             int64     `json:"balance"`
	MinimumBalance      int64     `json:"minimum_balance"`
	SettlementAccountID string    `json:"settlement_account_id,omitempty"`
	BelowMinimum        bool      `json:"below_minimum"`
	Version             int64     `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.KasAccount) *AccountResponse {
	return &AccountResponse{
		ID:                  a.ID,
		Label:               a.Label,
		Type:                string(a.Type),
		Balance:             a.Balance,
		MinimumBalance:      a.MinimumBalance,
		SettlementAccountID: a.SettlementAccountID,
		BelowMinimum:        a.BelowMinimum(),
		Version:             a.Version,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.KasAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Counterparty  string    `json:"counterparty,omitempty"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Category      string    `json:"category"`
	DeviceName    string    `json:"device_name,omitempty"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Type:          string(e.Type),
		Name:          e.Name,
		Counterparty:  e.Counterparty,
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Category:      string(e.Category),
		DeviceName:    e.DeviceName,
		CorrelationID: e.CorrelationID,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PostingResponse reports a committed business event.
type PostingResponse struct {
	CorrelationID string           `json:"correlation_id"`
	Entries       []*EntryResponse `json:"entries"`
	NoOp          bool             `json:"no_op,omitempty"`
	LowBalance    []string         `json:"low_balance,omitempty"`
	AuditRecordID string           `json:"audit_record_id,omitempty"`
}

// PostingFromResult converts a posting result to a response.
func PostingFromResult(res *usecase.PostingResult) *PostingResponse {
	return &PostingResponse{
		CorrelationID: res.CorrelationID,
		Entries:       EntriesFromDomain(res.Entries),
		NoOp:          res.NoOp,
		LowBalance:    res.LowBalance,
		AuditRecordID: res.AuditRecordID,
	}
}

// HistoryLineResponse is one grouped line of an account's history.
type HistoryLineResponse struct {
	CorrelationID string           `json:"correlation_id,omitempty"`
	Name          string           `json:"name"`
	Timestamp     time.Time        `json:"timestamp"`
	Net           int64            `json:"net"`
	Principal     int64            `json:"principal"`
	Fee           int64            `json:"fee"`
	Grouped       bool             `json:"grouped"`
	Entries       []*EntryResponse `json:"entries"`
}

// HistoryLinesFromUseCase converts history lines to responses.
func HistoryLinesFromUseCase(lines []*usecase.HistoryLine) []*HistoryLineResponse {
	result := make([]*HistoryLineResponse, len(lines))
	for i, l := range lines {
		result[i] = &HistoryLineResponse{
			CorrelationID: l.CorrelationID,
			Name:          l.Name,
			Timestamp:     l.Timestamp,
			Net:           l.Net,
			Principal:     l.Principal,
			Fee:           l.Fee,
			Grouped:       l.Grouped,
			Entries:       EntriesFromDomain(l.Entries),
		}
	}
	return result
}

// ShiftResponse represents an operator shift.
type ShiftResponse struct {
	ID           string     `json:"id"`
	OperatorName string     `json:"operator_name"`
	InitialCash  int64      `json:"initial_cash"`
	StartTime    time.Time  `json:"start_time"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

// ShiftFromDomain converts a domain shift to a response.
func ShiftFromDomain(s *domain.ShiftStatus) *ShiftResponse {
	return &ShiftResponse{
		ID:           s.ID,
		OperatorName: s.OperatorName,
		InitialCash:  s.InitialCash,
		StartTime:    s.StartTime,
		ClosedAt:     s.ClosedAt,
	}
}

// ReconciliationResponse represents a shift cash reconciliation.
type ReconciliationResponse struct {
	ID            string    `json:"id"`
	ShiftID       string    `json:"shift_id"`
	OperatorName  string    `json:"operator_name"`
	InitialCash   int64     `json:"initial_cash"`
	AppCashIn     int64     `json:"app_cash_in"`
	VoucherCashIn int64     `json:"voucher_cash_in"`
	ExpectedCash  int64     `json:"expected_cash"`
	ActualCash    int64     `json:"actual_cash"`
	Difference    int64     `json:"difference"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReconciliationFromDomain converts a domain reconciliation to a response.
func ReconciliationFromDomain(r *domain.ShiftReconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		ID:            r.ID,
		ShiftID:       r.ShiftID,
		OperatorName:  r.OperatorName,
		InitialCash:   r.InitialCash,
		AppCashIn:     r.AppCashIn,
		VoucherCashIn: r.VoucherCashIn,
		ExpectedCash:  r.ExpectedCash,
		ActualCash:    r.ActualCash,
		Difference:    r.Difference,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

// ReconciliationsFromDomain converts domain reconciliations to responses.
func ReconciliationsFromDomain(recs []*domain.ShiftReconciliation) []*ReconciliationResponse {
	result := make([]*ReconciliationResponse, len(recs))
	for i, r := range recs {
		result[i] = ReconciliationFromDomain(r)
	}
	return result
}

// PricingItemResponse represents one catalog product.
type PricingItemResponse struct {
	Code         string    `json:"code"`
	Label        string    `json:"label"`
	CostPrice    int64     `json:"cost_price"`
	SellingPrice int64     `json:"selling_price"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PricingItemFromDomain converts a domain pricing item to a response.
func PricingItemFromDomain(p *domain.PricingItem) *PricingItemResponse {
	return &PricingItemResponse{
		Code:         p.Code,
		Label:        p.Label,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PricingItemsFromDomain converts domain pricing items to responses.
func PricingItemsFromDomain(items []*domain.PricingItem) []*PricingItemResponse {
	result := make([]*PricingItemResponse, len(items))
	for i, p := range items {
		result[i] = PricingItemFromDomain(p)
	}
	return result
}

// ConsistencyReportResponse is the outcome of one account's ledger check.
type ConsistencyReportResponse struct {
	AccountID    string `json:"account_id"`
	AccountLabel string `json:"account_label"`
	Balance      int64  `json:"balance"`
	LastEntryID  string `json:"last_entry_id,omitempty"`
	Consistent   bool   `json:"consistent"`
	Drift        int64  `json:"drift"`
}

// ConsistencyFromUseCase converts a consistency report to a response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyReportResponse {
	return &ConsistencyReportResponse{
		AccountID:    r.AccountID,
		AccountLabel: r.AccountLabel,
		Balance:      r.Balance,
		LastEntryID:  r.LastEntryID,
		Consistent:   r.Consistent,
		Drift:        r.Drift,
	}
}

// ConsistencyReportsFromUseCase converts consistency reports to responses.
func ConsistencyReportsFromUseCase(reports []*usecase.ConsistencyReport) []*ConsistencyReportResponse {
	result := make([]*ConsistencyReportResponse, len(reports))
	for i, r := range reports {
		result[i] = ConsistencyFromUseCase(r)
	}
	return result
}

// DuplicateDetails describes the earlier record a submission resembles.
type DuplicateDetails struct {
	ExistingRecordID string `json:"existing_record_id"`
	CustomerName     string `json:"customer_name"`
	Counterparty     string `json:"counterparty"`
	FeeAmount        int64  `json:"fee_amount"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Duplicate *DuplicateDetails `json:"duplicate,omitempty"`
}
