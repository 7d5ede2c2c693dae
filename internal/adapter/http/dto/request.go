package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

// CreateAccountRequest represents a request to create a kas account.
type CreateAccountRequest struct {
	Label               string `json:"label"`
	Type                string `json:"type"`
	MinimumBalance      int64  `json:"minimum_balance"`
	SettlementAccountID string `json:"settlement_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Label:               r.Label,
		Type:                domain.AccountType(r.Type),
		MinimumBalance:      r.MinimumBalance,
		SettlementAccountID: r.SettlementAccountID,
	}
}

// PaymentRequest describes how the customer pays: cash, transfer, or a
// split of both.
type PaymentRequest struct {
	Method            string `json:"method"`
	CashAmount        *int64 `json:"cash_amount,omitempty"`
	TransferAccountID string `json:"transfer_account_id,omitempty"`
}

// ToDomain converts to a domain payment.
func (p PaymentRequest) ToDomain() domain.Payment {
	return domain.Payment{
		Method:            domain.PaymentMethod(p.Method),
		CashAmount:        p.CashAmount,
		TransferAccountID: p.TransferAccountID,
	}
}

// TransferOutRequest represents an outbound transfer for a customer.
type TransferOutRequest struct {
	CustomerName    string         `json:"customer_name"`
	SourceAccountID string         `json:"source_account_id"`
	Principal       int64          `json:"principal"`
	ServiceFee      int64          `json:"service_fee"`
	ExternalFee     int64          `json:"external_fee"`
	Payment         PaymentRequest `json:"payment"`
}

// ToEvent converts to a domain event.
func (r *TransferOutRequest) ToEvent() domain.Event {
	return &domain.TransferOutEvent{
		CustomerName:    r.CustomerName,
		SourceAccountID: r.SourceAccountID,
		Principal:       r.Principal,
		ServiceFee:      r.ServiceFee,
		ExternalFee:     r.ExternalFee,
		Payment:         r.Payment.ToDomain(),
	}
}

// WithdrawalRequest represents a customer cash withdrawal. A zero
// service fee falls back to the tiered fee table.
type WithdrawalRequest struct {
	CustomerName         string `json:"customer_name"`
	DestinationAccountID string `json:"destination_account_id"`
	Principal            int64  `json:"principal"`
	ServiceFee           int64  `json:"service_fee"`
	FeeMode              string `json:"fee_mode"`
}

// ToEvent converts to a domain event.
func (r *WithdrawalRequest) ToEvent() domain.Event {
	return &domain.WithdrawalEvent{
		CustomerName:         r.CustomerName,
		DestinationAccountID: r.DestinationAccountID,
		Principal:            r.Principal,
		ServiceFee:           r.ServiceFee,
		FeeMode:              domain.FeeMode(r.FeeMode),
	}
}

// TopUpRequest represents a wallet top-up, bill payment or PPOB sale.
// Either a product code or explicit prices must be supplied.
type TopUpRequest struct {
	CustomerName    string         `json:"customer_name"`
	SourceAccountID string         `json:"source_account_id"`
	ProductCode     string         `json:"product_code,omitempty"`
	CostPrice       int64          `json:"cost_price,omitempty"`
	SellingPrice    int64          `json:"selling_price,omitempty"`
	Cashback        int64          `json:"cashback,omitempty"`
	Payment         PaymentRequest `json:"payment"`
}

// ToEvent converts to a domain event.
func (r *TopUpRequest) ToEvent() domain.Event {
	return &domain.TopUpEvent{
		CustomerName:    r.CustomerName,
		SourceAccountID: r.SourceAccountID,
		ProductCode:     r.ProductCode,
		CostPrice:       r.CostPrice,
		SellingPrice:    r.SellingPrice,
		Cashback:        r.Cashback,
		Payment:         r.Payment.ToDomain(),
	}
}

// KJPWithdrawalRequest represents a card-based social-aid withdrawal.
type KJPWithdrawalRequest struct {
	CustomerName  string `json:"customer_name"`
	CashAccountID string `json:"cash_account_id,omitempty"`
	Principal     int64  `json:"principal"`
	Fee           int64  `json:"fee"`
	FeeMode       string `json:"fee_mode"`
}

// ToEvent converts to a domain event.
func (r *KJPWithdrawalRequest) ToEvent() domain.Event {
	return &domain.KJPWithdrawalEvent{
		CustomerName:  r.CustomerName,
		CashAccountID: r.CashAccountID,
		Principal:     r.Principal,
		Fee:           r.Fee,
		FeeMode:       domain.FeeMode(r.FeeMode),
	}
}

// EDCServiceRequest represents a manual card-swipe cash-out. Force
// overrides a possible-duplicate signal.
type EDCServiceRequest struct {
	CustomerName      string `json:"customer_name"`
	MachineName       string `json:"machine_name"`
	MerchantAccountID string `json:"merchant_account_id"`
	Principal         int64  `json:"principal"`
	Fee               int64  `json:"fee"`
	Force             bool   `json:"force,omitempty"`
}

// ToEvent converts to a domain event.
func (r *EDCServiceRequest) ToEvent() domain.Event {
	return &domain.EDCServiceEvent{
		CustomerName:      r.CustomerName,
		MachineName:       r.MachineName,
		MerchantAccountID: r.MerchantAccountID,
		Principal:         r.Principal,
		Fee:               r.Fee,
		Force:             r.Force,
	}
}

// InternalTransferRequest moves money between two own accounts.
type InternalTransferRequest struct {
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               int64  `json:"amount"`
	Fee                  int64  `json:"fee,omitempty"`
	FeeSide              string `json:"fee_side,omitempty"`
}

// ToEvent converts to a domain event.
func (r *InternalTransferRequest) ToEvent() domain.Event {
	return &domain.InternalTransferEvent{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		Fee:                  r.Fee,
		FeeSide:              domain.FeeSide(r.FeeSide),
	}
}

// CapitalInjectionRequest adds owner capital. An empty account id
// targets the cash drawer.
type CapitalInjectionRequest struct {
	AccountID string `json:"account_id,omitempty"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note,omitempty"`
	Initial   bool   `json:"initial,omitempty"`
}

// ToEvent converts to a domain event.
func (r *CapitalInjectionRequest) ToEvent() domain.Event {
	return &domain.CapitalInjectionEvent{
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Note:      r.Note,
		Initial:   r.Initial,
	}
}

// CapitalWithdrawalRequest removes owner capital from one account.
type CapitalWithdrawalRequest struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note,omitempty"`
}

// ToEvent converts to a domain event.
func (r *CapitalWithdrawalRequest) ToEvent() domain.Event {
	return &domain.CapitalWithdrawalEvent{
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Note:      r.Note,
	}
}

// BalanceAdjustmentRequest corrects an account to its counted balance.
type BalanceAdjustmentRequest struct {
	AccountID     string `json:"account_id"`
	ActualBalance int64  `json:"actual_balance"`
	Note          string `json:"note,omitempty"`
}

// ToEvent converts to a domain event.
func (r *BalanceAdjustmentRequest) ToEvent() domain.Event {
	return &domain.BalanceAdjustmentEvent{
		AccountID:     r.AccountID,
		ActualBalance: r.ActualBalance,
		Note:          r.Note,
	}
}

// SettlementRequest flushes a merchant account into its settlement
// destination. A zero rate means the default MDR rate.
type SettlementRequest struct {
	MerchantAccountID string          `json:"merchant_account_id"`
	Rate              decimal.Decimal `json:"rate,omitempty"`
}

// ToEvent converts to a domain event.
func (r *SettlementRequest) ToEvent() domain.Event {
	return &domain.SettlementEvent{
		MerchantAccountID: r.MerchantAccountID,
		Rate:              r.Rate,
	}
}

// StartShiftRequest opens an operator shift.
type StartShiftRequest struct {
	OperatorName string `json:"operator_name"`
	InitialCash  int64  `json:"initial_cash"`
	PostCapital  bool   `json:"post_capital,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *StartShiftRequest) ToUseCaseInput() usecase.StartShiftInput {
	return usecase.StartShiftInput{
		OperatorName: r.OperatorName,
		InitialCash:  r.InitialCash,
		PostCapital:  r.PostCapital,
	}
}

// ReconcileShiftRequest carries the operator-entered closing figures.
type ReconcileShiftRequest struct {
	VoucherCashIn int64  `json:"voucher_cash_in"`
	ActualCash    int64  `json:"actual_cash"`
	Notes         string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReconcileShiftRequest) ToUseCaseInput() usecase.ReconcileShiftInput {
	return usecase.ReconcileShiftInput{
		VoucherCashIn: r.VoucherCashIn,
		ActualCash:    r.ActualCash,
		Notes:         r.Notes,
	}
}
