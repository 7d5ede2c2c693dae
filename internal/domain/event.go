package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EventKind identifies a business event type. The set is closed: every
// kind has its own strongly typed input and a dedicated leg-building
// function in the composer.
type EventKind string

const (
	EventTransferOut       EventKind = "transfer_out"
	EventWithdrawal        EventKind = "withdrawal"
	EventTopUp             EventKind = "topup"
	EventKJPWithdrawal     EventKind = "kjp_withdrawal"
	EventEDCService        EventKind = "edc_service"
	EventInternalTransfer  EventKind = "internal_transfer"
	EventCapitalInjection  EventKind = "capital_injection"
	EventCapitalWithdrawal EventKind = "capital_withdrawal"
	EventBalanceAdjustment EventKind = "balance_adjustment"
	EventSettlement        EventKind = "settlement"
)

// Event is one customer-facing business event. Validate runs before any
// store call; a validation failure never produces partial writes.
type Event interface {
	Kind() EventKind
	Validate() error
}

// FeeMode says how the service fee is collected on withdrawal-style
// events.
type FeeMode string

const (
	// FeeDeducted: the fee is taken out of the cash handed to the customer.
	FeeDeducted FeeMode = "deducted"
	// FeeSeparate: the customer pays the fee on top, it becomes service income.
	FeeSeparate FeeMode = "separate"
)

func validFeeMode(m FeeMode) bool {
	return m == FeeDeducted || m == FeeSeparate
}

// TransferOutEvent: the kiosk sends money on behalf of a walk-in
// customer. The source account is debited principal plus any external
// bank fee; the customer's payment flows into the drawer and/or a
// transfer-receiving account.
type TransferOutEvent struct {
	CustomerName    string
	SourceAccountID string
	Principal       int64
	ServiceFee      int64
	ExternalFee     int64
	Payment         Payment
}

func (e *TransferOutEvent) Kind() EventKind { return EventTransferOut }

func (e *TransferOutEvent) Validate() error {
	if e.SourceAccountID == "" {
		return fmt.Errorf("%w: missing source account", ErrAccountNotFound)
	}
	if err := ValidateAmount(e.Principal); err != nil {
		return err
	}
	_, err := ComputeBreakdown(e.Principal, e.ServiceFee, e.ExternalFee, e.Payment)
	return err
}

// WithdrawalEvent: the customer withdraws cash; the electronic funds
// arrive in DestinationAccountID. A zero ServiceFee means "use the tiered
// fee table".
type WithdrawalEvent struct {
	CustomerName         string
	DestinationAccountID string
	Principal            int64
	ServiceFee           int64
	FeeMode              FeeMode
}

func (e *WithdrawalEvent) Kind() EventKind { return EventWithdrawal }

// EffectiveFee resolves the service fee, falling back to the tiered table.
func (e *WithdrawalEvent) EffectiveFee() int64 {
	if e.ServiceFee > 0 {
		return e.ServiceFee
	}
	return WithdrawalServiceFee(e.Principal)
}

func (e *WithdrawalEvent) Validate() error {
	if e.DestinationAccountID == "" {
		return fmt.Errorf("%w: missing destination account", ErrAccountNotFound)
	}
	if err := ValidateAmount(e.Principal); err != nil {
		return err
	}
	if !validFeeMode(e.FeeMode) {
		return fmt.Errorf("%w: unknown fee mode %q", ErrInvalidSplit, e.FeeMode)
	}
	if e.FeeMode == FeeDeducted && e.Principal-e.EffectiveFee() <= 0 {
		return fmt.Errorf("%w: fee exceeds withdrawal amount", ErrInvalidAmount)
	}
	return nil
}

// TopUpEvent covers wallet top-ups, bill payments and PPOB purchases: a
// deposit account pays the wholesale cost, the customer pays the retail
// price. When ProductCode is set the prices come from the pricing
// catalog; otherwise CostPrice/SellingPrice must be supplied.
type TopUpEvent struct {
	CustomerName    string
	SourceAccountID string
	ProductCode     string
	CostPrice       int64
	SellingPrice    int64
	Cashback        int64
	Payment         Payment
}

func (e *TopUpEvent) Kind() EventKind { return EventTopUp }

func (e *TopUpEvent) Validate() error {
	if e.SourceAccountID == "" {
		return fmt.Errorf("%w: missing deposit account", ErrAccountNotFound)
	}
	if e.Cashback < 0 {
		return fmt.Errorf("%w: cashback cannot be negative", ErrInvalidAmount)
	}
	if e.ProductCode == "" {
		if e.CostPrice <= 0 || e.SellingPrice <= 0 {
			return fmt.Errorf("%w: explicit prices required without a product code", ErrInvalidAmount)
		}
		if err := ValidateAmount(e.SellingPrice); err != nil {
			return err
		}
		_, err := ComputeBreakdown(e.SellingPrice, 0, 0, e.Payment)
		return err
	}
	return nil
}

// KJPWithdrawalEvent: a card-based social-aid withdrawal. Both legs land
// on the same cash account (the drawer unless CashAccountID overrides it).
type KJPWithdrawalEvent struct {
	CustomerName  string
	CashAccountID string // empty means the cash drawer
	Principal     int64
	Fee           int64
	FeeMode       FeeMode
}

func (e *KJPWithdrawalEvent) Kind() EventKind { return EventKJPWithdrawal }

func (e *KJPWithdrawalEvent) Validate() error {
	if err := ValidateAmount(e.Principal); err != nil {
		return err
	}
	if e.Fee < 0 {
		return fmt.Errorf("%w: fee cannot be negative", ErrInvalidAmount)
	}
	if !validFeeMode(e.FeeMode) {
		return fmt.Errorf("%w: unknown fee mode %q", ErrInvalidSplit, e.FeeMode)
	}
	if e.FeeMode == FeeDeducted && e.Principal-e.Fee <= 0 {
		return fmt.Errorf("%w: fee exceeds withdrawal amount", ErrInvalidAmount)
	}
	return nil
}

// EDCServiceEvent: a manual card-swipe (cash-out) service. These lack a
// strong external reference, so they pass the duplicate guard first;
// Force overrides a possible-duplicate signal.
type EDCServiceEvent struct {
	CustomerName      string
	MachineName       string
	MerchantAccountID string
	Principal         int64
	Fee               int64
	Force             bool
}

func (e *EDCServiceEvent) Kind() EventKind { return EventEDCService }

func (e *EDCServiceEvent) Validate() error {
	if e.MerchantAccountID == "" {
		return fmt.Errorf("%w: missing merchant account", ErrAccountNotFound)
	}
	if err := ValidateAmount(e.Principal); err != nil {
		return err
	}
	if e.Fee < 0 {
		return fmt.Errorf("%w: fee cannot be negative", ErrInvalidAmount)
	}
	return nil
}

// FeeSide says which account of an internal transfer carries the
// transfer fee.
type FeeSide string

const (
	FeeSideSource      FeeSide = "source"
	FeeSideDestination FeeSide = "destination"
)

// InternalTransferEvent moves money between two own accounts, with an
// optional fee leg charged to whichever side the operator designates.
type InternalTransferEvent struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               int64
	Fee                  int64
	FeeSide              FeeSide
}

func (e *InternalTransferEvent) Kind() EventKind { return EventInternalTransfer }

func (e *InternalTransferEvent) Validate() error {
	if e.SourceAccountID == "" || e.DestinationAccountID == "" {
		return fmt.Errorf("%w: both accounts required", ErrAccountNotFound)
	}
	if e.SourceAccountID == e.DestinationAccountID {
		return ErrSameAccount
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.Fee < 0 {
		return fmt.Errorf("%w: fee cannot be negative", ErrInvalidAmount)
	}
	if e.Fee > 0 && e.FeeSide != FeeSideSource && e.FeeSide != FeeSideDestination {
		return fmt.Errorf("%w: fee side must be source or destination", ErrInvalidSplit)
	}
	return nil
}

// CapitalInjectionEvent adds owner capital to a single account. An empty
// AccountID targets the cash drawer.
type CapitalInjectionEvent struct {
	AccountID string
	Amount    int64
	Note      string
	Initial   bool // marks shift-opening capital, excluded from cash-in totals
}

func (e *CapitalInjectionEvent) Kind() EventKind { return EventCapitalInjection }

func (e *CapitalInjectionEvent) Validate() error {
	return ValidateAmount(e.Amount)
}

// CapitalWithdrawalEvent removes owner capital from a single account.
type CapitalWithdrawalEvent struct {
	AccountID string
	Amount    int64
	Note      string
}

func (e *CapitalWithdrawalEvent) Kind() EventKind { return EventCapitalWithdrawal }

func (e *CapitalWithdrawalEvent) Validate() error {
	if e.AccountID == "" {
		return fmt.Errorf("%w: missing account", ErrAccountNotFound)
	}
	return ValidateAmount(e.Amount)
}

// BalanceAdjustmentEvent corrects an account to its actual balance. The
// sign and amount are derived from actual minus current at commit time; a
// zero difference is a no-op.
type BalanceAdjustmentEvent struct {
	AccountID     string
	ActualBalance int64
	Note          string
}

func (e *BalanceAdjustmentEvent) Kind() EventKind { return EventBalanceAdjustment }

func (e *BalanceAdjustmentEvent) Validate() error {
	if e.AccountID == "" {
		return fmt.Errorf("%w: missing account", ErrAccountNotFound)
	}
	if e.ActualBalance < 0 {
		return fmt.Errorf("%w: actual balance cannot be negative", ErrInvalidAmount)
	}
	return nil
}

// SettlementEvent flushes a merchant account's entire balance, net of the
// MDR rate, into its configured destination. The debit amount is the
// balance as read inside the transaction, never a caller-supplied figure.
type SettlementEvent struct {
	MerchantAccountID string
	Rate              decimal.Decimal // zero value means DefaultMDRRate
}

func (e *SettlementEvent) Kind() EventKind { return EventSettlement }

// EffectiveRate resolves the MDR rate, defaulting when unset.
func (e *SettlementEvent) EffectiveRate() decimal.Decimal {
	if e.Rate.IsZero() {
		return DefaultMDRRate
	}
	return e.Rate
}

func (e *SettlementEvent) Validate() error {
	if e.MerchantAccountID == "" {
		return fmt.Errorf("%w: missing merchant account", ErrAccountNotFound)
	}
	if e.Rate.IsNegative() || e.EffectiveRate().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: settlement rate out of range", ErrInvalidAmount)
	}
	return nil
}
