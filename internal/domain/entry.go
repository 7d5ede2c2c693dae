package domain

import (
	"time"
)

// EntryType marks the direction of a ledger entry.
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// Category tags an entry for reporting and grouped history views. The
// category set is shared between the composer (which writes legs) and the
// history reconstructor (which regroups them), so both sides agree on
// which legs belong together and which carry fees.
type Category string

const (
	CategoryCustomerTransferDebit Category = "customer_transfer_debit"
	CategoryCustomerTransferFee   Category = "customer_transfer_fee"
	CategoryCashIn                Category = "cash_in"
	CategoryCashOut               Category = "cash_out"
	CategoryTransferIn            Category = "transfer_in"
	CategoryWithdrawalCredit      Category = "withdrawal_credit"
	CategoryPPOBCost              Category = "ppob_cost"
	CategoryPPOBCashback          Category = "ppob_cashback"
	CategoryServiceFeeIncome      Category = "service_fee_income"
	CategoryEDCCredit             Category = "edc_credit"
	CategoryInternalOut           Category = "internal_out"
	CategoryInternalIn            Category = "internal_in"
	CategoryOperational           Category = "operational"
	CategorySettlementDebit       Category = "settlement_debit"
	CategorySettlementCredit      Category = "settlement_credit"
	CategoryInitialCapital        Category = "initial_capital"
	CategoryCapitalInjection      Category = "capital_injection"
	CategoryCapitalWithdrawal     Category = "capital_withdrawal"
	CategoryAdjustment            Category = "balance_adjustment"
)

// Groupable reports whether entries of this category are merged by
// correlation id into one display line: customer transfer, internal
// transfer, settlement and operational-fee legs. The internal categories
// must be here so a destination-side fee leg folds into its principal
// leg instead of showing as a nameless fee-only row.
func (c Category) Groupable() bool {
	switch c {
	case CategoryCustomerTransferDebit, CategoryCustomerTransferFee,
		CategoryInternalOut, CategoryInternalIn,
		CategorySettlementDebit, CategorySettlementCredit,
		CategoryOperational:
		return true
	}
	return false
}

// IsFee reports whether the category represents a fee leg rather than a
// principal movement.
func (c Category) IsFee() bool {
	return c == CategoryCustomerTransferFee || c == CategoryOperational
}

// LedgerEntry is one signed balance movement on one account, immutable
// once written. BalanceBefore must equal the account balance immediately
// before the entry was applied.
type LedgerEntry struct {
	ID             string
	AccountID      string
	Type           EntryType
	Name           string
	Counterparty   string
	Amount         int64 // always positive, direction comes from Type
	BalanceBefore  int64
	BalanceAfter   int64
	Category       Category
	DeviceName     string
	CorrelationID  string // shared by all legs of one business event
	AccountVersion int64
	CreatedAt      time.Time
}

// Signed returns the amount with its direction applied: positive for
// credits, negative for debits.
func (e *LedgerEntry) Signed() int64 {
	if e.Type == EntryDebit {
		return -e.Amount
	}
	return e.Amount
}

// Consistent checks the balance arithmetic invariant of the entry.
func (e *LedgerEntry) Consistent() bool {
	return e.BalanceAfter == e.BalanceBefore+e.Signed()
}
