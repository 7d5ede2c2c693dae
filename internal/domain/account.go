package domain

import (
	"time"
)

// AccountType classifies a kas account.
type AccountType string

const (
	AccountTypeCash     AccountType = "cash"
	AccountTypeBank     AccountType = "bank"
	AccountTypeEWallet  AccountType = "ewallet"
	AccountTypePPOB     AccountType = "ppob"
	AccountTypeMerchant AccountType = "merchant"
)

// CashDrawerLabel is the well-known label of the physical cash drawer.
// Every leg settled in physical cash goes through this account. It is
// created on demand, inside the same transaction as the event that needs
// it, so a failed event never leaves a half-created drawer behind.
const CashDrawerLabel = "Laci"

// KasAccount is an internally tracked pool of money: the cash drawer, a
// bank balance, an e-wallet, a PPOB deposit or a merchant settlement
// holding. Balance is integer rupiah and is always the sum of the signed
// amounts of the account's ledger entries.
type KasAccount struct {
	ID                  string
	Label               string
	Type                AccountType
	Balance             int64
	MinimumBalance      int64
	SettlementAccountID string // destination for settlement, merchant accounts only
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ValidateDebit checks that debiting amount would not drive the balance
// negative. Persisted balances are never negative.
func (a *KasAccount) ValidateDebit(amount int64) error {
	if a.Balance-amount < 0 {
		return &InsufficientBalanceError{
			AccountLabel: a.Label,
			Shortfall:    amount - a.Balance,
		}
	}
	return nil
}

// BelowMinimum reports whether the balance sits under the advisory
// low-balance threshold. It never blocks an operation.
func (a *KasAccount) BelowMinimum() bool {
	return a.MinimumBalance > 0 && a.Balance < a.MinimumBalance
}

func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeEWallet, AccountTypePPOB, AccountTypeMerchant:
		return true
	}
	return false
}
