package domain

import "time"

// ShiftStatus is the per-kiosk operator shift. Created when the operator
// opens the till, consulted by reconciliation, never mutated mid-shift.
type ShiftStatus struct {
	ID           string
	OperatorName string
	InitialCash  int64
	StartTime    time.Time
	ClosedAt     *time.Time
}

// ShiftReconciliation compares expected against physically counted cash.
// It is a standalone record: writing one never mutates account balances.
type ShiftReconciliation struct {
	ID            string
	ShiftID       string
	OperatorName  string
	InitialCash   int64
	AppCashIn     int64 // credits on the drawer since shift start, initial capital excluded
	VoucherCashIn int64 // operator-entered cash from voucher sales
	ExpectedCash  int64
	ActualCash    int64
	Difference    int64 // positive means cash missing, negative means surplus
	Notes         string
	CreatedAt     time.Time
}

// PricingItem is one row of the read-only PPOB price catalog.
type PricingItem struct {
	Code         string
	Label        string
	CostPrice    int64
	SellingPrice int64
	UpdatedAt    time.Time
}
