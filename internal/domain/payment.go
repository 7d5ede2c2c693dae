package domain

import "fmt"

// PaymentMethod is how the customer pays the kiosk.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentSplit    PaymentMethod = "split"
)

// Payment describes the customer's payment. CashAmount is required for
// the split method and is the portion handed over in physical cash; the
// remainder arrives by transfer into TransferAccountID.
type Payment struct {
	Method            PaymentMethod
	CashAmount        *int64
	TransferAccountID string
}

// Breakdown is the result of the fee/split calculation. All currency math
// is integer rupiah; the cash and transfer legs always sum exactly to
// Total.
type Breakdown struct {
	Total       int64 // what the customer owes: principal + service fee
	SourceDebit int64 // what leaves the source account: principal + external fee
	Profit      int64 // service fee minus external fee
	CashLeg     int64
	TransferLeg int64
}

// ComputeBreakdown splits a customer payment across cash and transfer
// legs. It is pure and must fail before any store call: an undefined cash
// amount for a split payment, or a cash amount outside [0, total], is an
// invalid split.
func ComputeBreakdown(principal, serviceFee, externalFee int64, p Payment) (Breakdown, error) {
	if principal <= 0 {
		return Breakdown{}, ErrInvalidAmount
	}
	if serviceFee < 0 || externalFee < 0 {
		return Breakdown{}, fmt.Errorf("%w: fees cannot be negative", ErrInvalidAmount)
	}

	b := Breakdown{
		Total:       principal + serviceFee,
		SourceDebit: principal + externalFee,
		Profit:      serviceFee - externalFee,
	}

	switch p.Method {
	case PaymentCash:
		b.CashLeg = b.Total
	case PaymentTransfer:
		if p.TransferAccountID == "" {
			return Breakdown{}, fmt.Errorf("%w: transfer payment requires a receiving account", ErrInvalidSplit)
		}
		b.TransferLeg = b.Total
	case PaymentSplit:
		if p.CashAmount == nil {
			return Breakdown{}, fmt.Errorf("%w: split payment requires a cash amount", ErrInvalidSplit)
		}
		cash := *p.CashAmount
		if cash < 0 || cash > b.Total {
			return Breakdown{}, fmt.Errorf("%w: cash leg %d outside total %d", ErrInvalidSplit, cash, b.Total)
		}
		if p.TransferAccountID == "" && cash < b.Total {
			return Breakdown{}, fmt.Errorf("%w: split payment requires a receiving account", ErrInvalidSplit)
		}
		b.CashLeg = cash
		b.TransferLeg = b.Total - cash
	default:
		return Breakdown{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidSplit, p.Method)
	}

	if b.CashLeg+b.TransferLeg != b.Total {
		return Breakdown{}, ErrInvalidSplit
	}

	return b, nil
}
