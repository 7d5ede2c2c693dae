package domain

import "github.com/shopspring/decimal"

// feeTier is one row of the tiered withdrawal fee table.
type feeTier struct {
	upTo int64
	fee  int64
}

var withdrawalFeeTiers = []feeTier{
	{upTo: 500_000, fee: 3_000},
	{upTo: 1_000_000, fee: 5_000},
	{upTo: 2_000_000, fee: 7_000},
	{upTo: 5_000_000, fee: 10_000},
}

// withdrawalFeeTop applies above the last tier.
const withdrawalFeeTop = 15_000

// WithdrawalServiceFee returns the service fee for a cash withdrawal of
// the given amount, per the tiered fee table.
func WithdrawalServiceFee(amount int64) int64 {
	for _, t := range withdrawalFeeTiers {
		if amount <= t.upTo {
			return t.fee
		}
	}
	return withdrawalFeeTop
}

// DefaultMDRRate is the fixed merchant discount rate deducted during
// settlement.
var DefaultMDRRate = decimal.RequireFromString("0.0015")

// MDRFee computes round(balance * rate). The fee is an external cost: it
// is deducted arithmetically and recorded on the audit record, never
// written as a ledger leg.
func MDRFee(balance int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(balance).Mul(rate).Round(0).IntPart()
}
