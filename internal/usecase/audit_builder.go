package usecase

import (
	"github.com/kaskita/kasledger/internal/domain"
)

// buildAuditRecord assembles the event-specific business facts for the
// audit record. Identity fields (id, correlation id, kind, device,
// timestamp) are filled by the caller.
func buildAuditRecord(ev domain.Event, result *PostingResult, pricing *domain.PricingItem) *domain.AuditRecord {
	rec := &domain.AuditRecord{Details: domain.JSON{}}

	switch e := ev.(type) {
	case *domain.TransferOutEvent:
		bd, _ := domain.ComputeBreakdown(e.Principal, e.ServiceFee, e.ExternalFee, e.Payment)
		rec.CustomerName = e.CustomerName
		rec.Amount = e.Principal
		rec.FeeAmount = e.ServiceFee
		rec.Profit = bd.Profit
		rec.Details["external_fee"] = e.ExternalFee
		rec.Details["total"] = bd.Total
		rec.Details["payment_method"] = string(e.Payment.Method)
		rec.Details["cash_leg"] = bd.CashLeg
		rec.Details["transfer_leg"] = bd.TransferLeg

	case *domain.WithdrawalEvent:
		rec.CustomerName = e.CustomerName
		rec.Amount = e.Principal
		rec.FeeAmount = e.EffectiveFee()
		rec.Profit = e.EffectiveFee()
		rec.Details["fee_mode"] = string(e.FeeMode)

	case *domain.TopUpEvent:
		cost := e.CostPrice
		selling := e.SellingPrice
		if pricing != nil {
			cost = pricing.CostPrice
			selling = pricing.SellingPrice
			rec.Counterparty = pricing.Code
		}
		rec.CustomerName = e.CustomerName
		rec.Amount = selling
		rec.Profit = selling - cost + e.Cashback
		rec.Details["cost_price"] = cost
		rec.Details["selling_price"] = selling
		rec.Details["cashback"] = e.Cashback
		rec.Details["payment_method"] = string(e.Payment.Method)

	case *domain.KJPWithdrawalEvent:
		rec.CustomerName = e.CustomerName
		rec.Amount = e.Principal
		rec.FeeAmount = e.Fee
		rec.Profit = e.Fee
		rec.Details["fee_mode"] = string(e.FeeMode)

	case *domain.EDCServiceEvent:
		rec.CustomerName = e.CustomerName
		rec.Counterparty = e.MachineName
		rec.Amount = e.Principal
		rec.FeeAmount = e.Fee
		rec.Profit = e.Fee
		rec.Details["forced"] = e.Force

	case *domain.InternalTransferEvent:
		rec.Amount = e.Amount
		rec.FeeAmount = e.Fee
		if e.Fee > 0 {
			rec.Details["fee_side"] = string(e.FeeSide)
		}

	case *domain.CapitalInjectionEvent:
		rec.Amount = e.Amount
		rec.Details["note"] = e.Note
		rec.Details["initial"] = e.Initial

	case *domain.CapitalWithdrawalEvent:
		rec.Amount = e.Amount
		rec.Details["note"] = e.Note

	case *domain.BalanceAdjustmentEvent:
		rec.Details["actual_balance"] = e.ActualBalance
		rec.Details["note"] = e.Note
		if len(result.Entries) == 1 {
			rec.Amount = result.Entries[0].Amount
			rec.Details["direction"] = string(result.Entries[0].Type)
		}

	case *domain.SettlementEvent:
		// The MDR deduction exists only here: the debit and credit legs
		// differ by exactly the fee, which is never a ledger leg itself.
		if len(result.Entries) == 2 {
			balance := result.Entries[0].Amount
			net := result.Entries[1].Amount
			rec.Amount = balance
			rec.FeeAmount = balance - net
			rec.Details["net_amount"] = net
		}
		rec.Details["rate"] = e.EffectiveRate().String()
	}

	return rec
}
