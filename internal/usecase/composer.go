package usecase

import (
	"fmt"

	"github.com/kaskita/kasledger/internal/domain"
)

// LegPlan is one planned balance movement, produced by the composer
// before entries exist. The ordered leg list of one event is a single
// coherent economic movement: it commits entirely or not at all.
type LegPlan struct {
	AccountID    string
	Type         domain.EntryType
	Amount       int64
	Name         string
	Counterparty string
	Category     domain.Category
}

// composeContext carries everything leg building needs beyond the event
// itself: the freshly locked accounts, the resolved cash drawer and the
// catalog price when the event references a product code.
type composeContext struct {
	cashDrawerID string
	accounts     map[string]*domain.KasAccount
	pricing      *domain.PricingItem
}

func (cc *composeContext) account(id string) (*domain.KasAccount, error) {
	acc := cc.accounts[id]
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// eventAccountRefs returns the ids of every account the event touches,
// plus whether the cash drawer is involved. The posting core locks all
// of them, sorted, before composing legs.
func eventAccountRefs(ev domain.Event, pricing *domain.PricingItem) (ids []string, needsDrawer bool) {
	switch e := ev.(type) {
	case *domain.TransferOutEvent:
		ids = append(ids, e.SourceAccountID)
		bd, _ := domain.ComputeBreakdown(e.Principal, e.ServiceFee, e.ExternalFee, e.Payment)
		if bd.CashLeg > 0 {
			needsDrawer = true
		}
		if bd.TransferLeg > 0 {
			ids = append(ids, e.Payment.TransferAccountID)
		}

	case *domain.WithdrawalEvent:
		ids = append(ids, e.DestinationAccountID)
		needsDrawer = true

	case *domain.TopUpEvent:
		ids = append(ids, e.SourceAccountID)
		selling := e.SellingPrice
		if pricing != nil {
			selling = pricing.SellingPrice
		}
		bd, _ := domain.ComputeBreakdown(selling, 0, 0, e.Payment)
		if bd.CashLeg > 0 {
			needsDrawer = true
		}
		if bd.TransferLeg > 0 {
			ids = append(ids, e.Payment.TransferAccountID)
		}

	case *domain.KJPWithdrawalEvent:
		if e.CashAccountID != "" {
			ids = append(ids, e.CashAccountID)
		} else {
			needsDrawer = true
		}

	case *domain.EDCServiceEvent:
		ids = append(ids, e.MerchantAccountID)
		needsDrawer = true

	case *domain.InternalTransferEvent:
		ids = append(ids, e.SourceAccountID, e.DestinationAccountID)

	case *domain.CapitalInjectionEvent:
		if e.AccountID != "" {
			ids = append(ids, e.AccountID)
		} else {
			needsDrawer = true
		}

	case *domain.CapitalWithdrawalEvent:
		ids = append(ids, e.AccountID)

	case *domain.BalanceAdjustmentEvent:
		ids = append(ids, e.AccountID)

	case *domain.SettlementEvent:
		// The destination is only known from the merchant record; the
		// posting core appends it after its fail-fast pre-read.
		ids = append(ids, e.MerchantAccountID)
	}

	return ids, needsDrawer
}

// composeLegs builds the ordered leg list for a business event against
// freshly read account state. It is the single place that knows how each
// event kind decomposes into debits and credits. An empty leg list with a
// nil error means the event is a no-op (balance already correct).
func composeLegs(ev domain.Event, cc *composeContext) ([]LegPlan, error) {
	switch e := ev.(type) {
	case *domain.TransferOutEvent:
		return composeTransferOut(e, cc)
	case *domain.WithdrawalEvent:
		return composeWithdrawal(e, cc)
	case *domain.TopUpEvent:
		return composeTopUp(e, cc)
	case *domain.KJPWithdrawalEvent:
		return composeKJPWithdrawal(e, cc)
	case *domain.EDCServiceEvent:
		return composeEDCService(e, cc)
	case *domain.InternalTransferEvent:
		return composeInternalTransfer(e, cc)
	case *domain.CapitalInjectionEvent:
		return composeCapitalInjection(e, cc)
	case *domain.CapitalWithdrawalEvent:
		return composeCapitalWithdrawal(e)
	case *domain.BalanceAdjustmentEvent:
		return composeBalanceAdjustment(e, cc)
	case *domain.SettlementEvent:
		return composeSettlement(e, cc)
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind())
	}
}

func composeTransferOut(e *domain.TransferOutEvent, cc *composeContext) ([]LegPlan, error) {
	bd, err := domain.ComputeBreakdown(e.Principal, e.ServiceFee, e.ExternalFee, e.Payment)
	if err != nil {
		return nil, err
	}

	legs := []LegPlan{{
		AccountID:    e.SourceAccountID,
		Type:         domain.EntryDebit,
		Amount:       e.Principal,
		Name:         "Transfer an. " + e.CustomerName,
		Counterparty: e.CustomerName,
		Category:     domain.CategoryCustomerTransferDebit,
	}}

	if e.ExternalFee > 0 {
		legs = append(legs, LegPlan{
			AccountID:    e.SourceAccountID,
			Type:         domain.EntryDebit,
			Amount:       e.ExternalFee,
			Name:         "Biaya admin transfer an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCustomerTransferFee,
		})
	}

	if bd.CashLeg > 0 {
		legs = append(legs, LegPlan{
			AccountID:    cc.cashDrawerID,
			Type:         domain.EntryCredit,
			Amount:       bd.CashLeg,
			Name:         "Pembayaran tunai transfer an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCashIn,
		})
	}

	if bd.TransferLeg > 0 {
		legs = append(legs, LegPlan{
			AccountID:    e.Payment.TransferAccountID,
			Type:         domain.EntryCredit,
			Amount:       bd.TransferLeg,
			Name:         "Pembayaran via transfer an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryTransferIn,
		})
	}

	return legs, nil
}

func composeWithdrawal(e *domain.WithdrawalEvent, cc *composeContext) ([]LegPlan, error) {
	fee := e.EffectiveFee()

	// Fee deducted: the customer transfers exactly the principal and
	// walks away with principal minus fee in cash. Fee separate: the
	// transfer covers principal plus fee, the full principal is handed
	// out, and the fee stays in the destination account as profit.
	credited := e.Principal
	cashOut := e.Principal - fee
	if e.FeeMode == domain.FeeSeparate {
		credited = e.Principal + fee
		cashOut = e.Principal
	}

	return []LegPlan{
		{
			AccountID:    e.DestinationAccountID,
			Type:         domain.EntryCredit,
			Amount:       credited,
			Name:         "Tarik tunai an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryWithdrawalCredit,
		},
		{
			AccountID:    cc.cashDrawerID,
			Type:         domain.EntryDebit,
			Amount:       cashOut,
			Name:         "Uang tunai tarik tunai an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCashOut,
		},
	}, nil
}

func composeTopUp(e *domain.TopUpEvent, cc *composeContext) ([]LegPlan, error) {
	cost := e.CostPrice
	selling := e.SellingPrice
	product := e.ProductCode
	if e.ProductCode != "" {
		if cc.pricing == nil {
			return nil, domain.ErrProductNotFound
		}
		cost = cc.pricing.CostPrice
		selling = cc.pricing.SellingPrice
		product = cc.pricing.Code
	}
	if product == "" {
		product = "tagihan"
	}

	bd, err := domain.ComputeBreakdown(selling, 0, 0, e.Payment)
	if err != nil {
		return nil, err
	}

	legs := []LegPlan{{
		AccountID:    e.SourceAccountID,
		Type:         domain.EntryDebit,
		Amount:       cost,
		Name:         "Pembelian " + product + " an. " + e.CustomerName,
		Counterparty: e.CustomerName,
		Category:     domain.CategoryPPOBCost,
	}}

	if e.Cashback > 0 {
		legs = append(legs, LegPlan{
			AccountID:    e.SourceAccountID,
			Type:         domain.EntryCredit,
			Amount:       e.Cashback,
			Name:         "Cashback " + product,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryPPOBCashback,
		})
	}

	if bd.CashLeg > 0 {
		legs = append(legs, LegPlan{
			AccountID:    cc.cashDrawerID,
			Type:         domain.EntryCredit,
			Amount:       bd.CashLeg,
			Name:         "Pembayaran tunai " + product + " an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCashIn,
		})
	}

	if bd.TransferLeg > 0 {
		legs = append(legs, LegPlan{
			AccountID:    e.Payment.TransferAccountID,
			Type:         domain.EntryCredit,
			Amount:       bd.TransferLeg,
			Name:         "Pembayaran via transfer " + product + " an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryTransferIn,
		})
	}

	return legs, nil
}

func composeKJPWithdrawal(e *domain.KJPWithdrawalEvent, cc *composeContext) ([]LegPlan, error) {
	cashAccountID := e.CashAccountID
	if cashAccountID == "" {
		cashAccountID = cc.cashDrawerID
	}

	if e.FeeMode == domain.FeeDeducted {
		// One leg: the drawer hands out principal minus fee.
		return []LegPlan{{
			AccountID:    cashAccountID,
			Type:         domain.EntryDebit,
			Amount:       e.Principal - e.Fee,
			Name:         "Tarik KJP an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCashOut,
		}}, nil
	}

	// Fee paid separately: full principal out, fee back in as service
	// income, both against the same cash account.
	return []LegPlan{
		{
			AccountID:    cashAccountID,
			Type:         domain.EntryDebit,
			Amount:       e.Principal,
			Name:         "Tarik KJP an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryCashOut,
		},
		{
			AccountID:    cashAccountID,
			Type:         domain.EntryCredit,
			Amount:       e.Fee,
			Name:         "Jasa tarik KJP an. " + e.CustomerName,
			Counterparty: e.CustomerName,
			Category:     domain.CategoryServiceFeeIncome,
		},
	}, nil
}

func composeEDCService(e *domain.EDCServiceEvent, cc *composeContext) ([]LegPlan, error) {
	return []LegPlan{
		{
			AccountID:    cc.cashDrawerID,
			Type:         domain.EntryDebit,
			Amount:       e.Principal,
			Name:         "Gesek tunai an. " + e.CustomerName,
			Counterparty: e.MachineName,
			Category:     domain.CategoryCashOut,
		},
		{
			AccountID:    e.MerchantAccountID,
			Type:         domain.EntryCredit,
			Amount:       e.Principal + e.Fee,
			Name:         "Gesek tunai an. " + e.CustomerName,
			Counterparty: e.MachineName,
			Category:     domain.CategoryEDCCredit,
		},
	}, nil
}

func composeInternalTransfer(e *domain.InternalTransferEvent, cc *composeContext) ([]LegPlan, error) {
	src, err := cc.account(e.SourceAccountID)
	if err != nil {
		return nil, err
	}
	dst, err := cc.account(e.DestinationAccountID)
	if err != nil {
		return nil, err
	}

	legs := []LegPlan{
		{
			AccountID:    e.SourceAccountID,
			Type:         domain.EntryDebit,
			Amount:       e.Amount,
			Name:         "Pindah saldo ke " + dst.Label,
			Counterparty: dst.Label,
			Category:     domain.CategoryInternalOut,
		},
		{
			AccountID:    e.DestinationAccountID,
			Type:         domain.EntryCredit,
			Amount:       e.Amount,
			Name:         "Pindah saldo dari " + src.Label,
			Counterparty: src.Label,
			Category:     domain.CategoryInternalIn,
		},
	}

	if e.Fee > 0 {
		feeAccountID := e.SourceAccountID
		feeCounterparty := dst.Label
		if e.FeeSide == domain.FeeSideDestination {
			feeAccountID = e.DestinationAccountID
			feeCounterparty = src.Label
		}
		legs = append(legs, LegPlan{
			AccountID:    feeAccountID,
			Type:         domain.EntryDebit,
			Amount:       e.Fee,
			Name:         "Biaya pindah saldo",
			Counterparty: feeCounterparty,
			Category:     domain.CategoryOperational,
		})
	}

	return legs, nil
}

func composeCapitalInjection(e *domain.CapitalInjectionEvent, cc *composeContext) ([]LegPlan, error) {
	accountID := e.AccountID
	if accountID == "" {
		accountID = cc.cashDrawerID
	}

	category := domain.CategoryCapitalInjection
	name := "Setor modal"
	if e.Initial {
		category = domain.CategoryInitialCapital
		name = "Modal awal shift"
	}
	if e.Note != "" {
		name = name + ": " + e.Note
	}

	return []LegPlan{{
		AccountID:    accountID,
		Type:         domain.EntryCredit,
		Amount:       e.Amount,
		Name:         name,
		Counterparty: "Pemilik",
		Category:     category,
	}}, nil
}

func composeCapitalWithdrawal(e *domain.CapitalWithdrawalEvent) ([]LegPlan, error) {
	name := "Tarik modal"
	if e.Note != "" {
		name = name + ": " + e.Note
	}

	return []LegPlan{{
		AccountID:    e.AccountID,
		Type:         domain.EntryDebit,
		Amount:       e.Amount,
		Name:         name,
		Counterparty: "Pemilik",
		Category:     domain.CategoryCapitalWithdrawal,
	}}, nil
}

func composeBalanceAdjustment(e *domain.BalanceAdjustmentEvent, cc *composeContext) ([]LegPlan, error) {
	acc, err := cc.account(e.AccountID)
	if err != nil {
		return nil, err
	}

	delta := e.ActualBalance - acc.Balance
	if delta == 0 {
		// Already correct: skip the commit entirely.
		return nil, nil
	}

	name := "Penyesuaian saldo"
	if e.Note != "" {
		name = name + ": " + e.Note
	}

	leg := LegPlan{
		AccountID:    e.AccountID,
		Type:         domain.EntryCredit,
		Amount:       delta,
		Name:         name,
		Category:     domain.CategoryAdjustment,
	}
	if delta < 0 {
		leg.Type = domain.EntryDebit
		leg.Amount = -delta
	}

	return []LegPlan{leg}, nil
}

func composeSettlement(e *domain.SettlementEvent, cc *composeContext) ([]LegPlan, error) {
	merchant, err := cc.account(e.MerchantAccountID)
	if err != nil {
		return nil, err
	}
	if merchant.SettlementAccountID == "" {
		return nil, domain.ErrNoSettlementDestination
	}
	dst, err := cc.account(merchant.SettlementAccountID)
	if err != nil {
		return nil, err
	}

	// The whole balance as read under lock is the debit amount, never a
	// caller-supplied figure.
	balance := merchant.Balance
	if balance <= 0 {
		return nil, domain.ErrEmptyMerchantBalance
	}

	mdrFee := domain.MDRFee(balance, e.EffectiveRate())
	netAmount := balance - mdrFee

	// The MDR fee is deducted arithmetically only: it is an external
	// cost, recorded on the audit record, not a movement between
	// accounts.
	return []LegPlan{
		{
			AccountID:    e.MerchantAccountID,
			Type:         domain.EntryDebit,
			Amount:       balance,
			Name:         "Settlement " + merchant.Label,
			Counterparty: dst.Label,
			Category:     domain.CategorySettlementDebit,
		},
		{
			AccountID:    merchant.SettlementAccountID,
			Type:         domain.EntryCredit,
			Amount:       netAmount,
			Name:         "Settlement " + merchant.Label,
			Counterparty: merchant.Label,
			Category:     domain.CategorySettlementCredit,
		},
	}, nil
}
