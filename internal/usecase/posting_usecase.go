package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaskita/kasledger/internal/domain"
)

// PostingUseCase is the atomic mutation core: it turns a composed
// business event into balance updates and ledger entries that commit
// together or not at all. All concurrency handling lives here, in one
// read-validate-write unit wrapped by a bounded retrier.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	auditRepo   AuditRepository
	catalog     PricingCatalog
	guard       *DuplicateGuard
	retrier     Retrier
	idGen       IDGenerator
	deviceName  string
	logger      zerolog.Logger
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	auditRepo AuditRepository,
	catalog PricingCatalog,
	guard *DuplicateGuard,
	retrier Retrier,
	idGen IDGenerator,
	deviceName string,
	logger zerolog.Logger,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		auditRepo:   auditRepo,
		catalog:     catalog,
		guard:       guard,
		retrier:     retrier,
		idGen:       idGen,
		deviceName:  deviceName,
		logger:      logger,
	}
}

// PostingResult reports a committed (or skipped) business event.
type PostingResult struct {
	CorrelationID string
	Entries       []*domain.LedgerEntry
	NoOp          bool     // balance adjustment found nothing to correct
	LowBalance    []string // labels of touched accounts left under their advisory minimum
	AuditRecordID string
}

// Post executes one business event end to end: validation, duplicate
// guarding, pricing resolution, the atomic read-validate-write unit
// (retried on contention), and the best-effort audit record afterwards.
// The correlation id is fixed before the retry loop, so a retried
// attempt still produces exactly one set of legs and one audit record.
func (uc *PostingUseCase) Post(ctx context.Context, ev domain.Event) (*PostingResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	if edc, ok := ev.(*domain.EDCServiceEvent); ok && !edc.Force && uc.guard != nil {
		if err := uc.guard.Check(ctx, edc); err != nil {
			return nil, err
		}
	}

	pricing, err := uc.resolvePricing(ctx, ev)
	if err != nil {
		return nil, err
	}

	extraIDs, err := uc.settlementPrecheck(ctx, ev)
	if err != nil {
		return nil, err
	}

	correlationID := uuid.NewString()
	now := time.Now().UTC()

	var result *PostingResult
	err = uc.retrier.Retry(ctx, func() error {
		res, err := uc.postOnce(ctx, ev, pricing, extraIDs, correlationID, now)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.NoOp {
		uc.writeAudit(ctx, ev, result, pricing, now)
	}

	return result, nil
}

// resolvePricing looks up catalog prices for top-up events that carry a
// product code, and validates the payment split against the retail price
// before any leg is composed.
func (uc *PostingUseCase) resolvePricing(ctx context.Context, ev domain.Event) (*domain.PricingItem, error) {
	tu, ok := ev.(*domain.TopUpEvent)
	if !ok || tu.ProductCode == "" {
		return nil, nil
	}

	item, err := uc.catalog.Get(ctx, tu.ProductCode)
	if err != nil {
		return nil, err
	}

	if _, err := domain.ComputeBreakdown(item.SellingPrice, 0, 0, tu.Payment); err != nil {
		return nil, err
	}

	return item, nil
}

// settlementPrecheck fails a settlement fast, before touching the
// ledger: the merchant must have a configured destination and a positive
// balance. The destination id is returned so the atomic unit can lock it
// alongside the merchant.
func (uc *PostingUseCase) settlementPrecheck(ctx context.Context, ev domain.Event) ([]string, error) {
	se, ok := ev.(*domain.SettlementEvent)
	if !ok {
		return nil, nil
	}

	merchant, err := uc.accountRepo.GetByID(ctx, se.MerchantAccountID)
	if err != nil {
		return nil, err
	}
	if merchant.SettlementAccountID == "" {
		return nil, domain.ErrNoSettlementDestination
	}
	if merchant.Balance <= 0 {
		return nil, domain.ErrEmptyMerchantBalance
	}

	return []string{merchant.SettlementAccountID}, nil
}

// postOnce is one attempt of the atomic unit: lock every touched account
// in sorted order, re-validate invariants against the freshly read
// balances, then write all entries and balances inside one transaction.
func (uc *PostingUseCase) postOnce(
	ctx context.Context,
	ev domain.Event,
	pricing *domain.PricingItem,
	extraIDs []string,
	correlationID string,
	now time.Time,
) (*PostingResult, error) {
	refs, needsDrawer := eventAccountRefs(ev, pricing)
	refs = append(refs, extraIDs...)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts := make(map[string]*domain.KasAccount)

	cc := &composeContext{accounts: accounts, pricing: pricing}

	if needsDrawer {
		drawer, err := uc.resolveCashDrawer(ctx, tx, now)
		if err != nil {
			return nil, err
		}
		accounts[drawer.ID] = drawer
		cc.cashDrawerID = drawer.ID
	}

	ids := uniqueSorted(refs)
	if len(ids) > 0 {
		locked, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		if len(locked) != len(ids) {
			return nil, domain.ErrAccountNotFound
		}
		for _, a := range locked {
			accounts[a.ID] = a
		}
	}

	legs, err := composeLegs(ev, cc)
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return &PostingResult{CorrelationID: correlationID, NoOp: true}, nil
	}

	entries := make([]*domain.LedgerEntry, 0, len(legs))
	for _, leg := range legs {
		acc := accounts[leg.AccountID]
		if acc == nil {
			return nil, domain.ErrAccountNotFound
		}

		if leg.Type == domain.EntryDebit {
			if err := acc.ValidateDebit(leg.Amount); err != nil {
				return nil, err
			}
		}

		entry := &domain.LedgerEntry{
			ID:             uc.idGen.Generate(),
			AccountID:      acc.ID,
			Type:           leg.Type,
			Name:           leg.Name,
			Counterparty:   leg.Counterparty,
			Amount:         leg.Amount,
			BalanceBefore:  acc.Balance,
			Category:       leg.Category,
			DeviceName:     uc.deviceName,
			CorrelationID:  correlationID,
			AccountVersion: acc.Version + 1,
			CreatedAt:      now,
		}
		entry.BalanceAfter = entry.BalanceBefore + entry.Signed()

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}

		acc.Balance = entry.BalanceAfter
		acc.Version++

		if err := uc.accountRepo.UpdateBalance(ctx, tx, acc.ID, acc.Balance, acc.Version, now); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	var low []string
	for _, id := range uniqueSorted(legAccountIDs(legs)) {
		if acc := accounts[id]; acc != nil && acc.BelowMinimum() {
			low = append(low, acc.Label)
		}
	}

	return &PostingResult{
		CorrelationID: correlationID,
		Entries:       entries,
		LowBalance:    low,
	}, nil
}

// resolveCashDrawer locks the drawer account, creating it inside the
// same transaction when missing so a failed event never leaves a
// half-created drawer behind.
func (uc *PostingUseCase) resolveCashDrawer(ctx context.Context, tx Transaction, now time.Time) (*domain.KasAccount, error) {
	drawer, err := uc.accountRepo.GetByLabelForUpdate(ctx, tx, domain.CashDrawerLabel)
	if err == nil {
		return drawer, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	drawer = &domain.KasAccount{
		ID:        uc.idGen.Generate(),
		Label:     domain.CashDrawerLabel,
		Type:      domain.AccountTypeCash,
		Balance:   0,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.CreateTx(ctx, tx, drawer); err != nil {
		return nil, err
	}

	return drawer, nil
}

// writeAudit records the denormalized event description. It runs outside
// the atomic unit: a failure here is logged and swallowed, never rolled
// back into the already committed ledger change.
func (uc *PostingUseCase) writeAudit(ctx context.Context, ev domain.Event, result *PostingResult, pricing *domain.PricingItem, now time.Time) {
	rec := buildAuditRecord(ev, result, pricing)
	rec.ID = uc.idGen.Generate()
	rec.CorrelationID = result.CorrelationID
	rec.EventKind = ev.Kind()
	rec.DeviceName = uc.deviceName
	rec.CreatedAt = now

	if err := uc.auditRepo.Create(ctx, rec); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("correlation_id", result.CorrelationID).
			Str("event_kind", string(ev.Kind())).
			Msg("audit record write failed after ledger commit")
		return
	}

	result.AuditRecordID = rec.ID
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}

	sort.Strings(out)
	return out
}

func legAccountIDs(legs []LegPlan) []string {
	ids := make([]string, 0, len(legs))
	for _, l := range legs {
		ids = append(ids, l.AccountID)
	}
	return ids
}
