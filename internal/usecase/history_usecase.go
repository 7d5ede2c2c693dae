package usecase

import (
	"context"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// HistoryUseCase reconstructs grouped display events from the flat
// per-account ledger. It is strictly read-only: it never writes back.
type HistoryUseCase struct {
	entryRepo EntryRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(entryRepo EntryRepository) *HistoryUseCase {
	return &HistoryUseCase{entryRepo: entryRepo}
}

// HistoryLine is one logical row in an account's history. Grouped lines
// merge the principal and fee legs of one business event; the net is
// computed from the viewed account's side only.
type HistoryLine struct {
	CorrelationID string
	Name          string
	Timestamp     time.Time
	Net           int64 // signed, from the viewed account's perspective
	Principal     int64
	Fee           int64
	Grouped       bool
	Entries       []*domain.LedgerEntry
}

// AccountHistoryInput represents input for listing grouped history.
type AccountHistoryInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// AccountHistory groups an account's entries into display lines. Legs
// sharing a correlation id within fee-bearing categories merge into one
// line; everything else is shown standalone.
func (uc *HistoryUseCase) AccountHistory(ctx context.Context, input AccountHistoryInput) ([]*HistoryLine, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	entries, err := uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return GroupEntries(entries), nil
}

// ListEntries lists raw entries for an account, ungrouped.
func (uc *HistoryUseCase) ListEntries(ctx context.Context, input AccountHistoryInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// EventLegs returns every leg of one business event across accounts.
func (uc *HistoryUseCase) EventLegs(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error) {
	return uc.entryRepo.ListByCorrelation(ctx, correlationID)
}

// GroupEntries folds a flat entry list (newest first) into display
// lines, preserving order. The grouping key is the correlation id, but
// only for categories the composer marks as groupable, so both sides
// share one description of the event shape.
func GroupEntries(entries []*domain.LedgerEntry) []*HistoryLine {
	lines := make([]*HistoryLine, 0, len(entries))
	grouped := make(map[string]*HistoryLine)

	for _, e := range entries {
		if e.CorrelationID == "" || !e.Category.Groupable() {
			lines = append(lines, &HistoryLine{
				CorrelationID: e.CorrelationID,
				Name:          e.Name,
				Timestamp:     e.CreatedAt,
				Net:           e.Signed(),
				Principal:     principalAmount(e),
				Fee:           feeAmount(e),
				Entries:       []*domain.LedgerEntry{e},
			})
			continue
		}

		line, ok := grouped[e.CorrelationID]
		if !ok {
			line = &HistoryLine{
				CorrelationID: e.CorrelationID,
				Timestamp:     e.CreatedAt,
				Grouped:       true,
			}
			grouped[e.CorrelationID] = line
			lines = append(lines, line)
		}

		line.Net += e.Signed()
		if e.Category.IsFee() {
			line.Fee += e.Amount
		} else {
			line.Principal += e.Amount
			line.Name = e.Name
		}
		line.Entries = append(line.Entries, e)
	}

	return lines
}

func principalAmount(e *domain.LedgerEntry) int64 {
	if e.Category.IsFee() {
		return 0
	}
	return e.Amount
}

func feeAmount(e *domain.LedgerEntry) int64 {
	if e.Category.IsFee() {
		return e.Amount
	}
	return 0
}
