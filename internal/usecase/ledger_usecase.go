package usecase

import (
	"context"
)

// LedgerUseCase runs integrity checks over the append-only entry log.
type LedgerUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ConsistencyReport is the outcome of one account's check.
type ConsistencyReport struct {
	AccountID    string
	AccountLabel string
	Balance      int64
	LastEntryID  string
	Consistent   bool
	Drift        int64 // balance minus the last entry's closing balance
}

// CheckAccount verifies one account's stored balance against the
// closing balance of its newest entry. An account with no entries is
// consistent only at a zero balance.
func (uc *LedgerUseCase) CheckAccount(ctx context.Context, accountID string) (*ConsistencyReport, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		AccountID:    account.ID,
		AccountLabel: account.Label,
		Balance:      account.Balance,
	}

	last, err := uc.entryRepo.LastByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		report.Consistent = account.Balance == 0
		report.Drift = account.Balance
		return report, nil
	}

	report.LastEntryID = last.ID
	report.Drift = account.Balance - last.BalanceAfter
	report.Consistent = report.Drift == 0
	return report, nil
}

// CheckAll runs the consistency check over every account.
func (uc *LedgerUseCase) CheckAll(ctx context.Context) ([]*ConsistencyReport, error) {
	accounts, err := uc.accountRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	reports := make([]*ConsistencyReport, 0, len(accounts))
	for _, a := range accounts {
		report, err := uc.CheckAccount(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
