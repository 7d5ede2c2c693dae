package usecase

import (
	"context"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// ReconciliationUseCase compares expected against physically counted
// cash at the end of a shift. It is read-only against the ledger and
// only ever writes a standalone reconciliation record.
type ReconciliationUseCase struct {
	shiftRepo   ShiftRepository
	entryRepo   EntryRepository
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	shiftRepo ShiftRepository,
	entryRepo EntryRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		shiftRepo:   shiftRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// ReconcileShiftInput carries the operator-entered figures.
type ReconcileShiftInput struct {
	VoucherCashIn int64
	ActualCash    int64
	Notes         string
}

// ReconcileShift sums drawer credits since shift start (initial capital
// excluded), combines them with voucher sales and the recorded opening
// cash, and compares against the physical count. Positive difference
// means cash is missing.
func (uc *ReconciliationUseCase) ReconcileShift(ctx context.Context, input ReconcileShiftInput) (*domain.ShiftReconciliation, error) {
	shift, err := uc.shiftRepo.CurrentShift(ctx)
	if err != nil {
		return nil, err
	}

	drawer, err := uc.accountRepo.GetByLabel(ctx, domain.CashDrawerLabel)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByAccountSince(ctx, drawer.ID, shift.StartTime)
	if err != nil {
		return nil, err
	}

	var appCashIn int64
	for _, e := range entries {
		if e.Type != domain.EntryCredit {
			continue
		}
		if e.Category == domain.CategoryInitialCapital {
			continue
		}
		appCashIn += e.Amount
	}

	expected := shift.InitialCash + appCashIn + input.VoucherCashIn

	rec := &domain.ShiftReconciliation{
		ID:            uc.idGen.Generate(),
		ShiftID:       shift.ID,
		OperatorName:  shift.OperatorName,
		InitialCash:   shift.InitialCash,
		AppCashIn:     appCashIn,
		VoucherCashIn: input.VoucherCashIn,
		ExpectedCash:  expected,
		ActualCash:    input.ActualCash,
		Difference:    expected - input.ActualCash,
		Notes:         input.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.shiftRepo.CreateReconciliation(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// ListReconciliations lists past reconciliation records.
func (uc *ReconciliationUseCase) ListReconciliations(ctx context.Context, limit, offset int) ([]*domain.ShiftReconciliation, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.shiftRepo.ListReconciliations(ctx, limit, offset)
}
