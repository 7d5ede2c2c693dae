package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
	"github.com/kaskita/kasledger/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	shiftRepo := mocks.NewMockShiftRepository(ctrl)

	start := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	shiftRepo.EXPECT().CurrentShift(gomock.Any()).Return(&domain.ShiftStatus{
		ID:           "shift-1",
		OperatorName: "Dewi",
		InitialCash:  500_000,
		StartTime:    start,
	}, nil)

	var saved *domain.ShiftReconciliation
	shiftRepo.EXPECT().
		CreateReconciliation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.ShiftReconciliation) error {
			saved = rec
			return nil
		})

	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(&domain.KasAccount{ID: "acc-laci", Label: domain.CashDrawerLabel, Type: domain.AccountTypeCash})

	entryRepo := mocks.NewMockEntryRepository()
	seedEntries := []*domain.LedgerEntry{
		// Opening capital: excluded from app cash-in.
		{AccountID: "acc-laci", Type: domain.EntryCredit, Amount: 500_000, Category: domain.CategoryInitialCapital, CreatedAt: start},
		// Customer payments during the shift.
		{AccountID: "acc-laci", Type: domain.EntryCredit, Amount: 110_000, Category: domain.CategoryCashIn, CreatedAt: start.Add(time.Hour)},
		{AccountID: "acc-laci", Type: domain.EntryCredit, Amount: 22_000, Category: domain.CategoryCashIn, CreatedAt: start.Add(2 * time.Hour)},
		// Cash handed out: debits never count toward cash-in.
		{AccountID: "acc-laci", Type: domain.EntryDebit, Amount: 97_000, Category: domain.CategoryCashOut, CreatedAt: start.Add(3 * time.Hour)},
		// Before the shift opened.
		{AccountID: "acc-laci", Type: domain.EntryCredit, Amount: 9_999, Category: domain.CategoryCashIn, CreatedAt: start.Add(-time.Hour)},
	}
	for _, e := range seedEntries {
		_ = entryRepo.Create(context.Background(), nil, e)
	}

	uc := usecase.NewReconciliationUseCase(shiftRepo, entryRepo, accRepo, mocks.NewMockIDGenerator())

	rec, err := uc.ReconcileShift(context.Background(), usecase.ReconcileShiftInput{
		VoucherCashIn: 50_000,
		ActualCash:    680_000,
		Notes:         "kurang kembalian",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.AppCashIn != 132_000 {
		t.Errorf("app cash-in = %d, want 132000", rec.AppCashIn)
	}
	// 500k opening + 132k app + 50k voucher.
	if rec.ExpectedCash != 682_000 {
		t.Errorf("expected cash = %d, want 682000", rec.ExpectedCash)
	}
	if rec.Difference != 2_000 {
		t.Errorf("difference = %d, want 2000 (missing)", rec.Difference)
	}
	if saved == nil || saved.ShiftID != "shift-1" {
		t.Errorf("reconciliation not persisted against the shift")
	}
}

func TestReconciliationUseCase_NoActiveShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	shiftRepo.EXPECT().CurrentShift(gomock.Any()).Return(nil, domain.ErrNoActiveShift)

	uc := usecase.NewReconciliationUseCase(shiftRepo, mocks.NewMockEntryRepository(), mocks.NewMockAccountRepository(), mocks.NewMockIDGenerator())

	_, err := uc.ReconcileShift(context.Background(), usecase.ReconcileShiftInput{ActualCash: 100_000})
	if err != domain.ErrNoActiveShift {
		t.Errorf("expected ErrNoActiveShift, got %v", err)
	}
}
