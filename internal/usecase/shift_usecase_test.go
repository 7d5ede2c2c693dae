package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
	"github.com/kaskita/kasledger/internal/usecase/mocks"
)

func TestShiftUseCase_StartShiftPostsOpeningCapital(t *testing.T) {
	ctrl := gomock.NewController(t)
	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	shiftRepo.EXPECT().CurrentShift(gomock.Any()).Return(nil, domain.ErrNoActiveShift)
	shiftRepo.EXPECT().CreateShift(gomock.Any(), gomock.Any()).Return(nil)

	f := newPostingFixture(nil)
	uc := usecase.NewShiftUseCase(shiftRepo, f.uc, mocks.NewMockIDGenerator())

	shift, err := uc.StartShift(context.Background(), usecase.StartShiftInput{
		OperatorName: "Dewi",
		InitialCash:  500_000,
		PostCapital:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift.OperatorName != "Dewi" || shift.InitialCash != 500_000 {
		t.Errorf("shift = %+v", shift)
	}

	// The opening cash lands on the auto-created drawer as initial capital.
	drawer, err := f.accRepo.GetByLabel(context.Background(), domain.CashDrawerLabel)
	if err != nil {
		t.Fatalf("drawer not created: %v", err)
	}
	if drawer.Balance != 500_000 {
		t.Errorf("drawer balance = %d, want 500000", drawer.Balance)
	}
	entries := f.entryRepo.Entries()
	if len(entries) != 1 || entries[0].Category != domain.CategoryInitialCapital {
		t.Errorf("expected one initial-capital entry, got %v", entries)
	}
}

func TestShiftUseCase_StartShiftRejectsSecondShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	shiftRepo.EXPECT().CurrentShift(gomock.Any()).Return(&domain.ShiftStatus{ID: "shift-1"}, nil)

	uc := usecase.NewShiftUseCase(shiftRepo, nil, mocks.NewMockIDGenerator())

	_, err := uc.StartShift(context.Background(), usecase.StartShiftInput{OperatorName: "Dewi"})
	if !errors.Is(err, domain.ErrShiftOpen) {
		t.Errorf("expected ErrShiftOpen, got %v", err)
	}
}

func TestShiftUseCase_StartShiftValidation(t *testing.T) {
	uc := usecase.NewShiftUseCase(nil, nil, mocks.NewMockIDGenerator())

	_, err := uc.StartShift(context.Background(), usecase.StartShiftInput{InitialCash: 100_000})
	if !errors.Is(err, domain.ErrInvalidOperator) {
		t.Errorf("expected ErrInvalidOperator, got %v", err)
	}

	_, err = uc.StartShift(context.Background(), usecase.StartShiftInput{OperatorName: "Dewi", InitialCash: -1})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestShiftUseCase_CloseShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	shiftRepo.EXPECT().CurrentShift(gomock.Any()).Return(&domain.ShiftStatus{
		ID:           "shift-1",
		OperatorName: "Dewi",
		StartTime:    time.Now().UTC().Add(-8 * time.Hour),
	}, nil)
	shiftRepo.EXPECT().CloseShift(gomock.Any(), "shift-1", gomock.Any()).Return(nil)

	uc := usecase.NewShiftUseCase(shiftRepo, nil, mocks.NewMockIDGenerator())

	shift, err := uc.CloseShift(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift.ClosedAt == nil {
		t.Error("closed shift must carry a close time")
	}
}
