package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// ShiftUseCase opens and closes operator shifts. Opening a shift may
// post the counted opening cash as initial capital so the drawer balance
// and the physical till agree from minute one.
type ShiftUseCase struct {
	shiftRepo ShiftRepository
	posting   *PostingUseCase
	idGen     IDGenerator
}

// NewShiftUseCase creates a new ShiftUseCase.
func NewShiftUseCase(shiftRepo ShiftRepository, posting *PostingUseCase, idGen IDGenerator) *ShiftUseCase {
	return &ShiftUseCase{
		shiftRepo: shiftRepo,
		posting:   posting,
		idGen:     idGen,
	}
}

// StartShiftInput represents input for opening a shift.
type StartShiftInput struct {
	OperatorName string
	InitialCash  int64
	// PostCapital posts InitialCash to the drawer as initial capital.
	// Skipped when the drawer already carries yesterday's closing cash.
	PostCapital bool
}

// StartShift opens a new shift. Only one shift may be open at a time.
func (uc *ShiftUseCase) StartShift(ctx context.Context, input StartShiftInput) (*domain.ShiftStatus, error) {
	if input.OperatorName == "" {
		return nil, domain.ErrInvalidOperator
	}
	if input.InitialCash < 0 {
		return nil, domain.ErrInvalidAmount
	}

	current, err := uc.shiftRepo.CurrentShift(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoActiveShift) {
		return nil, err
	}
	if current != nil {
		return nil, domain.ErrShiftOpen
	}

	shift := &domain.ShiftStatus{
		ID:           uc.idGen.Generate(),
		OperatorName: input.OperatorName,
		InitialCash:  input.InitialCash,
		StartTime:    time.Now().UTC(),
	}

	if err := uc.shiftRepo.CreateShift(ctx, shift); err != nil {
		return nil, err
	}

	if input.PostCapital && input.InitialCash > 0 {
		ev := &domain.CapitalInjectionEvent{
			Amount:  input.InitialCash,
			Note:    "Modal awal shift " + input.OperatorName,
			Initial: true,
		}
		if _, err := uc.posting.Post(ctx, ev); err != nil {
			return nil, err
		}
	}

	return shift, nil
}

// CurrentShift returns the open shift, or domain.ErrNoActiveShift.
func (uc *ShiftUseCase) CurrentShift(ctx context.Context) (*domain.ShiftStatus, error) {
	return uc.shiftRepo.CurrentShift(ctx)
}

// CloseShift marks the open shift as ended. Reconciliation is a separate
// step and usually runs first.
func (uc *ShiftUseCase) CloseShift(ctx context.Context) (*domain.ShiftStatus, error) {
	shift, err := uc.shiftRepo.CurrentShift(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.shiftRepo.CloseShift(ctx, shift.ID, now); err != nil {
		return nil, err
	}

	shift.ClosedAt = &now
	return shift, nil
}
