package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound         = errors.New("kas account not found")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrSameAccount             = errors.New("source and destination must differ")
	ErrNoSettlementDestination = errors.New("merchant account has no settlement destination")
	ErrEmptyMerchantBalance    = errors.New("merchant account balance must be positive")

	// Event errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidSplit      = errors.New("invalid payment split")
	ErrPossibleDuplicate = errors.New("possible duplicate submission")

	// Shift errors
	ErrNoActiveShift   = errors.New("no active shift")
	ErrShiftOpen       = errors.New("a shift is already open")
	ErrInvalidOperator = errors.New("operator name is required")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found in pricing catalog")

	// Audit errors
	ErrAuditRecordNotFound = errors.New("audit record not found")

	// Infrastructure errors
	ErrConcurrentModification = errors.New("concurrent modification, retries exhausted")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// InsufficientBalanceError reports which account would have gone negative
// and by how much. It unwraps to ErrInsufficientBalance.
type InsufficientBalanceError struct {
	AccountLabel string
	Shortfall    int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on %q: short by %d", e.AccountLabel, e.Shortfall)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// PossibleDuplicateError is a non-fatal, resumable signal. The caller may
// force-proceed by resubmitting the event with Force set.
type PossibleDuplicateError struct {
	ExistingRecordID string
	CustomerName     string
	Counterparty     string
	FeeAmount        int64
}

func (e *PossibleDuplicateError) Error() string {
	return fmt.Sprintf("possible duplicate of record %s (customer %q, counterparty %q, fee %d)",
		e.ExistingRecordID, e.CustomerName, e.Counterparty, e.FeeAmount)
}

func (e *PossibleDuplicateError) Unwrap() error {
	return ErrPossibleDuplicate
}
