package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAccountLabel = errors.New("invalid account label")
	ErrInvalidAccountType  = errors.New("invalid account type")
)

const (
	MaxAccountLabelLength = 100
	// MaxEventAmount caps any single leg at one billion rupiah.
	MaxEventAmount = int64(1_000_000_000)
)

// ValidateAccountLabel validates a kas account display label.
func ValidateAccountLabel(label string) error {
	label = strings.TrimSpace(label)

	if label == "" {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidAccountLabel)
	}

	if len(label) > MaxAccountLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidAccountLabel, MaxAccountLabelLength)
	}

	return nil
}

// ValidateAccountType checks the account type against the closed set.
func ValidateAccountType(t AccountType) error {
	if !ValidAccountType(t) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, t)
	}
	return nil
}

// ValidateAmount bounds a single leg amount.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxEventAmount {
		return fmt.Errorf("%w: amount exceeds %d", ErrInvalidAmount, MaxEventAmount)
	}
	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
