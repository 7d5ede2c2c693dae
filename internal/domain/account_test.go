package domain_test

import (
	"errors"
	"testing"

	"github.com/kaskita/kasledger/internal/domain"
)

func TestKasAccount_ValidateDebit(t *testing.T) {
	acc := &domain.KasAccount{Label: "BCA", Balance: 100_000}

	if err := acc.ValidateDebit(100_000); err != nil {
		t.Fatalf("debit to zero should be allowed: %v", err)
	}

	err := acc.ValidateDebit(150_000)
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var insErr *domain.InsufficientBalanceError
	if !errors.As(err, &insErr) {
		t.Fatal("expected InsufficientBalanceError")
	}
	if insErr.AccountLabel != "BCA" {
		t.Errorf("expected account label BCA, got %q", insErr.AccountLabel)
	}
	if insErr.Shortfall != 50_000 {
		t.Errorf("expected shortfall 50000, got %d", insErr.Shortfall)
	}
}

func TestKasAccount_BelowMinimum(t *testing.T) {
	acc := &domain.KasAccount{Balance: 40_000, MinimumBalance: 50_000}
	if !acc.BelowMinimum() {
		t.Error("expected account below minimum")
	}

	acc.Balance = 50_000
	if acc.BelowMinimum() {
		t.Error("account at minimum is not below it")
	}

	// Zero threshold disables the warning.
	acc = &domain.KasAccount{Balance: 0, MinimumBalance: 0}
	if acc.BelowMinimum() {
		t.Error("zero threshold should never warn")
	}
}

func TestLedgerEntry_Signed(t *testing.T) {
	credit := &domain.LedgerEntry{Type: domain.EntryCredit, Amount: 5_000}
	debit := &domain.LedgerEntry{Type: domain.EntryDebit, Amount: 5_000}

	if credit.Signed() != 5_000 {
		t.Errorf("credit signed = %d", credit.Signed())
	}
	if debit.Signed() != -5_000 {
		t.Errorf("debit signed = %d", debit.Signed())
	}
}

func TestLedgerEntry_Consistent(t *testing.T) {
	e := &domain.LedgerEntry{
		Type:          domain.EntryDebit,
		Amount:        30_000,
		BalanceBefore: 100_000,
		BalanceAfter:  70_000,
	}
	if !e.Consistent() {
		t.Error("entry should be consistent")
	}

	e.BalanceAfter = 80_000
	if e.Consistent() {
		t.Error("entry should be inconsistent")
	}
}

func TestNormalizeCustomerName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Budi Santoso", "budisantoso"},
		{"BUDI-SANTOSO", "budisantoso"},
		{"budi.santoso 2", "budisantoso2"},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := domain.NormalizeCustomerName(tt.in); got != tt.out {
			t.Errorf("NormalizeCustomerName(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
