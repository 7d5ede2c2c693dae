package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
	"github.com/kaskita/kasledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectError bool
	}{
		{
			name:  "valid bank account",
			input: usecase.CreateAccountInput{Label: "BCA", Type: domain.AccountTypeBank},
		},
		{
			name:  "valid merchant with settlement destination",
			input: usecase.CreateAccountInput{Label: "EDC BRI", Type: domain.AccountTypeMerchant, SettlementAccountID: "acc-dest"},
		},
		{
			name:        "empty label",
			input:       usecase.CreateAccountInput{Type: domain.AccountTypeBank},
			expectError: true,
		},
		{
			name:        "unknown type",
			input:       usecase.CreateAccountInput{Label: "X", Type: "crypto"},
			expectError: true,
		},
		{
			name:        "negative minimum balance",
			input:       usecase.CreateAccountInput{Label: "BCA", Type: domain.AccountTypeBank, MinimumBalance: -1},
			expectError: true,
		},
		{
			name:        "missing settlement destination account",
			input:       usecase.CreateAccountInput{Label: "EDC BNI", Type: domain.AccountTypeMerchant, SettlementAccountID: "acc-ghost"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			accRepo.Seed(&domain.KasAccount{ID: "acc-dest", Label: "BRI", Type: domain.AccountTypeBank})

			uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockIDGenerator())
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Balance != 0 || account.Version != 0 {
				t.Errorf("new account must start at zero balance and version, got %d/%d", account.Balance, account.Version)
			}

			stored, err := accRepo.GetByID(context.Background(), account.ID)
			if err != nil {
				t.Fatalf("account not persisted: %v", err)
			}
			if stored.Label != tt.input.Label {
				t.Errorf("stored label = %q, want %q", stored.Label, tt.input.Label)
			}
		})
	}
}

func TestAccountUseCase_GetAccountNotFound(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockIDGenerator())

	_, err := uc.GetAccount(context.Background(), "acc-missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_LowBalanceAccounts(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(&domain.KasAccount{ID: "a-1", Label: "Saldo PPOB", Type: domain.AccountTypePPOB, Balance: 40_000, MinimumBalance: 100_000})
	accRepo.Seed(&domain.KasAccount{ID: "a-2", Label: "BCA", Type: domain.AccountTypeBank, Balance: 5_000_000, MinimumBalance: 1_000_000})
	accRepo.Seed(&domain.KasAccount{ID: "a-3", Label: "Laci", Type: domain.AccountTypeCash, Balance: 0})

	uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockIDGenerator())

	low, err := uc.LowBalanceAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(low) != 1 || low[0].Label != "Saldo PPOB" {
		t.Errorf("low = %v, want only Saldo PPOB", low)
	}
}
