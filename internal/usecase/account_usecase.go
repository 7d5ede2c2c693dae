package usecase

import (
	"context"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// AccountUseCase manages the flat list of kas accounts.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating a kas account.
type CreateAccountInput struct {
	Label               string
	Type                domain.AccountType
	MinimumBalance      int64
	SettlementAccountID string
}

// CreateAccount registers a new account with a zero balance. Opening
// balances arrive later through a capital injection event so they leave
// a ledger trail.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.KasAccount, error) {
	if err := domain.ValidateAccountLabel(input.Label); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}
	if input.MinimumBalance < 0 {
		return nil, domain.ErrInvalidAmount
	}

	if input.SettlementAccountID != "" {
		if _, err := uc.accountRepo.GetByID(ctx, input.SettlementAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := &domain.KasAccount{
		ID:                  uc.idGen.Generate(),
		Label:               input.Label,
		Type:                input.Type,
		Balance:             0,
		MinimumBalance:      input.MinimumBalance,
		SettlementAccountID: input.SettlementAccountID,
		Version:             0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount fetches one account by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.KasAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByLabel fetches one account by its display label.
func (uc *AccountUseCase) GetAccountByLabel(ctx context.Context, label string) (*domain.KasAccount, error) {
	return uc.accountRepo.GetByLabel(ctx, label)
}

// ListAccounts lists accounts with their current balances.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.KasAccount, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// LowBalanceAccounts lists accounts currently under their advisory
// minimum. Purely informational, nothing is blocked.
func (uc *AccountUseCase) LowBalanceAccounts(ctx context.Context) ([]*domain.KasAccount, error) {
	accounts, err := uc.accountRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	var low []*domain.KasAccount
	for _, a := range accounts {
		if a.BelowMinimum() {
			low = append(low, a)
		}
	}
	return low, nil
}
