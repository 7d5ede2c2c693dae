package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

const accountColumns = `id, label, type, balance, minimum_balance, settlement_account_id, version, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.KasAccount) error {
	return r.insert(ctx, r.pool, account)
}

// CreateTx inserts a new account inside an open transaction. Used for
// on-demand cash drawer creation.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.KasAccount) error {
	return r.insert(ctx, querier(r.pool, tx), account)
}

func (r *AccountRepository) insert(ctx context.Context, q queryExecer, account *domain.KasAccount) error {
	_, err := q.Exec(ctx, `
		INSERT INTO kas_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID,
		account.Label,
		string(account.Type),
		account.Balance,
		account.MinimumBalance,
		account.SettlementAccountID,
		account.Version,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.KasAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM kas_accounts
		WHERE id = $1`, id)
	return scanAccount(row)
}

// GetByLabel retrieves an account by its display label.
func (r *AccountRepository) GetByLabel(ctx context.Context, label string) (*domain.KasAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM kas_accounts
		WHERE label = $1`, label)
	return scanAccount(row)
}

// GetByIDsForUpdate locks and retrieves multiple accounts. The caller
// passes ids pre-sorted so concurrent events lock in the same order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.KasAccount, error) {
	rows, err := querier(r.pool, tx).Query(ctx, `
		SELECT `+accountColumns+`
		FROM kas_accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.KasAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// GetByLabelForUpdate locks and retrieves one account by label.
func (r *AccountRepository) GetByLabelForUpdate(ctx context.Context, tx usecase.Transaction, label string) (*domain.KasAccount, error) {
	row := querier(r.pool, tx).QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM kas_accounts
		WHERE label = $1
		FOR UPDATE`, label)
	return scanAccount(row)
}

// UpdateBalance writes a new balance and version inside a transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance, version int64, updatedAt time.Time) error {
	_, err := querier(r.pool, tx).Exec(ctx, `
		UPDATE kas_accounts
		SET balance = $2, version = $3, updated_at = $4
		WHERE id = $1`,
		id, balance, version, updatedAt,
	)
	return err
}

// List lists accounts ordered by label.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.KasAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM kas_accounts
		ORDER BY label
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.KasAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.KasAccount, error) {
	var a domain.KasAccount
	var accountType string
	err := row.Scan(
		&a.ID,
		&a.Label,
		&accountType,
		&a.Balance,
		&a.MinimumBalance,
		&a.SettlementAccountID,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	a.Type = domain.AccountType(accountType)
	return &a, nil
}
