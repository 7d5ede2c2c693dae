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

const entryColumns = `id, account_id, type, name, counterparty, amount, balance_before, balance_after,
	category, device_name, correlation_id, account_version, created_at`

// EntryRepository implements usecase.EntryRepository. The table is
// append-only: no update or delete statement exists here.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends one entry inside the posting transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	_, err := querier(r.pool, tx).Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.AccountID,
		string(entry.Type),
		entry.Name,
		entry.Counterparty,
		entry.Amount,
		entry.BalanceBefore,
		entry.BalanceAfter,
		string(entry.Category),
		entry.DeviceName,
		entry.CorrelationID,
		entry.AccountVersion,
		entry.CreatedAt,
	)
	return err
}

// ListByAccount lists an account's entries, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListByAccountSince lists an account's entries from a point in time,
// oldest first, for shift reconciliation.
func (r *EntryRepository) ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE account_id = $1 AND created_at >= $2
		ORDER BY created_at, id`, accountID, since)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListByCorrelation lists every leg of one business event.
func (r *EntryRepository) ListByCorrelation(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE correlation_id = $1
		ORDER BY id`, correlationID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// LastByAccount returns the newest entry, or nil when the account has
// no entries yet.
func (r *EntryRepository) LastByAccount(ctx context.Context, accountID string) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, accountID)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

func collectEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var entryType, category string
	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&entryType,
		&e.Name,
		&e.Counterparty,
		&e.Amount,
		&e.BalanceBefore,
		&e.BalanceAfter,
		&category,
		&e.DeviceName,
		&e.CorrelationID,
		&e.AccountVersion,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Category = domain.Category(category)
	return &e, nil
}
