package usecase

import (
	"context"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// AccountRepository defines data access for kas accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.KasAccount) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.KasAccount) error
	GetByID(ctx context.Context, id string) (*domain.KasAccount, error)
	GetByLabel(ctx context.Context, label string) (*domain.KasAccount, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.KasAccount, error)
	GetByLabelForUpdate(ctx context.Context, tx Transaction, label string) (*domain.KasAccount, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance, version int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.KasAccount, error)
}

// EntryRepository defines data access for ledger entries. Entries are
// append-only: there is no update or delete.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.LedgerEntry, error)
	ListByCorrelation(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error)
	// LastByAccount returns the newest entry, or (nil, nil) when the
	// account has none.
	LastByAccount(ctx context.Context, accountID string) (*domain.LedgerEntry, error)
}

// AuditRepository defines data access for audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) error
	ListByKindSince(ctx context.Context, kind domain.EventKind, since time.Time) ([]*domain.AuditRecord, error)
	GetByCorrelation(ctx context.Context, correlationID string) (*domain.AuditRecord, error)
}

// ShiftRepository defines data access for shifts and reconciliations.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift *domain.ShiftStatus) error
	CurrentShift(ctx context.Context) (*domain.ShiftStatus, error)
	CloseShift(ctx context.Context, id string, at time.Time) error
	CreateReconciliation(ctx context.Context, rec *domain.ShiftReconciliation) error
	ListReconciliations(ctx context.Context, limit, offset int) ([]*domain.ShiftReconciliation, error)
}

// PricingCatalog is the read-only PPOB price catalog. Editing happens
// through an unrelated admin surface.
type PricingCatalog interface {
	Get(ctx context.Context, code string) (*domain.PricingItem, error)
	List(ctx context.Context) ([]*domain.PricingItem, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient contention errors. When the
// bounded retry budget is exhausted the last error surfaces wrapped in
// domain.ErrConcurrentModification.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
