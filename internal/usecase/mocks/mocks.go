package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.KasAccount

	CreateFunc              func(ctx context.Context, account *domain.KasAccount) error
	CreateTxFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.KasAccount) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.KasAccount, error)
	GetByLabelFunc          func(ctx context.Context, label string) (*domain.KasAccount, error)
	GetByIDsForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.KasAccount, error)
	GetByLabelForUpdateFunc func(ctx context.Context, tx usecase.Transaction, label string) (*domain.KasAccount, error)
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Transaction, id string, balance, version int64, updatedAt time.Time) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.KasAccount, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.KasAccount),
	}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(account *domain.KasAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.KasAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.KasAccount) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.KasAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByLabel(ctx context.Context, label string) (*domain.KasAccount, error) {
	if m.GetByLabelFunc != nil {
		return m.GetByLabelFunc(ctx, label)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Label == label {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.KasAccount, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.KasAccount
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) GetByLabelForUpdate(ctx context.Context, tx usecase.Transaction, label string) (*domain.KasAccount, error) {
	if m.GetByLabelForUpdateFunc != nil {
		return m.GetByLabelForUpdateFunc(ctx, tx, label)
	}
	return m.GetByLabel(ctx, label)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance, version int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.Version = version
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.KasAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.KasAccount
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Label < accounts[j].Label })
	return accounts, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	ListByAccountFunc      func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByAccountSinceFunc func(ctx context.Context, accountID string, since time.Time) ([]*domain.LedgerEntry, error)
	ListByCorrelationFunc  func(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error)
	LastByAccountFunc      func(ctx context.Context, accountID string) (*domain.LedgerEntry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Entries returns everything written so far, in insertion order.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountSinceFunc != nil {
		return m.ListByAccountSinceFunc(ctx, accountID, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID && !e.CreatedAt.Before(since) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) ListByCorrelation(ctx context.Context, correlationID string) ([]*domain.LedgerEntry, error) {
	if m.ListByCorrelationFunc != nil {
		return m.ListByCorrelationFunc(ctx, correlationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.CorrelationID == correlationID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) LastByAccount(ctx context.Context, accountID string) (*domain.LedgerEntry, error) {
	if m.LastByAccountFunc != nil {
		return m.LastByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AccountID == accountID {
			return m.entries[i], nil
		}
	}
	return nil, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	records []*domain.AuditRecord

	CreateFunc           func(ctx context.Context, record *domain.AuditRecord) error
	ListByKindSinceFunc  func(ctx context.Context, kind domain.EventKind, since time.Time) ([]*domain.AuditRecord, error)
	GetByCorrelationFunc func(ctx context.Context, correlationID string) (*domain.AuditRecord, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

// Records returns everything written so far, in insertion order.
func (m *MockAuditRepository) Records() []*domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockAuditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockAuditRepository) ListByKindSince(ctx context.Context, kind domain.EventKind, since time.Time) ([]*domain.AuditRecord, error) {
	if m.ListByKindSinceFunc != nil {
		return m.ListByKindSinceFunc(ctx, kind, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.AuditRecord
	for _, r := range m.records {
		if r.EventKind == kind && !r.CreatedAt.Before(since) {
			records = append(records, r)
		}
	}
	return records, nil
}

func (m *MockAuditRepository) GetByCorrelation(ctx context.Context, correlationID string) (*domain.AuditRecord, error) {
	if m.GetByCorrelationFunc != nil {
		return m.GetByCorrelationFunc(ctx, correlationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.CorrelationID == correlationID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("audit record not found: %s", correlationID)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier runs the operation once unless overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
