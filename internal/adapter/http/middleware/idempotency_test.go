package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: make(map[string][]byte)}
}

func (s *memoryIdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, _ time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.data[key]; ok {
		return true, existing, nil
	}
	s.data[key] = response
	return false, nil, nil
}

func (s *memoryIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = response
	return nil
}

func TestIdempotencyReplaysResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0

	handler := NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"correlation_id":"corr-1"}`))
		}),
	)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/events/withdrawal", nil)
	first.Header.Set(IdempotencyKeyHeader, "key-1")
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, first)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/events/withdrawal", nil)
	second.Header.Set(IdempotencyKeyHeader, "key-1")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, second)

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if rec2.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replay marker on second response")
	}
	if rec2.Body.String() != rec1.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", rec2.Body.String(), rec1.Body.String())
	}
}

func TestIdempotencySkipsReadsAndMissingKey(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0

	handler := NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusOK)
		}),
	)

	get := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	get.Header.Set(IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), get)
	handler.ServeHTTP(httptest.NewRecorder(), get)

	noKey := httptest.NewRequest(http.MethodPost, "/api/v1/events/topup", nil)
	handler.ServeHTTP(httptest.NewRecorder(), noKey)
	handler.ServeHTTP(httptest.NewRecorder(), noKey)

	if calls != 4 {
		t.Fatalf("expected every request to pass through, got %d calls", calls)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	store := newMemoryIdempotencyStore()
	status := http.StatusUnprocessableEntity

	handler := NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"insufficient balance"}`))
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/withdrawal", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-fail")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// After a failure the key holds nil, so a retry runs the handler again.
	status = http.StatusCreated
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/events/withdrawal", nil)
	req2.Header.Set(IdempotencyKeyHeader, "key-fail")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req2)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected retry to reach the handler, got %d", rec.Code)
	}
}
