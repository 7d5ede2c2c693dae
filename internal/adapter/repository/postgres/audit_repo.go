package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaskita/kasledger/internal/domain"
)

const auditColumns = `id, correlation_id, event_kind, customer_name, counterparty, amount,
	fee_amount, profit, device_name, details, created_at`

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts one audit record. Runs outside the posting
// transaction; the caller treats failures as non-fatal.
func (r *AuditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	details := record.Details
	if details == nil {
		details = domain.JSON{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_records (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID,
		record.CorrelationID,
		string(record.EventKind),
		record.CustomerName,
		record.Counterparty,
		record.Amount,
		record.FeeAmount,
		record.Profit,
		record.DeviceName,
		detailsJSON,
		record.CreatedAt,
	)
	return err
}

// ListByKindSince lists records of one event kind from a point in time,
// for the same-day duplicate scan.
func (r *AuditRepository) ListByKindSince(ctx context.Context, kind domain.EventKind, since time.Time) ([]*domain.AuditRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_records
		WHERE event_kind = $1 AND created_at >= $2
		ORDER BY created_at`, string(kind), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AuditRecord
	for rows.Next() {
		record, err := scanAuditRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetByCorrelation fetches the audit record of one business event.
func (r *AuditRepository) GetByCorrelation(ctx context.Context, correlationID string) (*domain.AuditRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+auditColumns+`
		FROM audit_records
		WHERE correlation_id = $1`, correlationID)

	record, err := scanAuditRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAuditRecordNotFound
	}
	return record, err
}

func scanAuditRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var rec domain.AuditRecord
	var kind string
	var detailsJSON []byte
	err := row.Scan(
		&rec.ID,
		&rec.CorrelationID,
		&kind,
		&rec.CustomerName,
		&rec.Counterparty,
		&rec.Amount,
		&rec.FeeAmount,
		&rec.Profit,
		&rec.DeviceName,
		&detailsJSON,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.EventKind = domain.EventKind(kind)
	if len(detailsJSON) > 0 {
		_ = json.Unmarshal(detailsJSON, &rec.Details)
	}
	return &rec, nil
}
