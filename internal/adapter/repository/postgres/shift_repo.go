package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaskita/kasledger/internal/domain"
)

// ShiftRepository implements usecase.ShiftRepository.
type ShiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository creates a new ShiftRepository.
func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// CreateShift opens a shift. The partial unique index on open shifts
// backs the single-open-shift rule at the database level.
func (r *ShiftRepository) CreateShift(ctx context.Context, shift *domain.ShiftStatus) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO shifts (id, operator_name, initial_cash, start_time, closed_at)
		VALUES ($1, $2, $3, $4, NULL)`,
		shift.ID,
		shift.OperatorName,
		shift.InitialCash,
		shift.StartTime,
	)
	return err
}

// CurrentShift returns the open shift, or domain.ErrNoActiveShift.
func (r *ShiftRepository) CurrentShift(ctx context.Context) (*domain.ShiftStatus, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, operator_name, initial_cash, start_time, closed_at
		FROM shifts
		WHERE closed_at IS NULL
		ORDER BY start_time DESC
		LIMIT 1`)

	var s domain.ShiftStatus
	err := row.Scan(&s.ID, &s.OperatorName, &s.InitialCash, &s.StartTime, &s.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveShift
		}
		return nil, err
	}
	return &s, nil
}

// CloseShift stamps the shift's close time.
func (r *ShiftRepository) CloseShift(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE shifts
		SET closed_at = $2
		WHERE id = $1 AND closed_at IS NULL`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoActiveShift
	}
	return nil
}

// CreateReconciliation stores one reconciliation record.
func (r *ShiftRepository) CreateReconciliation(ctx context.Context, rec *domain.ShiftReconciliation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO shift_reconciliations (
			id, shift_id, operator_name, initial_cash, app_cash_in, voucher_cash_in,
			expected_cash, actual_cash, difference, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID,
		rec.ShiftID,
		rec.OperatorName,
		rec.InitialCash,
		rec.AppCashIn,
		rec.VoucherCashIn,
		rec.ExpectedCash,
		rec.ActualCash,
		rec.Difference,
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

// ListReconciliations lists reconciliation records, newest first.
func (r *ShiftRepository) ListReconciliations(ctx context.Context, limit, offset int) ([]*domain.ShiftReconciliation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, shift_id, operator_name, initial_cash, app_cash_in, voucher_cash_in,
		       expected_cash, actual_cash, difference, notes, created_at
		FROM shift_reconciliations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.ShiftReconciliation
	for rows.Next() {
		var rec domain.ShiftReconciliation
		err := rows.Scan(
			&rec.ID,
			&rec.ShiftID,
			&rec.OperatorName,
			&rec.InitialCash,
			&rec.AppCashIn,
			&rec.VoucherCashIn,
			&rec.ExpectedCash,
			&rec.ActualCash,
			&rec.Difference,
			&rec.Notes,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
