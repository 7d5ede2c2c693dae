package usecase

import (
	"context"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
)

// DuplicateGuard flags probable repeat submissions of manually entered
// card-service events before they reach the atomic core. It is a
// heuristic: false positives are overridable with Force, false negatives
// are accepted risk. It never enforces hard uniqueness.
type DuplicateGuard struct {
	auditRepo AuditRepository
	now       func() time.Time
}

// NewDuplicateGuard creates a new DuplicateGuard.
func NewDuplicateGuard(auditRepo AuditRepository) *DuplicateGuard {
	return &DuplicateGuard{
		auditRepo: auditRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Check scans same-day audit records for one whose normalized customer
// name, machine and fee amount all match the submission. A hit returns a
// resumable PossibleDuplicateError; the caller may force-proceed.
func (g *DuplicateGuard) Check(ctx context.Context, ev *domain.EDCServiceEvent) error {
	now := g.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	records, err := g.auditRepo.ListByKindSince(ctx, domain.EventEDCService, dayStart)
	if err != nil {
		// The guard is advisory: a failed scan must not block the event.
		return nil
	}

	normalized := domain.NormalizeCustomerName(ev.CustomerName)
	for _, rec := range records {
		if domain.NormalizeCustomerName(rec.CustomerName) != normalized {
			continue
		}
		if rec.Counterparty != ev.MachineName {
			continue
		}
		if rec.FeeAmount != ev.Fee {
			continue
		}

		return &domain.PossibleDuplicateError{
			ExistingRecordID: rec.ID,
			CustomerName:     rec.CustomerName,
			Counterparty:     rec.Counterparty,
			FeeAmount:        rec.FeeAmount,
		}
	}

	return nil
}
