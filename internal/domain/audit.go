package domain

import (
	"strings"
	"time"
	"unicode"
)

// JSON holds free-form, event-specific business facts.
type JSON map[string]any

// AuditRecord is the denormalized "what happened" record written once per
// business event, outside the atomic unit. It is best-effort telemetry:
// its absence never corrupts the ledger, its presence enables grouped
// history views and duplicate detection.
type AuditRecord struct {
	ID            string
	CorrelationID string
	EventKind     EventKind
	CustomerName  string
	Counterparty  string // receiving bank, EDC machine, product code...
	Amount        int64
	FeeAmount     int64
	Profit        int64
	DeviceName    string
	Details       JSON
	CreatedAt     time.Time
}

// NormalizeCustomerName case-folds and strips non-alphanumerics so the
// duplicate guard compares "Budi Santoso" and "budi-santoso" as equal.
func NormalizeCustomerName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
