package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error onto the wire. Possible-duplicate
// signals carry the earlier record's details so the operator can confirm
// or force the submission.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var dup *domain.PossibleDuplicateError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{
			Error:   "possible duplicate",
			Message: err.Error(),
			Duplicate: &dto.DuplicateDetails{
				ExistingRecordID: dup.ExistingRecordID,
				CustomerName:     dup.CustomerName,
				Counterparty:     dup.Counterparty,
				FeeAmount:        dup.FeeAmount,
			},
		})
		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrAuditRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidSplit),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidOperator):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrNoSettlementDestination),
		errors.Is(err, domain.ErrEmptyMerchantBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPossibleDuplicate),
		errors.Is(err, domain.ErrShiftOpen),
		errors.Is(err, domain.ErrNoActiveShift):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
