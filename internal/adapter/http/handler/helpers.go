package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
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

// mapDomainError maps domain errors to HTTP status codes. Conflicts are state
// machine violations the caller can observe and retry around; integrity
// failures surface as 500 because they mean stored data broke an invariant.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTitleNotFound),
		errors.Is(err, domain.ErrInstallmentNotFound),
		errors.Is(err, domain.ErrMovementNotFound),
		errors.Is(err, domain.ErrPaymentMethodNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInstallmentAlreadyPaid),
		errors.Is(err, domain.ErrInstallmentNotPaid):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReversalMovementMissing):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrOneSidedAmountRequired),
		errors.Is(err, domain.ErrUnknownOrigin),
		errors.Is(err, domain.ErrManualOriginRequired),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidTitleType),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrOpeningImmutable),
		errors.Is(err, domain.ErrInvalidInstallments),
		errors.Is(err, domain.ErrInstallmentValueSum),
		errors.Is(err, domain.ErrInstallmentCancelled),
		errors.Is(err, domain.ErrTitleCancelled):
		return http.StatusBadRequest
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

// parseTimeQuery parses an RFC 3339 or date-only query parameter. The zero
// time is returned when the parameter is absent or malformed.
func parseTimeQuery(r *http.Request, key string) time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t
	}
	return time.Time{}
}

// tenantID extracts the tenant from the request context. The tenant
// middleware guarantees presence on API routes.
func tenantID(r *http.Request) string {
	actor, _ := domain.ActorFromContext(r.Context())
	return actor.TenantID
}
