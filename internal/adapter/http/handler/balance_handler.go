package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	RecalculateAccount(ctx context.Context, accountID string) (*usecase.RecalculationResult, error)
	RecalculateTenant(ctx context.Context, tenantID string) ([]*usecase.RecalculationResult, error)
	ListDailyBalances(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error)
}

// BalanceHandler handles balance recalculation and daily balance requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// RecalculateAccount rebuilds one account's balance from its movements.
func (h *BalanceHandler) RecalculateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.balanceUC.RecalculateAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to recalculate account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecalculationFromUseCase(result))
}

// RecalculateTenant sweeps every account of the tenant. Partial failures are
// reported alongside the accounts that did recalculate.
func (h *BalanceHandler) RecalculateTenant(w http.ResponseWriter, r *http.Request) {
	results, err := h.balanceUC.RecalculateTenant(r.Context(), tenantID(r))
	if err != nil && len(results) == 0 {
		writeError(w, mapDomainError(err), "failed to recalculate balances", err.Error())
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.RecalculationsFromUseCase(results))
}

// ListDaily returns an account's stored daily balance rows for a period.
func (h *BalanceHandler) ListDaily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	balances, err := h.balanceUC.ListDailyBalances(r.Context(), id, parseTimeQuery(r, "from"), parseTimeQuery(r, "to"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list daily balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DailyBalancesFromDomain(balances))
}
