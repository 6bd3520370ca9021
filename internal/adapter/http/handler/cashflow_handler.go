package handler

import (
	"context"
	"net/http"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// CashFlowService defines the behavior needed by CashFlowHandler.
type CashFlowService interface {
	GetCashFlow(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error)
}

// CashFlowHandler handles cash-flow projection requests.
type CashFlowHandler struct {
	cashFlowUC CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler.
func NewCashFlowHandler(cashFlowUC CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowUC: cashFlowUC}
}

// Get returns the merged realized and projected timeline for a period.
func (h *CashFlowHandler) Get(w http.ResponseWriter, r *http.Request) {
	includePending := r.URL.Query().Get("include_pending") != "false"

	entries, err := h.cashFlowUC.GetCashFlow(r.Context(), usecase.GetCashFlowInput{
		TenantID:       tenantID(r),
		From:           parseTimeQuery(r, "from"),
		To:             parseTimeQuery(r, "to"),
		AccountID:      r.URL.Query().Get("account_id"),
		IncludePending: includePending,
		DateBasis:      domain.DateBasis(r.URL.Query().Get("date_basis")),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to project cash flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowFromDomain(entries))
}
