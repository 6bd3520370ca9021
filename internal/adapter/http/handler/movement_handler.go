package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	AppendManual(ctx context.Context, input usecase.AppendManualInput) (*domain.Movement, error)
	ListMovements(ctx context.Context, filter usecase.MovementFilter, limit, offset int) ([]*domain.Movement, error)
	Summarize(ctx context.Context, accountID string, from, to time.Time) (*usecase.MovementSummary, error)
}

// MovementHandler handles ledger movement HTTP requests.
type MovementHandler struct {
	movementUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// Append posts a manual movement to the ledger.
func (h *MovementHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req dto.AppendMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.AppendManual(r.Context(), req.ToUseCaseInput(tenantID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to append movement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// List lists movements with optional account, date and origin filters.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.MovementFilter{
		TenantID:  tenantID(r),
		AccountID: r.URL.Query().Get("account_id"),
		From:      parseTimeQuery(r, "from"),
		To:        parseTimeQuery(r, "to"),
		Origin:    domain.MovementOrigin(r.URL.Query().Get("origin")),
	}, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// ListByAccount lists an account's movements.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.MovementFilter{
		TenantID:  tenantID(r),
		AccountID: id,
		From:      parseTimeQuery(r, "from"),
		To:        parseTimeQuery(r, "to"),
	}, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// Summary returns aggregate inflow/outflow totals for an account and period.
func (h *MovementHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	summary, err := h.movementUC.Summarize(r.Context(), id, parseTimeQuery(r, "from"), parseTimeQuery(r, "to"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementSummaryFromUseCase(summary))
}
