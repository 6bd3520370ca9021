package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// TitleService defines the behavior needed by TitleHandler.
type TitleService interface {
	CreateTitle(ctx context.Context, input usecase.CreateTitleInput) (*usecase.TitleWithInstallments, error)
	GetTitle(ctx context.Context, id string) (*usecase.TitleWithInstallments, error)
	GetInstallment(ctx context.Context, id string) (*domain.Installment, error)
	ListTitles(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error)
}

// TitleHandler handles payable and receivable title HTTP requests.
type TitleHandler struct {
	titleUC TitleService
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(titleUC TitleService) *TitleHandler {
	return &TitleHandler{titleUC: titleUC}
}

// Create creates a title and its installment plan.
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	title, err := h.titleUC.CreateTitle(r.Context(), req.ToUseCaseInput(tenantID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create title", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TitleWithInstallmentsFromUseCase(title))
}

// Get retrieves a title with its installments.
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing title ID", "")
		return
	}

	title, err := h.titleUC.GetTitle(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get title", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TitleWithInstallmentsFromUseCase(title))
}

// List lists titles with optional type and status filters.
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	titles, err := h.titleUC.ListTitles(r.Context(), usecase.TitleFilter{
		TenantID: tenantID(r),
		Type:     domain.TitleType(r.URL.Query().Get("type")),
		Status:   domain.TitleStatus(r.URL.Query().Get("status")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list titles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTitlesResponse{
		Titles: dto.TitlesFromDomain(titles),
		Total:  int64(len(titles)),
	})
}

// GetInstallment retrieves a single installment by ID.
func (h *TitleHandler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	installment, err := h.titleUC.GetInstallment(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get installment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(installment))
}
