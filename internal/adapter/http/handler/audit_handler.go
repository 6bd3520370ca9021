package handler

import (
	"context"
	"net/http"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler handles audit trail read requests.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit entries for the tenant, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		TenantID:     tenantID(r),
		UserID:       r.URL.Query().Get("user_id"),
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		ResourceID:   r.URL.Query().Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 50),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	if from := parseTimeQuery(r, "from"); !from.IsZero() {
		filter.StartDate = &from
	}
	if to := parseTimeQuery(r, "to"); !to.IsZero() {
		filter.EndDate = &to
	}

	logs, err := h.auditUC.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		Logs:  dto.AuditLogsFromDomain(logs),
		Total: int64(len(logs)),
	})
}
