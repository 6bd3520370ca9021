package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is a write-only record of what happened, appended inside the same
// transaction as the mutation it describes.
type AuditLog struct {
	ID           string
	TenantID     string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Description  string
	Metadata     JSON
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionAccountCreate AuditAction = "account.create"
	AuditActionAccountUpdate AuditAction = "account.update"
	AuditActionAccountDelete AuditAction = "account.delete"

	AuditActionTitleCreate AuditAction = "title.create"

	AuditActionInstallmentPay     AuditAction = "installment.pay"
	AuditActionInstallmentReverse AuditAction = "installment.reverse"

	AuditActionMovementAppend AuditAction = "movement.append"

	AuditActionBalanceRecalculate AuditAction = "balance.recalculate"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	TenantID     string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
