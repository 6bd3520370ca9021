package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// CreateAccountRequest represents a request to create a financial account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	BankName       string          `json:"bank_name,omitempty"`
	BankAgency     string          `json:"bank_agency,omitempty"`
	BankNumber     string          `json:"bank_number,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningDate    time.Time       `json:"opening_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(tenantID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		TenantID:       tenantID,
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		BankName:       r.BankName,
		BankAgency:     r.BankAgency,
		BankNumber:     r.BankNumber,
		OpeningBalance: r.OpeningBalance,
		OpeningDate:    r.OpeningDate,
	}
}

// UpdateAccountRequest represents a partial account update. Absent fields are
// left untouched.
type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	BankName       *string          `json:"bank_name,omitempty"`
	BankAgency     *string          `json:"bank_agency,omitempty"`
	BankNumber     *string          `json:"bank_number,omitempty"`
	Status         *string          `json:"status,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	OpeningDate    *time.Time       `json:"opening_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(id string) usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		ID:             id,
		Name:           r.Name,
		BankName:       r.BankName,
		BankAgency:     r.BankAgency,
		BankNumber:     r.BankNumber,
		OpeningBalance: r.OpeningBalance,
		OpeningDate:    r.OpeningDate,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		input.Type = &t
	}
	if r.Status != nil {
		s := domain.AccountStatus(*r.Status)
		input.Status = &s
	}
	return input
}

// InstallmentItem represents a single installment in a title creation request.
type InstallmentItem struct {
	Sequence        string          `json:"sequence"`
	DueDate         time.Time       `json:"due_date"`
	Value           decimal.Decimal `json:"value"`
	AccountID       *string         `json:"account_id,omitempty"`
	PaymentMethodID *string         `json:"payment_method_id,omitempty"`
}

// CreateTitleRequest represents a request to create a title with its
// installment plan.
type CreateTitleRequest struct {
	Type         string            `json:"type"`
	Counterparty string            `json:"counterparty"`
	TotalValue   decimal.Decimal   `json:"total_value"`
	Installments []InstallmentItem `json:"installments"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTitleRequest) ToUseCaseInput(tenantID string) usecase.CreateTitleInput {
	installments := make([]usecase.CreateInstallmentInput, len(r.Installments))
	for i, item := range r.Installments {
		installments[i] = usecase.CreateInstallmentInput{
			Sequence:        item.Sequence,
			DueDate:         item.DueDate,
			Value:           item.Value,
			AccountID:       item.AccountID,
			PaymentMethodID: item.PaymentMethodID,
		}
	}
	return usecase.CreateTitleInput{
		TenantID:     tenantID,
		Type:         domain.TitleType(r.Type),
		Counterparty: r.Counterparty,
		TotalValue:   r.TotalValue,
		Installments: installments,
	}
}

// PayInstallmentRequest represents a request to record an installment payment.
type PayInstallmentRequest struct {
	AccountID        string     `json:"account_id"`
	PaymentMethodID  string     `json:"payment_method_id"`
	PaymentDate      time.Time  `json:"payment_date"`
	CompensationDate *time.Time `json:"compensation_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PayInstallmentRequest) ToUseCaseInput(installmentID string) usecase.PayInstallmentInput {
	return usecase.PayInstallmentInput{
		InstallmentID:    installmentID,
		AccountID:        r.AccountID,
		PaymentMethodID:  r.PaymentMethodID,
		PaymentDate:      r.PaymentDate,
		CompensationDate: r.CompensationDate,
	}
}

// ReverseInstallmentRequest represents a request to undo a recorded payment.
type ReverseInstallmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseInstallmentRequest) ToUseCaseInput(installmentID string) usecase.ReverseInstallmentInput {
	return usecase.ReverseInstallmentInput{
		InstallmentID: installmentID,
		Reason:        r.Reason,
	}
}

// AppendMovementRequest represents a request to post a manual ledger movement.
type AppendMovementRequest struct {
	AccountID   string          `json:"account_id"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *AppendMovementRequest) ToUseCaseInput(tenantID string) usecase.AppendManualInput {
	return usecase.AppendManualInput{
		TenantID:    tenantID,
		AccountID:   r.AccountID,
		Inflow:      r.Inflow,
		Outflow:     r.Outflow,
		Date:        r.Date,
		Description: r.Description,
	}
}
