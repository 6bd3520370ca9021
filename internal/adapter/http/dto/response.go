package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents a financial account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	BankName       string          `json:"bank_name,omitempty"`
	BankAgency     string          `json:"bank_agency,omitempty"`
	BankNumber     string          `json:"bank_number,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningDate    time.Time       `json:"opening_date"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		BankName:       a.BankName,
		BankAgency:     a.BankAgency,
		BankNumber:     a.BankNumber,
		OpeningBalance: a.OpeningBalance,
		OpeningDate:    a.OpeningDate,
		CurrentBalance: a.CurrentBalance,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// DeleteAccountResponse reports what deleting an account actually did.
type DeleteAccountResponse struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// AccountSummaryResponse represents the per-account financial summary.
type AccountSummaryResponse struct {
	AccountID           string          `json:"account_id"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	OpenReceivables     decimal.Decimal `json:"open_receivables"`
	RealizedReceivables decimal.Decimal `json:"realized_receivables"`
	OpenPayables        decimal.Decimal `json:"open_payables"`
	RealizedPayables    decimal.Decimal `json:"realized_payables"`
	Net                 decimal.Decimal `json:"net"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s *domain.AccountSummary) *AccountSummaryResponse {
	return &AccountSummaryResponse{
		AccountID:           s.AccountID,
		CurrentBalance:      s.CurrentBalance,
		OpenReceivables:     s.OpenReceivables,
		RealizedReceivables: s.RealizedReceivables,
		OpenPayables:        s.OpenPayables,
		RealizedPayables:    s.RealizedPayables,
		Net:                 s.Net,
	}
}

// MovementResponse represents a ledger movement in API responses.
type MovementResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Inflow        decimal.Decimal `json:"inflow"`
	Outflow       decimal.Decimal `json:"outflow"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Origin        string          `json:"origin"`
	InstallmentID *string         `json:"installment_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Inflow:        m.Inflow,
		Outflow:       m.Outflow,
		Date:          m.Date,
		Description:   m.Description,
		Origin:        string(m.Origin),
		InstallmentID: m.InstallmentID,
		CreatedAt:     m.CreatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int64               `json:"total"`
}

// MovementSummaryResponse represents aggregate inflow/outflow totals.
type MovementSummaryResponse struct {
	AccountID string          `json:"account_id"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
	Net       decimal.Decimal `json:"net"`
}

// MovementSummaryFromUseCase converts a use case summary to a response.
func MovementSummaryFromUseCase(s *usecase.MovementSummary) *MovementSummaryResponse {
	return &MovementSummaryResponse{
		AccountID: s.AccountID,
		From:      s.From,
		To:        s.To,
		Inflow:    s.Inflow,
		Outflow:   s.Outflow,
		Net:       s.Net,
	}
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID               string          `json:"id"`
	TitleID          string          `json:"title_id"`
	Sequence         string          `json:"sequence"`
	DueDate          time.Time       `json:"due_date"`
	Value            decimal.Decimal `json:"value"`
	Status           string          `json:"status"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
	CompensationDate *time.Time      `json:"compensation_date,omitempty"`
	AccountID        *string         `json:"account_id,omitempty"`
	PaymentMethodID  *string         `json:"payment_method_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(i *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:               i.ID,
		TitleID:          i.TitleID,
		Sequence:         i.Sequence,
		DueDate:          i.DueDate,
		Value:            i.Value,
		Status:           string(i.Status),
		PaymentDate:      i.PaymentDate,
		CompensationDate: i.CompensationDate,
		AccountID:        i.AccountID,
		PaymentMethodID:  i.PaymentMethodID,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, item := range installments {
		result[i] = InstallmentFromDomain(item)
	}
	return result
}

// TitleResponse represents a title in API responses.
type TitleResponse struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type"`
	Counterparty   string                 `json:"counterparty"`
	TotalValue     decimal.Decimal        `json:"total_value"`
	Status         string                 `json:"status"`
	SettlementDate *time.Time             `json:"settlement_date,omitempty"`
	Locked         bool                   `json:"locked"`
	Installments   []*InstallmentResponse `json:"installments,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// TitleFromDomain converts a domain title to a response.
func TitleFromDomain(t *domain.Title) *TitleResponse {
	return &TitleResponse{
		ID:             t.ID,
		Type:           string(t.Type),
		Counterparty:   t.Counterparty,
		TotalValue:     t.TotalValue,
		Status:         string(t.Status),
		SettlementDate: t.SettlementDate,
		Locked:         t.Locked,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TitlesFromDomain converts domain titles to responses.
func TitlesFromDomain(titles []*domain.Title) []*TitleResponse {
	result := make([]*TitleResponse, len(titles))
	for i, t := range titles {
		result[i] = TitleFromDomain(t)
	}
	return result
}

// TitleWithInstallmentsFromUseCase converts a title bundle to a response.
func TitleWithInstallmentsFromUseCase(t *usecase.TitleWithInstallments) *TitleResponse {
	resp := TitleFromDomain(t.Title)
	resp.Installments = InstallmentsFromDomain(t.Installments)
	return resp
}

// ListTitlesResponse wraps a page of titles.
type ListTitlesResponse struct {
	Titles []*TitleResponse `json:"titles"`
	Total  int64            `json:"total"`
}

// PayInstallmentResponse represents the outcome of a payment.
type PayInstallmentResponse struct {
	Installment    *InstallmentResponse `json:"installment"`
	Title          *TitleResponse       `json:"title"`
	AccountBalance decimal.Decimal      `json:"account_balance"`
}

// PayResultFromUseCase converts a payment result to a response.
func PayResultFromUseCase(r *usecase.PayInstallmentResult) *PayInstallmentResponse {
	return &PayInstallmentResponse{
		Installment:    InstallmentFromDomain(r.Installment),
		Title:          TitleFromDomain(r.Title),
		AccountBalance: r.AccountBalance,
	}
}

// TitleAggregatesResponse reports the installment counts behind a title.
type TitleAggregatesResponse struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
}

// ReverseInstallmentResponse represents the outcome of a reversal.
type ReverseInstallmentResponse struct {
	Installment *InstallmentResponse    `json:"installment"`
	Title       *TitleResponse          `json:"title"`
	Aggregates  TitleAggregatesResponse `json:"aggregates"`
}

// ReverseResultFromUseCase converts a reversal result to a response.
func ReverseResultFromUseCase(r *usecase.ReverseInstallmentResult) *ReverseInstallmentResponse {
	return &ReverseInstallmentResponse{
		Installment: InstallmentFromDomain(r.Installment),
		Title:       TitleFromDomain(r.Title),
		Aggregates: TitleAggregatesResponse{
			Total:   r.Aggregates.Total,
			Paid:    r.Aggregates.Paid,
			Pending: r.Aggregates.Pending,
		},
	}
}

// CashFlowEntryResponse represents one timeline entry in the projection.
type CashFlowEntryResponse struct {
	Origin        string          `json:"origin"`
	OriginID      string          `json:"origin_id"`
	Date          time.Time       `json:"date"`
	AccountID     *string         `json:"account_id,omitempty"`
	Inflow        decimal.Decimal `json:"inflow"`
	Outflow       decimal.Decimal `json:"outflow"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	InstallmentID *string         `json:"installment_id,omitempty"`
}

// CashFlowResponse wraps the projected timeline with running totals.
type CashFlowResponse struct {
	Entries []*CashFlowEntryResponse `json:"entries"`
	Inflow  decimal.Decimal          `json:"inflow"`
	Outflow decimal.Decimal          `json:"outflow"`
	Net     decimal.Decimal          `json:"net"`
}

// CashFlowFromDomain converts projected entries to a response, accumulating
// the period totals.
func CashFlowFromDomain(entries []*domain.CashFlowEntry) *CashFlowResponse {
	resp := &CashFlowResponse{
		Entries: make([]*CashFlowEntryResponse, len(entries)),
		Inflow:  decimal.Zero,
		Outflow: decimal.Zero,
	}
	for i, e := range entries {
		resp.Entries[i] = &CashFlowEntryResponse{
			Origin:        string(e.Origin),
			OriginID:      e.OriginID,
			Date:          e.Date,
			AccountID:     e.AccountID,
			Inflow:        e.Inflow,
			Outflow:       e.Outflow,
			Description:   e.Description,
			Status:        e.Status,
			InstallmentID: e.InstallmentID,
		}
		resp.Inflow = resp.Inflow.Add(e.Inflow)
		resp.Outflow = resp.Outflow.Add(e.Outflow)
	}
	resp.Net = resp.Inflow.Sub(resp.Outflow)
	return resp
}

// RecalculationResponse reports the outcome of a balance recalculation.
type RecalculationResponse struct {
	AccountID       string          `json:"account_id"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	Balance         decimal.Decimal `json:"balance"`
	Drift           decimal.Decimal `json:"drift"`
	RecalculatedAt  time.Time       `json:"recalculated_at"`
}

// RecalculationFromUseCase converts a recalculation result to a response.
func RecalculationFromUseCase(r *usecase.RecalculationResult) *RecalculationResponse {
	return &RecalculationResponse{
		AccountID:       r.AccountID,
		PreviousBalance: r.PreviousBalance,
		Balance:         r.Balance,
		Drift:           r.Drift,
		RecalculatedAt:  r.RecalculatedAt,
	}
}

// RecalculationsFromUseCase converts recalculation results to responses.
func RecalculationsFromUseCase(results []*usecase.RecalculationResult) []*RecalculationResponse {
	out := make([]*RecalculationResponse, len(results))
	for i, r := range results {
		out[i] = RecalculationFromUseCase(r)
	}
	return out
}

// AuditLogResponse represents an audit entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id,omitempty"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Description  string      `json:"description,omitempty"`
	Metadata     domain.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit entries to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Description:  l.Description,
			Metadata:     l.Metadata,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ListAuditLogsResponse wraps a page of audit entries.
type ListAuditLogsResponse struct {
	Logs  []*AuditLogResponse `json:"logs"`
	Total int64               `json:"total"`
}

// DailyBalanceResponse represents one daily balance row.
type DailyBalanceResponse struct {
	Date    time.Time       `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Closing decimal.Decimal `json:"closing"`
}

// DailyBalancesFromDomain converts domain daily balances to responses.
func DailyBalancesFromDomain(balances []*domain.DailyBalance) []*DailyBalanceResponse {
	result := make([]*DailyBalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = &DailyBalanceResponse{
			Date:    b.Date,
			Inflow:  b.Inflow,
			Outflow: b.Outflow,
			Closing: b.Closing,
		}
	}
	return result
}
