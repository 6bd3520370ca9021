package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
)

// TitleUseCase owns payable/receivable titles and their installments.
type TitleUseCase struct {
	txManager       TransactionManager
	titleRepo       TitleRepository
	installmentRepo InstallmentRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
}

// NewTitleUseCase creates a new TitleUseCase.
func NewTitleUseCase(
	txManager TransactionManager,
	titleRepo TitleRepository,
	installmentRepo InstallmentRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *TitleUseCase {
	return &TitleUseCase{
		txManager:       txManager,
		titleRepo:       titleRepo,
		installmentRepo: installmentRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
	}
}

// CreateInstallmentInput is one scheduled installment of a new title.
type CreateInstallmentInput struct {
	Sequence        string
	DueDate         time.Time
	Value           decimal.Decimal
	AccountID       *string
	PaymentMethodID *string
}

// CreateTitleInput represents input for creating a title with installments.
type CreateTitleInput struct {
	TenantID     string
	Type         domain.TitleType
	Counterparty string
	TotalValue   decimal.Decimal
	Installments []CreateInstallmentInput
}

// TitleWithInstallments bundles a title and its installments for reads.
type TitleWithInstallments struct {
	Title        *domain.Title
	Installments []*domain.Installment
}

// CreateTitle creates a title and its installments in one transaction. The
// installment values must sum to the title total.
func (uc *TitleUseCase) CreateTitle(ctx context.Context, input CreateTitleInput) (*TitleWithInstallments, error) {
	if len(input.Installments) == 0 {
		return nil, domain.ErrInvalidInstallments
	}

	now := time.Now().UTC()

	title := &domain.Title{
		ID:           uc.idGen.Generate(),
		TenantID:     input.TenantID,
		Type:         input.Type,
		Counterparty: input.Counterparty,
		TotalValue:   input.TotalValue,
		Status:       domain.TitleStatusPendente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := title.Validate(); err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, 0, len(input.Installments))
	sum := decimal.Zero

	for _, in := range input.Installments {
		installment := &domain.Installment{
			ID:              uc.idGen.Generate(),
			TitleID:         title.ID,
			TenantID:        input.TenantID,
			Sequence:        in.Sequence,
			DueDate:         in.DueDate,
			Value:           in.Value,
			Status:          domain.InstallmentPendente,
			AccountID:       in.AccountID,
			PaymentMethodID: in.PaymentMethodID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := installment.Validate(); err != nil {
			return nil, err
		}

		sum = sum.Add(in.Value)
		installments = append(installments, installment)
	}

	if !sum.Equal(input.TotalValue) {
		return nil, domain.ErrInstallmentValueSum
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.titleRepo.Create(txCtx, tx, title); err != nil {
		return nil, err
	}

	if err := uc.installmentRepo.CreateBatch(txCtx, tx, installments); err != nil {
		return nil, err
	}

	userID := "system"
	if actor, ok := domain.ActorFromContext(ctx); ok && actor.UserID != "" {
		userID = actor.UserID
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     input.TenantID,
		UserID:       userID,
		Action:       string(domain.AuditActionTitleCreate),
		ResourceType: "title",
		ResourceID:   title.ID,
		Description:  "title created",
		Metadata: domain.JSON{
			"type":         string(title.Type),
			"total_value":  title.TotalValue.String(),
			"installments": len(installments),
		},
		CreatedAt: now,
	}
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &TitleWithInstallments{Title: title, Installments: installments}, nil
}

// GetTitle retrieves a title and its installments.
func (uc *TitleUseCase) GetTitle(ctx context.Context, id string) (*TitleWithInstallments, error) {
	title, err := uc.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	installments, err := uc.installmentRepo.ListByTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TitleWithInstallments{Title: title, Installments: installments}, nil
}

// GetInstallment retrieves a single installment by ID.
func (uc *TitleUseCase) GetInstallment(ctx context.Context, id string) (*domain.Installment, error) {
	return uc.installmentRepo.GetByID(ctx, id)
}

// ListTitles lists titles matching the filter.
func (uc *TitleUseCase) ListTitles(ctx context.Context, filter TitleFilter) ([]*domain.Title, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.titleRepo.List(ctx, filter)
}
