package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
)

// AccountUseCase handles financial account registry logic.
type AccountUseCase struct {
	accountRepo     AccountRepository
	movementRepo    MovementRepository
	installmentRepo InstallmentRepository
	auditRepo       AuditRepository
	cache           Cache
	idGen           IDGenerator
	logger          *slog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	installmentRepo InstallmentRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:     accountRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		logger:          slog.Default(),
	}
}

// WithCache attaches the account summary cache.
func (uc *AccountUseCase) WithCache(cache Cache) *AccountUseCase {
	uc.cache = cache
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	TenantID       string
	Name           string
	Type           domain.AccountType
	BankName       string
	BankAgency     string
	BankNumber     string
	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
}

// CreateAccount creates a new account. The current balance starts at the
// declared opening balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	openingDate := input.OpeningDate
	if openingDate.IsZero() {
		openingDate = now
	}

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		TenantID:       input.TenantID,
		Name:           input.Name,
		Type:           input.Type,
		BankName:       input.BankName,
		BankAgency:     input.BankAgency,
		BankNumber:     input.BankNumber,
		OpeningBalance: input.OpeningBalance,
		OpeningDate:    openingDate,
		CurrentBalance: input.OpeningBalance,
		Status:         domain.AccountStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.audit(ctx, account.TenantID, domain.AuditActionAccountCreate, account.ID,
		"account created", domain.MarshalState(account))

	return account, nil
}

// UpdateAccountInput carries the mutable account fields. Opening balance and
// opening date are append-only facts; supplying them is a validation error.
type UpdateAccountInput struct {
	ID             string
	Name           *string
	Type           *domain.AccountType
	BankName       *string
	BankAgency     *string
	BankNumber     *string
	Status         *domain.AccountStatus
	OpeningBalance *decimal.Decimal
	OpeningDate    *time.Time
}

// UpdateAccount mutates descriptive and status fields of an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	if input.OpeningBalance != nil || input.OpeningDate != nil {
		return nil, domain.ErrOpeningImmutable
	}

	account, err := uc.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = *input.Name
	}

	if input.Type != nil {
		account.Type = *input.Type
	}

	if input.BankName != nil {
		account.BankName = *input.BankName
	}

	if input.BankAgency != nil {
		account.BankAgency = *input.BankAgency
	}

	if input.BankNumber != nil {
		account.BankNumber = *input.BankNumber
	}

	if input.Status != nil {
		account.Status = *input.Status
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.audit(ctx, account.TenantID, domain.AuditActionAccountUpdate, account.ID,
		"account updated", domain.MarshalState(account))

	return account, nil
}

// DeleteAction reports how a delete request was resolved.
type DeleteAction string

const (
	// DeleteActionHard means the account row was removed.
	DeleteActionHard DeleteAction = "deleted"
	// DeleteActionSoft means the account was marked inactive because
	// ledger movements reference it.
	DeleteActionSoft DeleteAction = "inactivated"
)

// DeleteAccount removes an account with no linked movements, or marks it
// inactive otherwise. The returned action says which happened.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) (DeleteAction, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	count, err := uc.movementRepo.CountByAccount(ctx, id)
	if err != nil {
		return "", err
	}

	action := DeleteActionHard
	if count == 0 {
		if err := uc.accountRepo.Delete(ctx, id); err != nil {
			return "", err
		}
	} else {
		action = DeleteActionSoft
		account.Status = domain.AccountStatusInactive
		account.UpdatedAt = time.Now().UTC()

		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return "", err
		}
	}

	uc.audit(ctx, account.TenantID, domain.AuditActionAccountDelete, id,
		string(action), domain.JSON{"linked_movements": count})

	return action, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListAccounts lists a tenant's accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, input.TenantID, limit, offset)
}

// GetSummary aggregates open and realized receivables and payables for one
// account. The result feeds reporting views and is cached; a stale read is
// acceptable, the cache is invalidated after each mutation.
func (uc *AccountUseCase) GetSummary(ctx context.Context, accountID string) (*domain.AccountSummary, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, summaryCacheKey(accountID)); err == nil && cached != "" {
			var summary domain.AccountSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	openReceivables, err := uc.installmentRepo.SumPendingByAccount(ctx, accountID, domain.TitleReceivable)
	if err != nil {
		return nil, err
	}

	openPayables, err := uc.installmentRepo.SumPendingByAccount(ctx, accountID, domain.TitlePayable)
	if err != nil {
		return nil, err
	}

	realizedReceivables, err := uc.movementRepo.SumByOrigin(ctx, accountID, domain.OriginReceivableInstallment)
	if err != nil {
		return nil, err
	}

	realizedPayables, err := uc.movementRepo.SumByOrigin(ctx, accountID, domain.OriginPayableInstallment)
	if err != nil {
		return nil, err
	}

	summary := &domain.AccountSummary{
		AccountID:           accountID,
		CurrentBalance:      account.CurrentBalance,
		OpenReceivables:     openReceivables,
		RealizedReceivables: realizedReceivables,
		OpenPayables:        openPayables,
		RealizedPayables:    realizedPayables.Abs(),
	}
	summary.Net = summary.OpenReceivables.Add(summary.RealizedReceivables).
		Sub(summary.OpenPayables).Sub(summary.RealizedPayables)

	if uc.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := uc.cache.Set(ctx, summaryCacheKey(accountID), string(encoded), SummaryCacheTTL); err != nil {
				uc.logger.Warn("summary cache write failed", "account_id", accountID, "error", err)
			}
		}
	}

	return summary, nil
}

func (uc *AccountUseCase) audit(ctx context.Context, tenantID string, action domain.AuditAction, resourceID, description string, metadata domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	userID := "system"
	if actor, ok := domain.ActorFromContext(ctx); ok && actor.UserID != "" {
		userID = actor.UserID
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     tenantID,
		UserID:       userID,
		Action:       string(action),
		ResourceType: "account",
		ResourceID:   resourceID,
		Description:  description,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn("audit append failed", "action", action, "resource_id", resourceID, "error", err)
	}
}

func summaryCacheKey(accountID string) string {
	return "summary:" + accountID
}
