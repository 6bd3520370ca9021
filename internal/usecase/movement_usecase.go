package usecase

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
)

// MovementUseCase handles direct ledger operations: manual entries and
// read-side queries. Installment-driven movements go through PaymentUseCase.
type MovementUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	auditRepo    AuditRepository
	balances     *BalanceUseCase
	cache        Cache
	idGen        IDGenerator
	logger       *slog.Logger
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	auditRepo AuditRepository,
	balances *BalanceUseCase,
	idGen IDGenerator,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		balances:     balances,
		idGen:        idGen,
		logger:       slog.Default(),
	}
}

// WithCache attaches the summary cache invalidated after mutations.
func (uc *MovementUseCase) WithCache(cache Cache) *MovementUseCase {
	uc.cache = cache
	return uc
}

// AppendManualInput represents a manually posted ledger entry.
type AppendManualInput struct {
	TenantID    string
	AccountID   string
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	Date        time.Time
	Description string
}

// AppendManual posts a manual movement and updates the account balance in the
// same transaction.
func (uc *MovementUseCase) AppendManual(ctx context.Context, input AppendManualInput) (*domain.Movement, error) {
	now := time.Now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	movement := &domain.Movement{
		ID:          uc.idGen.Generate(),
		TenantID:    input.TenantID,
		AccountID:   input.AccountID,
		Inflow:      input.Inflow,
		Outflow:     input.Outflow,
		Date:        date,
		Description: input.Description,
		Origin:      domain.OriginManual,
		CreatedAt:   now,
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(txCtx, tx, movement); err != nil {
		return nil, err
	}

	newBalance := account.CurrentBalance.Add(movement.Amount())
	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
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
		Action:       string(domain.AuditActionMovementAppend),
		ResourceType: "movement",
		ResourceID:   movement.ID,
		Description:  "manual ledger entry posted",
		Metadata:     domain.MarshalState(movement),
		CreatedAt:    now,
	}
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if err := uc.balances.RecalculateFrom(ctx, input.AccountID, date); err != nil {
		uc.logger.Warn("post-append daily balance recompute failed",
			"account_id", input.AccountID,
			"error", err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, summaryCacheKey(input.AccountID)); err != nil {
			uc.logger.Warn("summary cache invalidation failed", "account_id", input.AccountID, "error", err)
		}
	}

	return movement, nil
}

// Query streams movements matching the filter, ordered by date ascending then
// insertion order. The sequence restarts the query on every range.
func (uc *MovementUseCase) Query(ctx context.Context, filter MovementFilter) iter.Seq2[*domain.Movement, error] {
	return uc.movementRepo.Query(ctx, filter)
}

// ListMovements collects a bounded page from Query for API consumers.
func (uc *MovementUseCase) ListMovements(ctx context.Context, filter MovementFilter, limit, offset int) ([]*domain.Movement, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	movements := make([]*domain.Movement, 0, limit)

	i := 0
	for movement, err := range uc.movementRepo.Query(ctx, filter) {
		if err != nil {
			return nil, err
		}

		if i >= offset && len(movements) < limit {
			movements = append(movements, movement)
		}

		i++
		if len(movements) == limit {
			break
		}
	}

	return movements, nil
}

// MovementSummary aggregates a date range for account "resumo" views.
type MovementSummary struct {
	AccountID string
	From      time.Time
	To        time.Time
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	Net       decimal.Decimal
}

// Summarize returns aggregate inflow/outflow/net totals for a date range.
func (uc *MovementUseCase) Summarize(ctx context.Context, accountID string, from, to time.Time) (*MovementSummary, error) {
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	inflow, outflow, err := uc.movementRepo.Summarize(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	return &MovementSummary{
		AccountID: accountID,
		From:      from,
		To:        to,
		Inflow:    inflow,
		Outflow:   outflow,
		Net:       inflow.Sub(outflow),
	}, nil
}
