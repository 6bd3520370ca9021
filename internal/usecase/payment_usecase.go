package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/infrastructure/metrics"
)

// PaymentUseCase drives the installment state machine: pay and reverse.
type PaymentUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	titleRepo       TitleRepository
	installmentRepo InstallmentRepository
	movementRepo    MovementRepository
	auditRepo       AuditRepository
	methodValidator PaymentMethodValidator
	balances        *BalanceUseCase
	cache           Cache
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	titleRepo TitleRepository,
	installmentRepo InstallmentRepository,
	movementRepo MovementRepository,
	auditRepo AuditRepository,
	methodValidator PaymentMethodValidator,
	balances *BalanceUseCase,
	idGen IDGenerator,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		titleRepo:       titleRepo,
		installmentRepo: installmentRepo,
		movementRepo:    movementRepo,
		auditRepo:       auditRepo,
		methodValidator: methodValidator,
		balances:        balances,
		idGen:           idGen,
		logger:          slog.Default(),
	}
}

// WithRetrier attaches a transient-failure retrier around the pay and reverse
// transactions.
func (uc *PaymentUseCase) WithRetrier(retrier Retrier) *PaymentUseCase {
	uc.retrier = retrier
	return uc
}

// WithMetrics attaches Prometheus metrics.
func (uc *PaymentUseCase) WithMetrics(m *metrics.Metrics) *PaymentUseCase {
	uc.metrics = m
	return uc
}

// WithCache attaches the summary cache invalidated after mutations.
func (uc *PaymentUseCase) WithCache(cache Cache) *PaymentUseCase {
	uc.cache = cache
	return uc
}

// PayInstallmentInput represents input for paying one installment.
type PayInstallmentInput struct {
	InstallmentID    string
	AccountID        string
	PaymentMethodID  string
	PaymentDate      time.Time
	CompensationDate *time.Time
}

// PayInstallmentResult is returned to the caller after a successful payment.
type PayInstallmentResult struct {
	Installment    *domain.Installment
	Title          *domain.Title
	AccountBalance decimal.Decimal
}

// PayInstallment records a payment for a pending installment: one ledger
// movement, the installment transition to "pago", the title aggregate
// recompute and the account balance update, all in one transaction.
func (uc *PaymentUseCase) PayInstallment(ctx context.Context, input PayInstallmentInput) (*PayInstallmentResult, error) {
	if input.InstallmentID == "" {
		return nil, domain.ErrInstallmentNotFound
	}

	if input.AccountID == "" {
		return nil, domain.ErrAccountNotFound
	}

	if input.PaymentMethodID == "" {
		return nil, domain.ErrPaymentMethodNotFound
	}

	if input.PaymentDate.IsZero() {
		input.PaymentDate = time.Now().UTC()
	}

	start := time.Now()

	var result *PayInstallmentResult

	err := uc.retry(ctx, func() error {
		var err error
		result, err = uc.payTx(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Daily-balance upkeep is advisory: the financial truth is committed,
	// a recompute failure is logged and surfaced separately.
	if err := uc.balances.RecalculateFrom(ctx, input.AccountID, input.PaymentDate); err != nil {
		uc.logger.Warn("post-payment daily balance recompute failed",
			"account_id", input.AccountID,
			"error", err,
		)
	}

	uc.invalidateSummary(ctx, input.AccountID)

	if uc.metrics != nil {
		uc.metrics.InstallmentsPaid.Inc()
		uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *PaymentUseCase) payTx(ctx context.Context, input PayInstallmentInput) (*PayInstallmentResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Row lock serializes concurrent pay/reverse on the same installment.
	installment, err := uc.installmentRepo.GetByIDForUpdate(txCtx, tx, input.InstallmentID)
	if err != nil {
		return nil, err
	}

	switch installment.Status {
	case domain.InstallmentPago:
		return nil, domain.ErrInstallmentAlreadyPaid
	case domain.InstallmentCancelado:
		return nil, domain.ErrInstallmentCancelled
	}

	title, err := uc.titleRepo.GetByIDForUpdate(txCtx, tx, installment.TitleID)
	if err != nil {
		return nil, err
	}

	if title.Status == domain.TitleStatusCancelado {
		return nil, domain.ErrTitleCancelled
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.methodValidator.Exists(txCtx, installment.TenantID, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, domain.ErrPaymentMethodNotFound
	}

	now := time.Now().UTC()

	movement := &domain.Movement{
		ID:            uc.idGen.Generate(),
		TenantID:      installment.TenantID,
		AccountID:     account.ID,
		Date:          input.PaymentDate,
		Description:   fmt.Sprintf("%s %s - %s", title.Type, installment.Sequence, title.Counterparty),
		Origin:        title.Type.Origin(),
		InstallmentID: &installment.ID,
		CreatedAt:     now,
	}

	if title.Type == domain.TitleReceivable {
		movement.Inflow = installment.Value
	} else {
		movement.Outflow = installment.Value
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(txCtx, tx, movement); err != nil {
		return nil, err
	}

	err = uc.installmentRepo.MarkPaid(txCtx, tx, installment.ID,
		input.PaymentDate, input.CompensationDate,
		input.AccountID, input.PaymentMethodID, now)
	if err != nil {
		return nil, err
	}

	updatedTitle, _, _, err := uc.recomputeTitle(txCtx, tx, title, &input.PaymentDate, now)
	if err != nil {
		return nil, err
	}

	newBalance := account.CurrentBalance.Add(movement.Amount())
	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	audit := uc.buildAudit(ctx, installment.TenantID, domain.AuditActionInstallmentPay, installment.ID,
		fmt.Sprintf("installment %s paid into account %s", installment.Sequence, account.Name),
		domain.JSON{
			"title_id":          title.ID,
			"account_id":        account.ID,
			"payment_method_id": input.PaymentMethodID,
			"movement_id":       movement.ID,
			"amount":            installment.Value.String(),
		})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	installment.Status = domain.InstallmentPago
	installment.PaymentDate = &input.PaymentDate
	installment.CompensationDate = input.CompensationDate
	installment.AccountID = &input.AccountID
	installment.PaymentMethodID = &input.PaymentMethodID
	installment.UpdatedAt = now

	return &PayInstallmentResult{
		Installment:    installment,
		Title:          updatedTitle,
		AccountBalance: newBalance,
	}, nil
}

// ReverseInstallmentInput represents input for reversing a payment.
type ReverseInstallmentInput struct {
	InstallmentID string
	Reason        string
}

// TitleAggregates reports the installment counts behind a title's status.
type TitleAggregates struct {
	Total   int
	Paid    int
	Pending int
}

// ReverseInstallmentResult is returned after a successful reversal.
type ReverseInstallmentResult struct {
	Installment *domain.Installment
	Title       *domain.Title
	Aggregates  TitleAggregates
}

// ReverseInstallment undoes a recorded payment: the generating movement is
// deleted, the installment returns to "pendente" and the title aggregate and
// account balances are recomputed. A paid installment with no matching
// movement is prior data corruption and is reported as such, never as a
// silent no-op.
func (uc *PaymentUseCase) ReverseInstallment(ctx context.Context, input ReverseInstallmentInput) (*ReverseInstallmentResult, error) {
	if input.InstallmentID == "" {
		return nil, domain.ErrInstallmentNotFound
	}

	start := time.Now()

	var result *ReverseInstallmentResult

	var touched []accountRecalc

	err := uc.retry(ctx, func() error {
		var err error
		result, touched, err = uc.reverseTx(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, t := range touched {
		if err := uc.balances.RecalculateFrom(ctx, t.accountID, t.from); err != nil {
			uc.logger.Warn("post-reversal daily balance recompute failed",
				"account_id", t.accountID,
				"error", err,
			)
		}

		uc.invalidateSummary(ctx, t.accountID)
	}

	if uc.metrics != nil {
		uc.metrics.InstallmentsReversed.Inc()
		uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// accountRecalc marks an account whose daily rows need recomputing from a date.
type accountRecalc struct {
	accountID string
	from      time.Time
}

func (uc *PaymentUseCase) reverseTx(ctx context.Context, input ReverseInstallmentInput) (*ReverseInstallmentResult, []accountRecalc, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	installment, err := uc.installmentRepo.GetByIDForUpdate(txCtx, tx, input.InstallmentID)
	if err != nil {
		return nil, nil, err
	}

	switch installment.Status {
	case domain.InstallmentPendente:
		return nil, nil, domain.ErrInstallmentNotPaid
	case domain.InstallmentCancelado:
		return nil, nil, domain.ErrInstallmentCancelled
	}

	title, err := uc.titleRepo.GetByIDForUpdate(txCtx, tx, installment.TitleID)
	if err != nil {
		return nil, nil, err
	}

	deleted, err := uc.movementRepo.DeleteByInstallment(txCtx, tx, installment.ID, title.Type.Origin())
	if err != nil {
		return nil, nil, err
	}

	if len(deleted) == 0 {
		return nil, nil, fmt.Errorf("%w: installment %s", domain.ErrReversalMovementMissing, installment.ID)
	}

	if len(deleted) > 1 {
		// The payment path guarantees one movement per (installment, origin).
		// Extra rows are prior corruption; all are removed and every touched
		// account recomputed below.
		uc.logger.Warn("reversal deleted multiple movements for installment",
			"installment_id", installment.ID,
			"count", len(deleted),
		)
	}

	now := time.Now().UTC()

	if err := uc.installmentRepo.MarkPending(txCtx, tx, installment.ID, now); err != nil {
		return nil, nil, err
	}

	updatedTitle, total, paid, err := uc.recomputeTitle(txCtx, tx, title, nil, now)
	if err != nil {
		return nil, nil, err
	}

	touched, err := uc.rebalanceAccounts(txCtx, tx, deleted, now)
	if err != nil {
		return nil, nil, err
	}

	audit := uc.buildAudit(ctx, installment.TenantID, domain.AuditActionInstallmentReverse, installment.ID,
		reverseDescription(installment.Sequence, input.Reason),
		domain.JSON{
			"title_id":          title.ID,
			"movements_deleted": len(deleted),
			"reason":            input.Reason,
		})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, nil, err
	}

	installment.Status = domain.InstallmentPendente
	installment.PaymentDate = nil
	installment.UpdatedAt = now

	return &ReverseInstallmentResult{
		Installment: installment,
		Title:       updatedTitle,
		Aggregates: TitleAggregates{
			Total:   total,
			Paid:    paid,
			Pending: total - paid,
		},
	}, touched, nil
}

// rebalanceAccounts subtracts every deleted movement from its account and
// returns, per distinct account, the earliest date a daily recompute must
// start from. Accounts are locked in sorted order.
func (uc *PaymentUseCase) rebalanceAccounts(ctx context.Context, tx Transaction, deleted []*domain.Movement, now time.Time) ([]accountRecalc, error) {
	deltas := make(map[string]decimal.Decimal)
	earliest := make(map[string]time.Time)

	for _, m := range deleted {
		deltas[m.AccountID] = deltas[m.AccountID].Add(m.Amount())
		if first, ok := earliest[m.AccountID]; !ok || m.Date.Before(first) {
			earliest[m.AccountID] = m.Date
		}
	}

	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	touched := make([]accountRecalc, 0, len(ids))
	for _, id := range ids {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		newBalance := account.CurrentBalance.Sub(deltas[id])
		if err := uc.accountRepo.UpdateBalance(ctx, tx, id, newBalance, now); err != nil {
			return nil, err
		}

		touched = append(touched, accountRecalc{accountID: id, from: earliest[id]})
	}

	return touched, nil
}

// recomputeTitle re-derives a title's status from its installment counts.
// settledAt is the settlement date candidate; it is only stored when the
// title becomes fully paid. The locked flag tracks full settlement.
func (uc *PaymentUseCase) recomputeTitle(ctx context.Context, tx Transaction, title *domain.Title, settledAt *time.Time, now time.Time) (*domain.Title, int, int, error) {
	total, paid, err := uc.installmentRepo.CountByStatus(ctx, tx, title.ID)
	if err != nil {
		return nil, 0, 0, err
	}

	status := domain.AggregateStatus(total, paid)

	var settlement *time.Time
	locked := false
	if status == domain.TitleStatusPago {
		settlement = settledAt
		locked = true
	}

	err = uc.titleRepo.UpdateAggregate(ctx, tx, title.ID, status, settlement, locked, now)
	if err != nil {
		return nil, 0, 0, err
	}

	updated := *title
	updated.Status = status
	updated.SettlementDate = settlement
	updated.Locked = locked
	updated.UpdatedAt = now

	return &updated, total, paid, nil
}

func (uc *PaymentUseCase) buildAudit(ctx context.Context, tenantID string, action domain.AuditAction, installmentID, description string, metadata domain.JSON) *domain.AuditLog {
	userID := "system"
	if actor, ok := domain.ActorFromContext(ctx); ok && actor.UserID != "" {
		userID = actor.UserID
	}

	return &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     tenantID,
		UserID:       userID,
		Action:       string(action),
		ResourceType: "installment",
		ResourceID:   installmentID,
		Description:  description,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}
}

func (uc *PaymentUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *PaymentUseCase) invalidateSummary(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, summaryCacheKey(accountID)); err != nil {
		uc.logger.Warn("summary cache invalidation failed", "account_id", accountID, "error", err)
	}
}

func reverseDescription(sequence, reason string) string {
	if reason == "" {
		return fmt.Sprintf("payment of installment %s reversed", sequence)
	}

	return fmt.Sprintf("payment of installment %s reversed: %s", sequence, reason)
}
