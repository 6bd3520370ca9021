package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
)

// BalanceUseCase recomputes account balances purely from the movement ledger.
//
// Two entry points share one aggregation walk: RecalculateFrom repairs the
// daily rows for dates at or after a changed movement, RecalculateAccount
// rebuilds everything from the opening balance. Both must land on the same
// numbers: current balance = opening balance + Σ(inflow - outflow) of all
// movements dated on or after the opening date.
type BalanceUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	dailyRepo    DailyBalanceRepository
	logger       *slog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	dailyRepo DailyBalanceRepository,
) *BalanceUseCase {
	return &BalanceUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		dailyRepo:    dailyRepo,
		logger:       slog.Default(),
	}
}

// RecalculationResult reports one account's rebuild outcome.
type RecalculationResult struct {
	AccountID       string
	PreviousBalance decimal.Decimal
	Balance         decimal.Decimal
	Drift           decimal.Decimal
	RecalculatedAt  time.Time
}

// RecalculateAccount rebuilds an account's current balance and all of its
// daily rows from scratch. Used for data repair and exposed as an
// administrative operation.
func (uc *BalanceUseCase) RecalculateAccount(ctx context.Context, accountID string) (*RecalculationResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.movementRepo.SumSigned(txCtx, tx, accountID, account.OpeningDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	balance := account.ExpectedBalance(sum)

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, accountID, balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	// Daily rows are derived state; rebuilding them outside the balance
	// transaction keeps the lock window short.
	if err := uc.rebuildDaily(ctx, account, account.OpeningDate, account.OpeningBalance); err != nil {
		uc.logger.Warn("daily balance rebuild failed",
			"account_id", accountID,
			"error", err,
		)
	}

	return &RecalculationResult{
		AccountID:       accountID,
		PreviousBalance: account.CurrentBalance,
		Balance:         balance,
		Drift:           balance.Sub(account.CurrentBalance),
		RecalculatedAt:  now,
	}, nil
}

// RecalculateFrom recomputes only the daily rows dated at or after from.
// Cheap and localized; called after every movement insert or delete.
func (uc *BalanceUseCase) RecalculateFrom(ctx context.Context, accountID string, from time.Time) error {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	day := truncateToDay(from)
	if day.Before(truncateToDay(account.OpeningDate)) {
		day = truncateToDay(account.OpeningDate)
	}

	opening := account.OpeningBalance
	if prev, err := uc.dailyRepo.GetLastBefore(ctx, accountID, day); err != nil {
		return err
	} else if prev != nil {
		opening = prev.Closing
	}

	return uc.rebuildDaily(ctx, account, day, opening)
}

// RecalculateTenant sweeps every account of a tenant. Each account is an
// independent transaction; one failure does not stop the others.
func (uc *BalanceUseCase) RecalculateTenant(ctx context.Context, tenantID string) ([]*RecalculationResult, error) {
	ids, err := uc.accountRepo.ListIDs(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	results := make([]*RecalculationResult, 0, len(ids))

	var firstErr error
	for _, id := range ids {
		result, err := uc.RecalculateAccount(ctx, id)
		if err != nil {
			uc.logger.Error("account recalculation failed during tenant sweep",
				"account_id", id,
				"error", err,
			)

			if firstErr == nil {
				firstErr = fmt.Errorf("recalculate account %s: %w", id, err)
			}

			continue
		}

		results = append(results, result)
	}

	return results, firstErr
}

// ListDailyBalances returns the stored daily rows for an account between two
// dates, inclusive.
func (uc *BalanceUseCase) ListDailyBalances(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error) {
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.dailyRepo.ListRange(ctx, accountID, truncateToDay(from), truncateToDay(to))
}

// rebuildDaily walks movements dated on or after from, in date then insertion
// order, and replaces the account's daily rows from that date forward.
// opening is the closing balance of the day before from.
func (uc *BalanceUseCase) rebuildDaily(ctx context.Context, account *domain.Account, from time.Time, opening decimal.Decimal) error {
	var rows []*domain.DailyBalance

	running := opening
	now := time.Now().UTC()

	var current *domain.DailyBalance

	for movement, err := range uc.movementRepo.Query(ctx, MovementFilter{
		AccountID: account.ID,
		From:      from,
	}) {
		if err != nil {
			return err
		}

		day := truncateToDay(movement.Date)

		if current == nil || !current.Date.Equal(day) {
			current = &domain.DailyBalance{
				AccountID: account.ID,
				Date:      day,
				UpdatedAt: now,
			}
			rows = append(rows, current)
		}

		current.Inflow = current.Inflow.Add(movement.Inflow)
		current.Outflow = current.Outflow.Add(movement.Outflow)

		running = running.Add(movement.Amount())
		current.Closing = running
	}

	return uc.dailyRepo.ReplaceFrom(ctx, account.ID, truncateToDay(from), rows)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
