package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmaia/contaflux/internal/domain"
)

// DailyBalanceRepository implements usecase.DailyBalanceRepository.
type DailyBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewDailyBalanceRepository creates a new DailyBalanceRepository.
func NewDailyBalanceRepository(pool *pgxpool.Pool) *DailyBalanceRepository {
	return &DailyBalanceRepository{pool: pool}
}

// ReplaceFrom atomically deletes every daily row dated on or after from and
// inserts the recomputed ones.
func (r *DailyBalanceRepository) ReplaceFrom(ctx context.Context, accountID string, from time.Time, rows []*domain.DailyBalance) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		DELETE FROM daily_balances
		WHERE account_id = $1 AND date >= $2`,
		accountID, timeToPgTimestamptz(from),
	)
	if err != nil {
		return err
	}

	for _, row := range rows {
		_, err = tx.Exec(ctx, `
			INSERT INTO daily_balances (account_id, date, inflow, outflow, closing, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			row.AccountID,
			timeToPgTimestamptz(row.Date),
			decimalToNumeric(row.Inflow),
			decimalToNumeric(row.Outflow),
			decimalToNumeric(row.Closing),
			timeToPgTimestamptz(row.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetLastBefore returns the most recent daily row strictly before date, or
// nil when the account has none.
func (r *DailyBalanceRepository) GetLastBefore(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalance, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT account_id, date, inflow, outflow, closing, updated_at
		FROM daily_balances
		WHERE account_id = $1 AND date < $2
		ORDER BY date DESC
		LIMIT 1`,
		accountID, timeToPgTimestamptz(date),
	)

	balance, err := scanDailyBalance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return balance, nil
}

// ListRange lists daily rows within a date range, oldest first.
func (r *DailyBalanceRepository) ListRange(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id, date, inflow, outflow, closing, updated_at
		FROM daily_balances
		WHERE account_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`,
		accountID, timeToPgTimestamptz(from), timeToPgTimestamptz(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.DailyBalance
	for rows.Next() {
		balance, err := scanDailyBalance(rows)
		if err != nil {
			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

func scanDailyBalance(row pgx.Row) (*domain.DailyBalance, error) {
	var (
		balance                  domain.DailyBalance
		inflow, outflow, closing pgtype.Numeric
		date, updatedAt          pgtype.Timestamptz
	)

	err := row.Scan(
		&balance.AccountID,
		&date,
		&inflow,
		&outflow,
		&closing,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance.Date = date.Time
	balance.Inflow = numericToDecimal(inflow)
	balance.Outflow = numericToDecimal(outflow)
	balance.Closing = numericToDecimal(closing)
	balance.UpdatedAt = updatedAt.Time

	return &balance, nil
}
