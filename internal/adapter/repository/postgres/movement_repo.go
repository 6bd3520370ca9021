package postgres

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `id, tenant_id, account_id, inflow, outflow, date,
	description, origin, installment_id, created_at`

// Create inserts a dated ledger entry inside the caller's transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	_, err := txQuerier(tx, r.pool).Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		movement.ID,
		movement.TenantID,
		movement.AccountID,
		decimalToNumeric(movement.Inflow),
		decimalToNumeric(movement.Outflow),
		timeToPgTimestamptz(movement.Date),
		movement.Description,
		string(movement.Origin),
		movement.InstallmentID,
		timeToPgTimestamptz(movement.CreatedAt),
	)

	return err
}

// DeleteByInstallment removes the movements generated by an installment
// payment and returns the deleted rows. Used exclusively by the reversal
// path; the caller decides how to treat zero or multiple matches.
func (r *MovementRepository) DeleteByInstallment(ctx context.Context, tx usecase.Transaction, installmentID string, origin domain.MovementOrigin) ([]*domain.Movement, error) {
	rows, err := txQuerier(tx, r.pool).Query(ctx, `
		DELETE FROM movements
		WHERE installment_id = $1 AND origin = $2
		RETURNING `+movementColumns,
		installmentID, string(origin),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deleted []*domain.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		deleted = append(deleted, movement)
	}

	return deleted, rows.Err()
}

// Query returns a restartable sequence of movements ordered by date
// ascending, then by id for deterministic tie-breaks within a day. Every
// range over the result re-runs the underlying query. Under the due basis
// the date column carries the basis date, not the ledger date.
func (r *MovementRepository) Query(ctx context.Context, filter usecase.MovementFilter) iter.Seq2[*domain.Movement, error] {
	query, args := buildMovementQuery(filter)

	return func(yield func(*domain.Movement, error) bool) {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			movement, err := scanMovement(rows)
			if !yield(movement, err) {
				return
			}

			if err != nil {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func buildMovementQuery(filter usecase.MovementFilter) (string, []any) {
	dateExpr := "m.date"
	join := ""
	if filter.DateBasis == domain.DateBasisDue {
		// Movements born from an installment payment take the installment's
		// due date; manual and POS entries have no due date to fall back on.
		join = " LEFT JOIN installments i ON i.id = m.installment_id"
		dateExpr = "COALESCE(i.due_date, m.date)"
	}

	query := `SELECT m.id, m.tenant_id, m.account_id, m.inflow, m.outflow, ` + dateExpr + `,
		m.description, m.origin, m.installment_id, m.created_at
		FROM movements m` + join + ` WHERE 1=1`

	var args []any

	if filter.TenantID != "" {
		args = append(args, filter.TenantID)
		query += fmt.Sprintf(" AND m.tenant_id = $%d", len(args))
	}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND m.account_id = $%d", len(args))
	}

	if !filter.From.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.From))
		query += fmt.Sprintf(" AND %s >= $%d", dateExpr, len(args))
	}

	if !filter.To.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.To))
		query += fmt.Sprintf(" AND %s <= $%d", dateExpr, len(args))
	}

	if filter.Origin != "" {
		args = append(args, string(filter.Origin))
		query += fmt.Sprintf(" AND m.origin = $%d", len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, m.id ASC", dateExpr)

	return query, args
}

// Summarize returns aggregate inflow and outflow totals for a date range.
func (r *MovementRepository) Summarize(ctx context.Context, accountID string, from, to time.Time) (inflow, outflow decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(inflow), 0), COALESCE(SUM(outflow), 0)
		FROM movements
		WHERE account_id = $1`

	args := []any{accountID}

	if !from.IsZero() {
		args = append(args, timeToPgTimestamptz(from))
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if !to.IsZero() {
		args = append(args, timeToPgTimestamptz(to))
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var in, out pgtype.Numeric

	err = r.pool.QueryRow(ctx, query, args...).Scan(&in, &out)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(in), numericToDecimal(out), nil
}

// SumSigned returns Σ(inflow - outflow) for movements dated on or after since.
func (r *MovementRepository) SumSigned(ctx context.Context, tx usecase.Transaction, accountID string, since time.Time) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := txQuerier(tx, r.pool).QueryRow(ctx, `
		SELECT COALESCE(SUM(inflow - outflow), 0)
		FROM movements
		WHERE account_id = $1 AND date >= $2`,
		accountID, timeToPgTimestamptz(since),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// SumByOrigin returns the signed sum of movements with a given origin.
func (r *MovementRepository) SumByOrigin(ctx context.Context, accountID string, origin domain.MovementOrigin) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(inflow - outflow), 0)
		FROM movements
		WHERE account_id = $1 AND origin = $2`,
		accountID, string(origin),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// CountByAccount counts movements linked to an account.
func (r *MovementRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE account_id = $1`,
		accountID,
	).Scan(&count)

	return count, err
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement           domain.Movement
		inflow, outflow    pgtype.Numeric
		origin             string
		installmentID      *string
		date, createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.TenantID,
		&movement.AccountID,
		&inflow,
		&outflow,
		&date,
		&movement.Description,
		&origin,
		&installmentID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	movement.Inflow = numericToDecimal(inflow)
	movement.Outflow = numericToDecimal(outflow)
	movement.Origin = domain.MovementOrigin(origin)
	movement.InstallmentID = installmentID
	movement.Date = date.Time
	movement.CreatedAt = createdAt.Time

	return &movement, nil
}
