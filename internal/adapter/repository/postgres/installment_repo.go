package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{pool: pool}
}

const installmentColumns = `id, title_id, tenant_id, sequence, due_date, value,
	status, payment_date, compensation_date, account_id, payment_method_id,
	created_at, updated_at`

// CreateBatch inserts all installments of a new title in one transaction.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	q := txQuerier(tx, r.pool)

	for _, installment := range installments {
		_, err := q.Exec(ctx, `
			INSERT INTO installments (`+installmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			installment.ID,
			installment.TitleID,
			installment.TenantID,
			installment.Sequence,
			timeToPgTimestamptz(installment.DueDate),
			decimalToNumeric(installment.Value),
			string(installment.Status),
			installment.PaymentDate,
			installment.CompensationDate,
			installment.AccountID,
			installment.PaymentMethodID,
			timeToPgTimestamptz(installment.CreatedAt),
			timeToPgTimestamptz(installment.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an installment by ID.
func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	return r.get(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves an installment with a FOR UPDATE lock. This is
// the lock that serializes concurrent pay/reverse attempts.
func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	return r.get(ctx, txQuerier(tx, r.pool), id, " FOR UPDATE")
}

func (r *InstallmentRepository) get(ctx context.Context, q querier, id, suffix string) (*domain.Installment, error) {
	row := q.QueryRow(ctx, `
		SELECT `+installmentColumns+`
		FROM installments
		WHERE id = $1`+suffix,
		id,
	)

	installment, err := scanInstallment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return installment, nil
}

// MarkPaid transitions an installment to "pago" with its payment details.
func (r *InstallmentRepository) MarkPaid(ctx context.Context, tx usecase.Transaction, id string, paymentDate time.Time, compensationDate *time.Time, accountID, paymentMethodID string, updatedAt time.Time) error {
	tag, err := txQuerier(tx, r.pool).Exec(ctx, `
		UPDATE installments
		SET status = $2, payment_date = $3, compensation_date = $4,
		    account_id = $5, payment_method_id = $6, updated_at = $7
		WHERE id = $1`,
		id,
		string(domain.InstallmentPago),
		timeToPgTimestamptz(paymentDate),
		compensationDate,
		accountID,
		paymentMethodID,
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

// MarkPending resets an installment to "pendente", clearing payment fields.
func (r *InstallmentRepository) MarkPending(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	tag, err := txQuerier(tx, r.pool).Exec(ctx, `
		UPDATE installments
		SET status = $2, payment_date = NULL, compensation_date = NULL,
		    updated_at = $3
		WHERE id = $1`,
		id,
		string(domain.InstallmentPendente),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

// ListByTitle lists a title's installments in sequence order.
func (r *InstallmentRepository) ListByTitle(ctx context.Context, titleID string) ([]*domain.Installment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+installmentColumns+`
		FROM installments
		WHERE title_id = $1
		ORDER BY due_date, sequence`,
		titleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*domain.Installment
	for rows.Next() {
		installment, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}

		installments = append(installments, installment)
	}

	return installments, rows.Err()
}

// CountByStatus returns (total, paid) counts for a title, inside the caller's
// transaction so just-updated rows are visible.
func (r *InstallmentRepository) CountByStatus(ctx context.Context, tx usecase.Transaction, titleID string) (total, paid int, err error) {
	err = txQuerier(tx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $2)
		FROM installments
		WHERE title_id = $1`,
		titleID, string(domain.InstallmentPago),
	).Scan(&total, &paid)

	return total, paid, err
}

// ListPending returns pending installments joined with their title, for the
// cash-flow projector. The status predicate is what keeps paid installments
// out of the pending branch.
func (r *InstallmentRepository) ListPending(ctx context.Context, filter usecase.PendingInstallmentFilter) ([]*domain.PendingInstallment, error) {
	query := `
		SELECT i.id, i.title_id, i.tenant_id, i.sequence, i.due_date, i.value,
		       i.status, i.payment_date, i.compensation_date, i.account_id,
		       i.payment_method_id, i.created_at, i.updated_at,
		       t.type, t.counterparty
		FROM installments i
		JOIN titles t ON t.id = i.title_id
		WHERE i.tenant_id = $1
		  AND i.status = $2
		  AND t.status <> $3`

	args := []any{
		filter.TenantID,
		string(domain.InstallmentPendente),
		string(domain.TitleStatusCancelado),
	}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND i.account_id = $%d", len(args))
	}

	if !filter.From.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.From))
		query += fmt.Sprintf(" AND i.due_date >= $%d", len(args))
	}

	if !filter.To.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.To))
		query += fmt.Sprintf(" AND i.due_date <= $%d", len(args))
	}

	query += " ORDER BY i.due_date ASC, i.id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*domain.PendingInstallment
	for rows.Next() {
		var (
			p                    domain.PendingInstallment
			value                pgtype.Numeric
			status, titleType    string
			dueDate              pgtype.Timestamptz
			createdAt, updatedAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&p.ID,
			&p.TitleID,
			&p.TenantID,
			&p.Sequence,
			&dueDate,
			&value,
			&status,
			&p.PaymentDate,
			&p.CompensationDate,
			&p.AccountID,
			&p.PaymentMethodID,
			&createdAt,
			&updatedAt,
			&titleType,
			&p.Counterparty,
		)
		if err != nil {
			return nil, err
		}

		p.DueDate = dueDate.Time
		p.Value = numericToDecimal(value)
		p.Status = domain.InstallmentStatus(status)
		p.TitleType = domain.TitleType(titleType)
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		pending = append(pending, &p)
	}

	return pending, rows.Err()
}

// SumPendingByAccount sums pending installment values linked to an account,
// per title type. Feeds the account summary's open totals.
func (r *InstallmentRepository) SumPendingByAccount(ctx context.Context, accountID string, titleType domain.TitleType) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(i.value), 0)
		FROM installments i
		JOIN titles t ON t.id = i.title_id
		WHERE i.account_id = $1
		  AND i.status = $2
		  AND t.type = $3
		  AND t.status <> $4`,
		accountID,
		string(domain.InstallmentPendente),
		string(titleType),
		string(domain.TitleStatusCancelado),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	var (
		installment          domain.Installment
		value                pgtype.Numeric
		status               string
		dueDate              pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&installment.ID,
		&installment.TitleID,
		&installment.TenantID,
		&installment.Sequence,
		&dueDate,
		&value,
		&status,
		&installment.PaymentDate,
		&installment.CompensationDate,
		&installment.AccountID,
		&installment.PaymentMethodID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	installment.DueDate = dueDate.Time
	installment.Value = numericToDecimal(value)
	installment.Status = domain.InstallmentStatus(status)
	installment.CreatedAt = createdAt.Time
	installment.UpdatedAt = updatedAt.Time

	return &installment, nil
}
