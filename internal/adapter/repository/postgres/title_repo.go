package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// TitleRepository implements usecase.TitleRepository.
type TitleRepository struct {
	pool *pgxpool.Pool
}

// NewTitleRepository creates a new TitleRepository.
func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{pool: pool}
}

const titleColumns = `id, tenant_id, type, counterparty, total_value, status,
	settlement_date, locked, created_at, updated_at`

// Create creates a new title inside the caller's transaction.
func (r *TitleRepository) Create(ctx context.Context, tx usecase.Transaction, title *domain.Title) error {
	_, err := txQuerier(tx, r.pool).Exec(ctx, `
		INSERT INTO titles (`+titleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		title.ID,
		title.TenantID,
		string(title.Type),
		title.Counterparty,
		decimalToNumeric(title.TotalValue),
		string(title.Status),
		title.SettlementDate,
		title.Locked,
		timeToPgTimestamptz(title.CreatedAt),
		timeToPgTimestamptz(title.UpdatedAt),
	)

	return err
}

// GetByID retrieves a title by ID.
func (r *TitleRepository) GetByID(ctx context.Context, id string) (*domain.Title, error) {
	return r.get(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a title by ID with a FOR UPDATE lock.
func (r *TitleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Title, error) {
	return r.get(ctx, txQuerier(tx, r.pool), id, " FOR UPDATE")
}

func (r *TitleRepository) get(ctx context.Context, q querier, id, suffix string) (*domain.Title, error) {
	row := q.QueryRow(ctx, `
		SELECT `+titleColumns+`
		FROM titles
		WHERE id = $1`+suffix,
		id,
	)

	title, err := scanTitle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTitleNotFound
		}

		return nil, err
	}

	return title, nil
}

// UpdateAggregate stores the re-derived status, settlement date and lock flag.
func (r *TitleRepository) UpdateAggregate(ctx context.Context, tx usecase.Transaction, id string, status domain.TitleStatus, settlementDate *time.Time, locked bool, updatedAt time.Time) error {
	tag, err := txQuerier(tx, r.pool).Exec(ctx, `
		UPDATE titles
		SET status = $2, settlement_date = $3, locked = $4, updated_at = $5
		WHERE id = $1`,
		id,
		string(status),
		settlementDate,
		locked,
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTitleNotFound
	}

	return nil
}

// List lists titles matching the filter.
func (r *TitleRepository) List(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error) {
	query := `SELECT ` + titleColumns + ` FROM titles WHERE tenant_id = $1`
	args := []any{filter.TenantID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d", len(args))

	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []*domain.Title
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}

		titles = append(titles, title)
	}

	return titles, rows.Err()
}

func scanTitle(row pgx.Row) (*domain.Title, error) {
	var (
		title                domain.Title
		titleType, status    string
		totalValue           pgtype.Numeric
		settlementDate       *time.Time
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&title.ID,
		&title.TenantID,
		&titleType,
		&title.Counterparty,
		&totalValue,
		&status,
		&settlementDate,
		&title.Locked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	title.Type = domain.TitleType(titleType)
	title.Status = domain.TitleStatus(status)
	title.TotalValue = numericToDecimal(totalValue)
	title.SettlementDate = settlementDate
	title.CreatedAt = createdAt.Time
	title.UpdatedAt = updatedAt.Time

	return &title, nil
}
