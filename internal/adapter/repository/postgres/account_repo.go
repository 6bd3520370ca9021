package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, tenant_id, name, type, bank_name, bank_agency, bank_number,
	opening_balance, opening_date, current_balance, status, created_at, updated_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO financial_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		account.ID,
		account.TenantID,
		account.Name,
		string(account.Type),
		account.BankName,
		account.BankAgency,
		account.BankNumber,
		decimalToNumeric(account.OpeningBalance),
		timeToPgTimestamptz(account.OpeningDate),
		decimalToNumeric(account.CurrentBalance),
		string(account.Status),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.get(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.get(ctx, txQuerier(tx, r.pool), id, " FOR UPDATE")
}

func (r *AccountRepository) get(ctx context.Context, q querier, id, suffix string) (*domain.Account, error) {
	row := q.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM financial_accounts
		WHERE id = $1`+suffix,
		id,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// Update mutates descriptive and status fields. Opening balance and date are
// intentionally absent from the statement.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE financial_accounts
		SET name = $2, type = $3, bank_name = $4, bank_agency = $5,
		    bank_number = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		account.ID,
		account.Name,
		string(account.Type),
		account.BankName,
		account.BankAgency,
		account.BankNumber,
		string(account.Status),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete hard-deletes an account row. Callers must have verified that no
// movement references it.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM financial_accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateBalance updates the cached current balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	_, err := txQuerier(tx, r.pool).Exec(ctx, `
		UPDATE financial_accounts
		SET current_balance = $2, updated_at = $3
		WHERE id = $1`,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

// List lists a tenant's accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM financial_accounts
		WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// ListIDs returns every account ID of a tenant, for administrative sweeps.
func (r *AccountRepository) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM financial_accounts
		WHERE tenant_id = $1
		ORDER BY id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account                           domain.Account
		accountType, status               string
		openingBalance, currentBal        pgtype.Numeric
		openingDate, createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.TenantID,
		&account.Name,
		&accountType,
		&account.BankName,
		&account.BankAgency,
		&account.BankNumber,
		&openingBalance,
		&openingDate,
		&currentBal,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Status = domain.AccountStatus(status)
	account.OpeningBalance = numericToDecimal(openingBalance)
	account.CurrentBalance = numericToDecimal(currentBal)
	account.OpeningDate = openingDate.Time
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
