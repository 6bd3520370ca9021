package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
)

// AccountRepository defines data access for financial accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Account, error)
	ListIDs(ctx context.Context, tenantID string) ([]string, error)
}

// MovementFilter narrows a ledger query. Zero values mean "no filter".
type MovementFilter struct {
	TenantID  string
	AccountID string
	From      time.Time
	To        time.Time
	Origin    domain.MovementOrigin
	// DateBasis selects the date the From/To window and ordering apply to.
	// Under DateBasisDue, installment-linked movements are dated by their
	// installment's due date; plain movements keep the ledger date.
	DateBasis domain.DateBasis
}

// MovementRepository defines data access for ledger movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	// DeleteByInstallment removes all movements matching (installment, origin)
	// and returns the deleted rows so callers can recompute affected accounts.
	DeleteByInstallment(ctx context.Context, tx Transaction, installmentID string, origin domain.MovementOrigin) ([]*domain.Movement, error)
	// Query returns a restartable sequence of movements ordered by date
	// ascending, then insertion order. Each range over the sequence re-runs
	// the underlying query.
	Query(ctx context.Context, filter MovementFilter) iter.Seq2[*domain.Movement, error]
	Summarize(ctx context.Context, accountID string, from, to time.Time) (inflow, outflow decimal.Decimal, err error)
	// SumSigned returns Σ(inflow - outflow) for movements dated on or after
	// since. Runs inside tx when one is given.
	SumSigned(ctx context.Context, tx Transaction, accountID string, since time.Time) (decimal.Decimal, error)
	SumByOrigin(ctx context.Context, accountID string, origin domain.MovementOrigin) (decimal.Decimal, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	TenantID string
	Type     domain.TitleType
	Status   domain.TitleStatus
	Limit    int
	Offset   int
}

// TitleRepository defines data access for payable/receivable titles.
type TitleRepository interface {
	Create(ctx context.Context, tx Transaction, title *domain.Title) error
	GetByID(ctx context.Context, id string) (*domain.Title, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Title, error)
	UpdateAggregate(ctx context.Context, tx Transaction, id string, status domain.TitleStatus, settlementDate *time.Time, locked bool, updatedAt time.Time) error
	List(ctx context.Context, filter TitleFilter) ([]*domain.Title, error)
}

// PendingInstallmentFilter narrows the cash-flow projector's pending branch.
type PendingInstallmentFilter struct {
	TenantID  string
	AccountID string
	From      time.Time
	To        time.Time
}

// InstallmentRepository defines data access for installments.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, installments []*domain.Installment) error
	GetByID(ctx context.Context, id string) (*domain.Installment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Installment, error)
	MarkPaid(ctx context.Context, tx Transaction, id string, paymentDate time.Time, compensationDate *time.Time, accountID, paymentMethodID string, updatedAt time.Time) error
	MarkPending(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	ListByTitle(ctx context.Context, titleID string) ([]*domain.Installment, error)
	// CountByStatus returns (total, paid) for all installments of a title,
	// read inside the caller's transaction.
	CountByStatus(ctx context.Context, tx Transaction, titleID string) (total, paid int, err error)
	ListPending(ctx context.Context, filter PendingInstallmentFilter) ([]*domain.PendingInstallment, error)
	SumPendingByAccount(ctx context.Context, accountID string, titleType domain.TitleType) (decimal.Decimal, error)
}

// DailyBalanceRepository defines data access for per-day balance rows.
type DailyBalanceRepository interface {
	ReplaceFrom(ctx context.Context, accountID string, from time.Time, rows []*domain.DailyBalance) error
	GetLastBefore(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalance, error)
	ListRange(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// PaymentMethodValidator checks payment-method references supplied by callers.
// Payment methods themselves are owned by a collaborator outside the engine.
type PaymentMethodValidator interface {
	Exists(ctx context.Context, tenantID, id string) (bool, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
