package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentMethodRepository implements usecase.PaymentMethodValidator against
// the payment_methods reference table owned by the surrounding application.
type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// Exists reports whether a payment method id is valid for the tenant.
func (r *PaymentMethodRepository) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM payment_methods
			WHERE id = $1 AND tenant_id = $2 AND active
		)`,
		id, tenantID,
	).Scan(&exists)

	return exists, err
}
