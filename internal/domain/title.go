package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TitleType distinguishes payables from receivables.
type TitleType string

const (
	TitlePayable    TitleType = "payable"
	TitleReceivable TitleType = "receivable"
)

// IsValid checks if the title type is known.
func (t TitleType) IsValid() bool {
	return t == TitlePayable || t == TitleReceivable
}

// Origin returns the movement origin produced when an installment of this
// title type is paid.
func (t TitleType) Origin() MovementOrigin {
	if t == TitlePayable {
		return OriginPayableInstallment
	}

	return OriginReceivableInstallment
}

// TitleStatus is the aggregate payment status of a title.
type TitleStatus string

const (
	TitleStatusPendente  TitleStatus = "PENDENTE"
	TitleStatusParcial   TitleStatus = "PARCIAL"
	TitleStatusPago      TitleStatus = "PAGO"
	TitleStatusCancelado TitleStatus = "CANCELADO"
)

// AggregateStatus derives a title's status purely from its installment
// counts. Status is never hand-set anywhere else: PAGO iff all paid,
// PARCIAL iff some but not all, PENDENTE iff none.
func AggregateStatus(total, paid int) TitleStatus {
	switch {
	case total > 0 && paid == total:
		return TitleStatusPago
	case paid > 0:
		return TitleStatusParcial
	default:
		return TitleStatusPendente
	}
}

// Title represents a payable or receivable obligation split into one or more
// installments.
type Title struct {
	ID             string
	TenantID       string
	Type           TitleType
	Counterparty   string
	TotalValue     decimal.Decimal
	Status         TitleStatus
	SettlementDate *time.Time
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the title's own fields. Installment consistency is checked
// at creation time against the full set.
func (t *Title) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTitleType
	}

	if t.TotalValue.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
