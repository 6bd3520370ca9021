package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the lifecycle status of a single installment.
// Transitions driven by the payment engine: pendente -> pago -> pendente
// (reversal). Cancellation is an out-of-band transition on the title.
type InstallmentStatus string

const (
	InstallmentPendente  InstallmentStatus = "pendente"
	InstallmentPago      InstallmentStatus = "pago"
	InstallmentCancelado InstallmentStatus = "cancelado"
)

// Installment is one scheduled payment or receipt belonging to a title.
//
// Status "pago" implies exactly one movement exists tagged with this
// installment's id; "pendente" implies none does.
type Installment struct {
	ID               string
	TitleID          string
	TenantID         string
	Sequence         string
	DueDate          time.Time
	Value            decimal.Decimal
	Status           InstallmentStatus
	PaymentDate      *time.Time
	CompensationDate *time.Time
	AccountID        *string
	PaymentMethodID  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the installment's own fields.
func (i *Installment) Validate() error {
	if i.Value.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// PendingInstallment is an installment joined with its title's type and
// counterparty, as read by the cash-flow projector's pending branch.
type PendingInstallment struct {
	Installment
	TitleType    TitleType
	Counterparty string
}

