package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementOrigin identifies the subsystem that produced a ledger movement.
// The set is closed: the reversal path relies on exact origin matches, so a
// free-form string would let a typo break the one-movement-per-payment rule.
type MovementOrigin string

const (
	OriginPayableInstallment    MovementOrigin = "payable-installment"
	OriginReceivableInstallment MovementOrigin = "receivable-installment"
	OriginPOSSale               MovementOrigin = "pos-sale"
	OriginManual                MovementOrigin = "manual"
)

var validOrigins = map[MovementOrigin]bool{
	OriginPayableInstallment:    true,
	OriginReceivableInstallment: true,
	OriginPOSSale:               true,
	OriginManual:                true,
}

// IsValid checks if the origin belongs to the closed set.
func (o MovementOrigin) IsValid() bool {
	return validOrigins[o]
}

// Movement represents a single dated ledger entry against an account.
// Exactly one of Inflow or Outflow is non-zero.
type Movement struct {
	ID            string
	TenantID      string
	AccountID     string
	Inflow        decimal.Decimal
	Outflow       decimal.Decimal
	Date          time.Time
	Description   string
	Origin        MovementOrigin
	InstallmentID *string
	CreatedAt     time.Time
}

// Validate enforces the one-sided amount rule and the closed origin set.
func (m *Movement) Validate() error {
	if m.AccountID == "" {
		return ErrAccountNotFound
	}

	if !m.Origin.IsValid() {
		return ErrUnknownOrigin
	}

	if m.Inflow.IsNegative() || m.Outflow.IsNegative() {
		return ErrInvalidAmount
	}

	inflowSet := m.Inflow.IsPositive()
	outflowSet := m.Outflow.IsPositive()
	if inflowSet == outflowSet {
		return ErrOneSidedAmountRequired
	}

	return nil
}

// Amount returns the signed value of the movement: inflow minus outflow.
func (m *Movement) Amount() decimal.Decimal {
	return m.Inflow.Sub(m.Outflow)
}
