package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateBasis selects which date field drives cash-flow filtering and ordering.
type DateBasis string

const (
	// DateBasisDue projects installments on their due date.
	DateBasisDue DateBasis = "due"
	// DateBasisPayment projects realized items on their payment date.
	// Pending installments have no payment date and fall back to due date.
	DateBasisPayment DateBasis = "payment"
)

// IsValid checks if the basis is known.
func (b DateBasis) IsValid() bool {
	return b == DateBasisDue || b == DateBasisPayment
}

// CashFlowOrigin says which branch of the projection produced an entry.
type CashFlowOrigin string

const (
	CashFlowFromMovement    CashFlowOrigin = "movement"
	CashFlowFromInstallment CashFlowOrigin = "installment"
)

// CashFlowEntry is a projection-only row of the unified timeline. It is never
// persisted and has no independent lifecycle.
type CashFlowEntry struct {
	Origin        CashFlowOrigin
	OriginID      string
	Date          time.Time
	AccountID     *string
	Inflow        decimal.Decimal
	Outflow       decimal.Decimal
	Description   string
	Status        string
	InstallmentID *string
}

// Before reports whether e sorts before other in the projected timeline:
// date ascending, then origin, then id for a deterministic tie-break.
func (e *CashFlowEntry) Before(other *CashFlowEntry) bool {
	if !e.Date.Equal(other.Date) {
		return e.Date.Before(other.Date)
	}

	if e.Origin != other.Origin {
		return e.Origin < other.Origin
	}

	return e.OriginID < other.OriginID
}
