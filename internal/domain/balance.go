package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalance is one per-account, per-day row of the running balance.
// Rows are maintained by the recalculation engine and must always be
// reproducible from the movement history alone.
type DailyBalance struct {
	AccountID string
	Date      time.Time
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	Closing   decimal.Decimal
	UpdatedAt time.Time
}

// AccountSummary aggregates open and realized obligations for one account.
type AccountSummary struct {
	AccountID           string
	CurrentBalance      decimal.Decimal
	OpenReceivables     decimal.Decimal
	RealizedReceivables decimal.Decimal
	OpenPayables        decimal.Decimal
	RealizedPayables    decimal.Decimal
	Net                 decimal.Decimal
}
