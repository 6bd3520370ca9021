package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a financial account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeCashBox    AccountType = "cash_box"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeChecking:   true,
	AccountTypeCashBox:    true,
	AccountTypeCreditCard: true,
	AccountTypeSavings:    true,
	AccountTypeInvestment: true,
	AccountTypeOther:      true,
}

// IsValid checks if the account type belongs to the closed set.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Account represents a financial account (bank, cash box, card).
//
// CurrentBalance is derived state: it must always equal OpeningBalance plus
// the signed sum of all movements dated on or after OpeningDate.
type Account struct {
	ID             string
	TenantID       string
	Name           string
	Type           AccountType
	BankName       string
	BankAgency     string
	BankNumber     string
	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
	CurrentBalance decimal.Decimal
	Status         AccountStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks required descriptive fields and banking metadata.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidAccountName
	}

	if !a.Type.IsValid() {
		return ErrInvalidAccountType
	}

	return nil
}

// ExpectedBalance derives the balance from the opening balance and a signed
// movement sum. Used by reconciliation and the full rebuild.
func (a *Account) ExpectedBalance(movementSum decimal.Decimal) decimal.Decimal {
	return a.OpeningBalance.Add(movementSum)
}
