package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrOneSidedAmountRequired = errors.New("movement must have exactly one of inflow or outflow")
	ErrUnknownOrigin          = errors.New("unknown movement origin")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidTitleType       = errors.New("invalid title type")
	ErrOpeningImmutable       = errors.New("opening balance and opening date cannot be changed")
	ErrInvalidInstallments    = errors.New("title requires at least one installment")
	ErrInstallmentValueSum    = errors.New("installment values must sum to title total")
	ErrInstallmentCancelled   = errors.New("installment is cancelled")
	ErrTitleCancelled         = errors.New("title is cancelled")
	ErrManualOriginRequired   = errors.New("only manual movements can be posted directly")
	ErrInvalidDateRange       = errors.New("date range start must not be after end")

	// Not-found errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrMovementNotFound      = errors.New("movement not found")
	ErrTitleNotFound         = errors.New("title not found")
	ErrInstallmentNotFound   = errors.New("installment not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// Conflict errors: safe to retry after re-reading state
	ErrInstallmentAlreadyPaid = errors.New("installment is already paid")
	ErrInstallmentNotPaid     = errors.New("installment is not paid")

	// Integrity errors: prior data corruption, never user error
	ErrReversalMovementMissing = errors.New("no ledger movement found for paid installment")
)
