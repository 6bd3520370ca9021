package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid name", "Conta Corrente", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"max length", strings.Repeat("a", MaxAccountNameLength), false},
		{"too long", strings.Repeat("a", MaxAccountNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if tt.expectError && !errors.Is(err, ErrInvalidAccountName) {
				t.Errorf("expected ErrInvalidAccountName, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)

	tests := []struct {
		name      string
		amount    decimal.Decimal
		errorType error
	}{
		{"positive amount", decimal.NewFromInt(100), nil},
		{"zero amount", decimal.Zero, ErrInvalidAmount},
		{"negative amount", decimal.NewFromInt(-1), ErrInvalidAmount},
		{"exactly at cap", maxAmount, nil},
		{"above cap", maxAmount.Add(decimal.NewFromInt(1)), ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.errorType == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidateDateRange(earlier, later); err != nil {
		t.Errorf("ordered range rejected: %v", err)
	}
	if err := ValidateDateRange(later, earlier); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	if err := ValidateDateRange(time.Time{}, earlier); err != nil {
		t.Errorf("open start rejected: %v", err)
	}
	if err := ValidateDateRange(later, time.Time{}); err != nil {
		t.Errorf("open end rejected: %v", err)
	}
	if err := ValidateDateRange(earlier, earlier); err != nil {
		t.Errorf("equal bounds rejected: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name                     string
		limit, offset            int
		wantLimit, wantOffset    int
	}{
		{"defaults applied", 0, 0, 50, 0},
		{"negative values normalized", -10, -5, 50, 0},
		{"capped at max page size", 5000, 10, 1000, 10},
		{"valid values kept", 25, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
