package domain

import (
	"testing"
	"time"
)

func TestCashFlowEntry_Before(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     CashFlowEntry
		expected bool
	}{
		{
			name:     "earlier date first",
			a:        CashFlowEntry{Date: day1, OriginID: "z"},
			b:        CashFlowEntry{Date: day2, OriginID: "a"},
			expected: true,
		},
		{
			name:     "later date last",
			a:        CashFlowEntry{Date: day2},
			b:        CashFlowEntry{Date: day1},
			expected: false,
		},
		{
			name:     "same date ordered by origin",
			a:        CashFlowEntry{Date: day1, Origin: CashFlowFromInstallment},
			b:        CashFlowEntry{Date: day1, Origin: CashFlowFromMovement},
			expected: true,
		},
		{
			name:     "same date and origin ordered by id",
			a:        CashFlowEntry{Date: day1, Origin: CashFlowFromMovement, OriginID: "a"},
			b:        CashFlowEntry{Date: day1, Origin: CashFlowFromMovement, OriginID: "b"},
			expected: true,
		},
		{
			name:     "identical entries are not before each other",
			a:        CashFlowEntry{Date: day1, Origin: CashFlowFromMovement, OriginID: "a"},
			b:        CashFlowEntry{Date: day1, Origin: CashFlowFromMovement, OriginID: "a"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(&tt.b); got != tt.expected {
				t.Errorf("Before() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDateBasis_IsValid(t *testing.T) {
	if !DateBasisDue.IsValid() || !DateBasisPayment.IsValid() {
		t.Error("known bases must be valid")
	}
	if DateBasis("fiscal").IsValid() {
		t.Error("unknown basis must be invalid")
	}
}
