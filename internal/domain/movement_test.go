package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMovement_Validate(t *testing.T) {
	tests := []struct {
		name        string
		movement    Movement
		expectError error
	}{
		{
			name:     "valid inflow",
			movement: Movement{AccountID: "acc-1", Origin: OriginManual, Inflow: decimal.NewFromInt(10)},
		},
		{
			name:     "valid outflow",
			movement: Movement{AccountID: "acc-1", Origin: OriginPayableInstallment, Outflow: decimal.NewFromInt(10)},
		},
		{
			name:        "missing account",
			movement:    Movement{Origin: OriginManual, Inflow: decimal.NewFromInt(10)},
			expectError: ErrAccountNotFound,
		},
		{
			name:        "unknown origin",
			movement:    Movement{AccountID: "acc-1", Origin: "import", Inflow: decimal.NewFromInt(10)},
			expectError: ErrUnknownOrigin,
		},
		{
			name:        "negative inflow",
			movement:    Movement{AccountID: "acc-1", Origin: OriginManual, Inflow: decimal.NewFromInt(-10)},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative outflow",
			movement:    Movement{AccountID: "acc-1", Origin: OriginManual, Outflow: decimal.NewFromInt(-10)},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "both sides set",
			movement:    Movement{AccountID: "acc-1", Origin: OriginManual, Inflow: decimal.NewFromInt(5), Outflow: decimal.NewFromInt(5)},
			expectError: ErrOneSidedAmountRequired,
		},
		{
			name:        "neither side set",
			movement:    Movement{AccountID: "acc-1", Origin: OriginManual},
			expectError: ErrOneSidedAmountRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.movement.Validate()
			if err != tt.expectError {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestMovement_Amount(t *testing.T) {
	inflow := Movement{Inflow: decimal.NewFromInt(30)}
	if !inflow.Amount().Equal(decimal.NewFromInt(30)) {
		t.Errorf("inflow amount = %s", inflow.Amount())
	}

	outflow := Movement{Outflow: decimal.NewFromInt(45)}
	if !outflow.Amount().Equal(decimal.NewFromInt(-45)) {
		t.Errorf("outflow amount = %s", outflow.Amount())
	}
}

func TestMovementOrigin_IsValid(t *testing.T) {
	for _, origin := range []MovementOrigin{OriginManual, OriginPOSSale, OriginPayableInstallment, OriginReceivableInstallment} {
		if !origin.IsValid() {
			t.Errorf("%s should be valid", origin)
		}
	}

	if MovementOrigin("csv-import").IsValid() {
		t.Error("unknown origin should be invalid")
	}
}
