package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

func TestBuildMovementQuery(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		filter      usecase.MovementFilter
		wantArgs    int
		contains    []string
		notContains []string
	}{
		{
			name:     "no filters",
			filter:   usecase.MovementFilter{},
			wantArgs: 0,
			contains: []string{"FROM movements m", "ORDER BY m.date ASC, m.id ASC"},
			notContains: []string{
				"JOIN installments",
			},
		},
		{
			name: "payment basis keeps ledger date",
			filter: usecase.MovementFilter{
				TenantID:  "tenant-1",
				From:      from,
				To:        to,
				DateBasis: domain.DateBasisPayment,
			},
			wantArgs: 3,
			contains: []string{"m.date >= $2", "m.date <= $3"},
			notContains: []string{
				"JOIN installments",
				"COALESCE",
			},
		},
		{
			name: "due basis dates by installment due date",
			filter: usecase.MovementFilter{
				TenantID:  "tenant-1",
				AccountID: "acc-1",
				From:      from,
				To:        to,
				DateBasis: domain.DateBasisDue,
			},
			wantArgs: 4,
			contains: []string{
				"LEFT JOIN installments i ON i.id = m.installment_id",
				"COALESCE(i.due_date, m.date) >= $3",
				"COALESCE(i.due_date, m.date) <= $4",
				"ORDER BY COALESCE(i.due_date, m.date) ASC, m.id ASC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildMovementQuery(tt.filter)

			if len(args) != tt.wantArgs {
				t.Errorf("expected %d args, got %d", tt.wantArgs, len(args))
			}
			for _, want := range tt.contains {
				if !strings.Contains(query, want) {
					t.Errorf("query missing %q:\n%s", want, query)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(query, unwanted) {
					t.Errorf("query must not contain %q:\n%s", unwanted, query)
				}
			}
		})
	}
}
