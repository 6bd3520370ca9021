package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

type cashFlowServiceStub struct {
	getFn func(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error)
}

func (s *cashFlowServiceStub) GetCashFlow(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
	return s.getFn(ctx, input)
}

func TestCashFlowHandler_Get(t *testing.T) {
	var captured usecase.GetCashFlowInput
	handler := NewCashFlowHandler(&cashFlowServiceStub{
		getFn: func(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
			captured = input
			return []*domain.CashFlowEntry{
				{
					Origin:   domain.CashFlowFromMovement,
					OriginID: "mov-1",
					Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					Inflow:   decimal.NewFromInt(100),
					Outflow:  decimal.Zero,
					Status:   "realizado",
				},
				{
					Origin:   domain.CashFlowFromInstallment,
					OriginID: "inst-1",
					Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
					Inflow:   decimal.Zero,
					Outflow:  decimal.NewFromInt(40),
					Status:   "pendente",
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/cashflow?from=2025-06-01&to=2025-06-30&account_id=acc-1&date_basis=payment", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TenantID != "tenant-1" || captured.AccountID != "acc-1" {
		t.Errorf("filters not forwarded: %+v", captured)
	}
	if !captured.IncludePending {
		t.Error("pending inclusion must default to true")
	}
	if captured.DateBasis != domain.DateBasisPayment {
		t.Errorf("date basis not forwarded: %s", captured.DateBasis)
	}
	if !captured.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from not parsed: %s", captured.From)
	}

	var resp dto.CashFlowResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
	if !resp.Inflow.Equal(decimal.NewFromInt(100)) || !resp.Outflow.Equal(decimal.NewFromInt(40)) {
		t.Errorf("period totals wrong: inflow %s outflow %s", resp.Inflow, resp.Outflow)
	}
	if !resp.Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected net 60, got %s", resp.Net)
	}
}

func TestCashFlowHandler_Get_ExcludePending(t *testing.T) {
	var captured usecase.GetCashFlowInput
	handler := NewCashFlowHandler(&cashFlowServiceStub{
		getFn: func(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
			captured = input
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/cashflow?include_pending=false", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.IncludePending {
		t.Error("include_pending=false must disable the pending branch")
	}
}

func TestCashFlowHandler_Get_InvalidRange(t *testing.T) {
	handler := NewCashFlowHandler(&cashFlowServiceStub{
		getFn: func(ctx context.Context, input usecase.GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
			return nil, domain.ErrInvalidDateRange
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/cashflow?from=2025-07-01&to=2025-06-01", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
