package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

type balanceServiceStub struct {
	recalcAccountFn func(ctx context.Context, accountID string) (*usecase.RecalculationResult, error)
	recalcTenantFn  func(ctx context.Context, tenantID string) ([]*usecase.RecalculationResult, error)
	listDailyFn     func(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error)
}

func (s *balanceServiceStub) RecalculateAccount(ctx context.Context, accountID string) (*usecase.RecalculationResult, error) {
	return s.recalcAccountFn(ctx, accountID)
}

func (s *balanceServiceStub) RecalculateTenant(ctx context.Context, tenantID string) ([]*usecase.RecalculationResult, error) {
	return s.recalcTenantFn(ctx, tenantID)
}

func (s *balanceServiceStub) ListDailyBalances(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error) {
	return s.listDailyFn(ctx, accountID, from, to)
}

func TestBalanceHandler_RecalculateAccount(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		recalcAccountFn: func(ctx context.Context, accountID string) (*usecase.RecalculationResult, error) {
			return &usecase.RecalculationResult{
				AccountID:       accountID,
				PreviousBalance: decimal.NewFromInt(90),
				Balance:         decimal.NewFromInt(100),
				Drift:           decimal.NewFromInt(10),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/recalculate", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.RecalculateAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.RecalculationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Drift.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected drift 10, got %s", resp.Drift)
	}
}

func TestBalanceHandler_RecalculateTenant_PartialFailure(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		recalcTenantFn: func(ctx context.Context, tenantID string) ([]*usecase.RecalculationResult, error) {
			return []*usecase.RecalculationResult{
				{AccountID: "acc-1", Balance: decimal.NewFromInt(100)},
			}, errors.New("recalculate account acc-2: lock timeout")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/balances/recalculate", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.RecalculateTenant(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", rec.Code)
	}

	var resp []*dto.RecalculationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].AccountID != "acc-1" {
		t.Errorf("surviving results must still be reported, got %+v", resp)
	}
}

func TestBalanceHandler_RecalculateTenant_TotalFailure(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		recalcTenantFn: func(ctx context.Context, tenantID string) ([]*usecase.RecalculationResult, error) {
			return nil, errors.New("database unavailable")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/balances/recalculate", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.RecalculateTenant(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestBalanceHandler_ListDaily(t *testing.T) {
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	handler := NewBalanceHandler(&balanceServiceStub{
		listDailyFn: func(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error) {
			return []*domain.DailyBalance{
				{AccountID: accountID, Date: day, Inflow: decimal.NewFromInt(50), Closing: decimal.NewFromInt(150)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balances/daily?from=2025-02-01&to=2025-02-28", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListDaily(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.DailyBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || !resp[0].Closing.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected response %+v", resp)
	}
}
