package handler

import (
	"bytes"
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

type titleServiceStub struct {
	createFn         func(ctx context.Context, input usecase.CreateTitleInput) (*usecase.TitleWithInstallments, error)
	getFn            func(ctx context.Context, id string) (*usecase.TitleWithInstallments, error)
	getInstallmentFn func(ctx context.Context, id string) (*domain.Installment, error)
	listFn           func(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error)
}

func (s *titleServiceStub) CreateTitle(ctx context.Context, input usecase.CreateTitleInput) (*usecase.TitleWithInstallments, error) {
	return s.createFn(ctx, input)
}

func (s *titleServiceStub) GetTitle(ctx context.Context, id string) (*usecase.TitleWithInstallments, error) {
	return s.getFn(ctx, id)
}

func (s *titleServiceStub) GetInstallment(ctx context.Context, id string) (*domain.Installment, error) {
	return s.getInstallmentFn(ctx, id)
}

func (s *titleServiceStub) ListTitles(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error) {
	return s.listFn(ctx, filter)
}

func TestTitleHandler_Create_Success(t *testing.T) {
	due := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	var captured usecase.CreateTitleInput
	handler := NewTitleHandler(&titleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTitleInput) (*usecase.TitleWithInstallments, error) {
			captured = input
			return &usecase.TitleWithInstallments{
				Title: &domain.Title{
					ID:     "title-1",
					Type:   domain.TitlePayable,
					Status: domain.TitleStatusPendente,
				},
				Installments: []*domain.Installment{
					{ID: "inst-1", TitleID: "title-1", Status: domain.InstallmentPendente},
					{ID: "inst-2", TitleID: "title-1", Status: domain.InstallmentPendente},
				},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTitleRequest{
		Type:         "payable",
		Counterparty: "Fornecedor ABC",
		TotalValue:   decimal.NewFromInt(200),
		Installments: []dto.InstallmentItem{
			{Sequence: "001/002", DueDate: due, Value: decimal.NewFromInt(100)},
			{Sequence: "002/002", DueDate: due.AddDate(0, 1, 0), Value: decimal.NewFromInt(100)},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/titles", bytes.NewReader(body))
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.TenantID != "tenant-1" || len(captured.Installments) != 2 {
		t.Errorf("input does not match request: %+v", captured)
	}

	var resp dto.TitleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "title-1" || len(resp.Installments) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTitleHandler_Create_SumMismatch(t *testing.T) {
	handler := NewTitleHandler(&titleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTitleInput) (*usecase.TitleWithInstallments, error) {
			return nil, domain.ErrInstallmentValueSum
		},
	})

	body, _ := json.Marshal(dto.CreateTitleRequest{
		Type:       "payable",
		TotalValue: decimal.NewFromInt(300),
		Installments: []dto.InstallmentItem{
			{Sequence: "001/001", Value: decimal.NewFromInt(100)},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/titles", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTitleHandler_Get_NotFound(t *testing.T) {
	handler := NewTitleHandler(&titleServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.TitleWithInstallments, error) {
			return nil, domain.ErrTitleNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/titles/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTitleHandler_List_ForwardsFilters(t *testing.T) {
	handler := NewTitleHandler(&titleServiceStub{
		listFn: func(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error) {
			if filter.Type != domain.TitleReceivable {
				t.Errorf("type filter not forwarded: %s", filter.Type)
			}
			if filter.Status != domain.TitleStatusParcial {
				t.Errorf("status filter not forwarded: %s", filter.Status)
			}
			return []*domain.Title{{ID: "title-1", Type: domain.TitleReceivable, Status: domain.TitleStatusParcial}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/titles?type=receivable&status=PARCIAL", nil)
	req = withActor(req, "tenant-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTitlesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Titles) != 1 {
		t.Errorf("expected 1 title, got %d", len(resp.Titles))
	}
}

func TestTitleHandler_GetInstallment(t *testing.T) {
	handler := NewTitleHandler(&titleServiceStub{
		getInstallmentFn: func(ctx context.Context, id string) (*domain.Installment, error) {
			return &domain.Installment{
				ID:      id,
				TitleID: "title-1",
				Status:  domain.InstallmentPendente,
				Value:   decimal.NewFromInt(100),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/installments/inst-1", nil)
	req = setChiURLParam(req, "id", "inst-1")
	rec := httptest.NewRecorder()

	handler.GetInstallment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.InstallmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "inst-1" || resp.Status != string(domain.InstallmentPendente) {
		t.Errorf("unexpected response %+v", resp)
	}
}
