package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
)

func TestAuditTrailRecordsMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	srv := newTestServer(t)
	defer srv.close()
	srv.truncate(t)

	ctx := context.Background()
	tenant := "tenant-audit"
	account := srv.db.CreateTestAccount(ctx, tenant, "Conta Corrente", decimal.NewFromInt(1000))
	methodID := srv.db.CreateTestPaymentMethod(ctx, tenant, "PIX")

	rec := srv.do(t, http.MethodPost, "/api/v1/titles", tenant, dto.CreateTitleRequest{
		Type:         "receivable",
		Counterparty: "Cliente",
		TotalValue:   decimal.NewFromInt(100),
		Installments: []dto.InstallmentItem{
			{Sequence: "1/1", DueDate: time.Now().UTC(), Value: decimal.NewFromInt(100)},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	title := decodeJSON[dto.TitleResponse](t, rec)

	rec = srv.do(t, http.MethodPost, "/api/v1/installments/"+title.Installments[0].ID+"/pay", tenant, dto.PayInstallmentRequest{
		AccountID:       account.ID,
		PaymentMethodID: methodID,
		PaymentDate:     time.Now().UTC(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/installments/"+title.Installments[0].ID+"/reverse", tenant, dto.ReverseInstallmentRequest{
		Reason: "estorno de teste",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/audit", tenant, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decodeJSON[dto.ListAuditLogsResponse](t, rec)

	actions := map[string]int{}
	for _, l := range logs.Logs {
		actions[l.Action]++
		require.Equal(t, "user-integration", l.UserID)
	}
	require.Equal(t, 1, actions["title.create"])
	require.Equal(t, 1, actions["installment.pay"])
	require.Equal(t, 1, actions["installment.reverse"])

	// Action filter narrows the listing.
	rec = srv.do(t, http.MethodGet, "/api/v1/audit?action=installment.pay", tenant, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs = decodeJSON[dto.ListAuditLogsResponse](t, rec)
	require.Len(t, logs.Logs, 1)
	require.Equal(t, title.Installments[0].ID, logs.Logs[0].ResourceID)

	// Other tenants see nothing.
	rec = srv.do(t, http.MethodGet, "/api/v1/audit", "other-tenant", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs = decodeJSON[dto.ListAuditLogsResponse](t, rec)
	require.Empty(t, logs.Logs)
}
