package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	httpAdapter "github.com/rmaia/contaflux/internal/adapter/http"
	"github.com/rmaia/contaflux/internal/adapter/http/handler"
	"github.com/rmaia/contaflux/internal/adapter/http/middleware"
	postgresRepo "github.com/rmaia/contaflux/internal/adapter/repository/postgres"
	"github.com/rmaia/contaflux/internal/usecase"
	"github.com/rmaia/contaflux/tests/testutil"
)

// testServer wires the full stack against the test database. Redis is not
// required: the cache, retrier and idempotency store are simply left off.
type testServer struct {
	db     *testutil.TestDB
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	pool := db.Pool

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	titleRepo := postgresRepo.NewTitleRepository(pool)
	installmentRepo := postgresRepo.NewInstallmentRepository(pool)
	dailyBalanceRepo := postgresRepo.NewDailyBalanceRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	paymentMethodRepo := postgresRepo.NewPaymentMethodRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	balanceUC := usecase.NewBalanceUseCase(txManager, accountRepo, movementRepo, dailyBalanceRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, movementRepo, installmentRepo, auditRepo, idGen)
	titleUC := usecase.NewTitleUseCase(txManager, titleRepo, installmentRepo, auditRepo, idGen)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, auditRepo, balanceUC, idGen)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, titleRepo, installmentRepo, movementRepo, auditRepo, paymentMethodRepo, balanceUC, idGen).
		WithRetrier(postgresRepo.NewRetrier())
	cashFlowUC := usecase.NewCashFlowUseCase(movementRepo, installmentRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC),
		TitleHandler:    handler.NewTitleHandler(titleUC),
		PaymentHandler:  handler.NewPaymentHandler(paymentUC),
		MovementHandler: handler.NewMovementHandler(movementUC),
		BalanceHandler:  handler.NewBalanceHandler(balanceUC),
		CashFlowHandler: handler.NewCashFlowHandler(cashFlowUC),
		AuditHandler:    handler.NewAuditHandler(auditUC),
		HealthHandler:   handler.NewHealthHandler(pool, nil),
		Logger:          zerolog.Nop(),
	})

	return &testServer{db: db, router: router}
}

func (s *testServer) close() {
	s.db.Cleanup()
}

func (s *testServer) truncate(t *testing.T) {
	t.Helper()
	s.db.TruncateAll(context.Background())
}

// do sends a request through the router with tenant headers set and returns
// the recorded response.
func (s *testServer) do(t *testing.T, method, path, tenantID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, tenantID)
	req.Header.Set(middleware.UserHeader, "user-integration")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}
