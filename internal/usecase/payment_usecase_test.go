package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
	"github.com/rmaia/contaflux/internal/usecase/mocks"
)

type paymentEnv struct {
	accRepo    *mocks.MockAccountRepository
	titleRepo  *mocks.MockTitleRepository
	instRepo   *mocks.MockInstallmentRepository
	movRepo    *mocks.MockMovementRepository
	auditRepo  *mocks.MockAuditRepository
	methods    *mocks.MockPaymentMethodValidator
	dailyRepo  *mocks.MockDailyBalanceRepository
	txMgr      *mocks.MockTransactionManager
	idGen      *mocks.MockIDGenerator
	paymentUC  *usecase.PaymentUseCase
	balancesUC *usecase.BalanceUseCase
}

func newPaymentEnv() *paymentEnv {
	env := &paymentEnv{
		accRepo:   mocks.NewMockAccountRepository(),
		titleRepo: mocks.NewMockTitleRepository(),
		instRepo:  mocks.NewMockInstallmentRepository(),
		movRepo:   mocks.NewMockMovementRepository(),
		auditRepo: mocks.NewMockAuditRepository(),
		methods:   mocks.NewMockPaymentMethodValidator(),
		dailyRepo: mocks.NewMockDailyBalanceRepository(),
		txMgr:     mocks.NewMockTransactionManager(),
		idGen:     mocks.NewMockIDGenerator(),
	}

	env.balancesUC = usecase.NewBalanceUseCase(env.txMgr, env.accRepo, env.movRepo, env.dailyRepo)
	env.paymentUC = usecase.NewPaymentUseCase(
		env.txMgr, env.accRepo, env.titleRepo, env.instRepo,
		env.movRepo, env.auditRepo, env.methods, env.balancesUC, env.idGen,
	)

	return env
}

func (env *paymentEnv) seedAccount(id string, balance int64) *domain.Account {
	account := &domain.Account{
		ID:             id,
		TenantID:       "tenant-1",
		Name:           "Conta Corrente",
		Type:           domain.AccountTypeChecking,
		OpeningBalance: decimal.NewFromInt(balance),
		OpeningDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentBalance: decimal.NewFromInt(balance),
		Status:         domain.AccountStatusActive,
	}
	_ = env.accRepo.Create(context.Background(), account)
	return account
}

func (env *paymentEnv) seedTitle(id string, titleType domain.TitleType, values ...int64) (*domain.Title, []*domain.Installment) {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromInt(v))
	}

	title := &domain.Title{
		ID:           id,
		TenantID:     "tenant-1",
		Type:         titleType,
		Counterparty: "Fornecedor ABC",
		TotalValue:   total,
		Status:       domain.TitleStatusPendente,
	}
	_ = env.titleRepo.Create(context.Background(), nil, title)

	installments := make([]*domain.Installment, 0, len(values))
	for i, v := range values {
		ins := &domain.Installment{
			ID:       id + "-inst-" + string(rune('a'+i)),
			TitleID:  id,
			TenantID: "tenant-1",
			Sequence: "001/001",
			DueDate:  time.Date(2025, 3, 10+i, 0, 0, 0, 0, time.UTC),
			Value:    decimal.NewFromInt(v),
			Status:   domain.InstallmentPendente,
		}
		installments = append(installments, ins)
	}
	_ = env.instRepo.CreateBatch(context.Background(), nil, installments)

	return title, installments
}

func payInput(installmentID string) usecase.PayInstallmentInput {
	return usecase.PayInstallmentInput{
		InstallmentID:   installmentID,
		AccountID:       "acc-1",
		PaymentMethodID: "pm-1",
		PaymentDate:     time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPaymentUseCase_PayInstallment_Receivable(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 1000)
	_, installments := env.seedTitle("title-1", domain.TitleReceivable, 250)

	result, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Installment.Status != domain.InstallmentPago {
		t.Errorf("expected status pago, got %s", result.Installment.Status)
	}
	if !result.AccountBalance.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected balance 1250, got %s", result.AccountBalance)
	}
	if result.Title.Status != domain.TitleStatusPago {
		t.Errorf("expected title PAGO, got %s", result.Title.Status)
	}
	if !result.Title.Locked {
		t.Error("expected title locked after full settlement")
	}
	if result.Title.SettlementDate == nil {
		t.Error("expected settlement date on fully paid title")
	}

	count, _ := env.movRepo.CountByAccount(context.Background(), "acc-1")
	if count != 1 {
		t.Errorf("expected 1 movement, got %d", count)
	}

	sum, _ := env.movRepo.SumByOrigin(context.Background(), "acc-1", domain.OriginReceivableInstallment)
	if !sum.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected receivable origin sum 250, got %s", sum)
	}

	logs := env.auditRepo.Logs()
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}
	if logs[0].Action != string(domain.AuditActionInstallmentPay) {
		t.Errorf("unexpected audit action %s", logs[0].Action)
	}
}

func TestPaymentUseCase_PayInstallment_PayableDecreasesBalance(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 1000)
	_, installments := env.seedTitle("title-1", domain.TitlePayable, 400)

	result, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.AccountBalance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected balance 600, got %s", result.AccountBalance)
	}

	sum, _ := env.movRepo.SumByOrigin(context.Background(), "acc-1", domain.OriginPayableInstallment)
	if !sum.Equal(decimal.NewFromInt(-400)) {
		t.Errorf("expected payable origin sum -400, got %s", sum)
	}
}

func TestPaymentUseCase_PayInstallment_PartialTitle(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 0)
	_, installments := env.seedTitle("title-1", domain.TitlePayable, 100, 200)

	result, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title.Status != domain.TitleStatusParcial {
		t.Errorf("expected title PARCIAL, got %s", result.Title.Status)
	}
	if result.Title.Locked {
		t.Error("partially paid title must not be locked")
	}
	if result.Title.SettlementDate != nil {
		t.Error("partially paid title must not carry a settlement date")
	}
}

func TestPaymentUseCase_PayInstallment_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     func(env *paymentEnv) usecase.PayInstallmentInput
		setup     func(env *paymentEnv)
		errorType error
	}{
		{
			name: "missing installment id",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				return usecase.PayInstallmentInput{AccountID: "acc-1", PaymentMethodID: "pm-1"}
			},
			errorType: domain.ErrInstallmentNotFound,
		},
		{
			name: "missing account id",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				return usecase.PayInstallmentInput{InstallmentID: "inst-1", PaymentMethodID: "pm-1"}
			},
			errorType: domain.ErrAccountNotFound,
		},
		{
			name: "missing payment method",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				return usecase.PayInstallmentInput{InstallmentID: "inst-1", AccountID: "acc-1"}
			},
			errorType: domain.ErrPaymentMethodNotFound,
		},
		{
			name: "unknown installment",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				return payInput("no-such-installment")
			},
			errorType: domain.ErrInstallmentNotFound,
		},
		{
			name: "already paid installment",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				installments[0].Status = domain.InstallmentPago
				return payInput(installments[0].ID)
			},
			errorType: domain.ErrInstallmentAlreadyPaid,
		},
		{
			name: "cancelled installment",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				installments[0].Status = domain.InstallmentCancelado
				return payInput(installments[0].ID)
			},
			errorType: domain.ErrInstallmentCancelled,
		},
		{
			name: "cancelled title",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				title, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				title.Status = domain.TitleStatusCancelado
				return payInput(installments[0].ID)
			},
			errorType: domain.ErrTitleCancelled,
		},
		{
			name: "unknown payment method",
			input: func(env *paymentEnv) usecase.PayInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				return payInput(installments[0].ID)
			},
			setup: func(env *paymentEnv) {
				env.methods.ExistsFunc = func(ctx context.Context, tenantID, id string) (bool, error) {
					return false, nil
				}
			},
			errorType: domain.ErrPaymentMethodNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newPaymentEnv()
			env.seedAccount("acc-1", 1000)
			if tt.setup != nil {
				tt.setup(env)
			}

			_, err := env.paymentUC.PayInstallment(context.Background(), tt.input(env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected error %v, got %v", tt.errorType, err)
			}

			count, _ := env.movRepo.CountByAccount(context.Background(), "acc-1")
			if count != 0 {
				t.Errorf("failed payment must not leave movements, got %d", count)
			}
		})
	}
}

func TestPaymentUseCase_PayInstallment_CommitFailureLeavesNoResult(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 1000)
	_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)

	commitErr := errors.New("connection reset")
	env.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		tx := mocks.NewMockTransaction()
		tx.CommitFunc = func(ctx context.Context) error { return commitErr }
		return tx, nil
	}

	_, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID))
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestPaymentUseCase_ReverseInstallment(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 1000)
	_, installments := env.seedTitle("title-1", domain.TitlePayable, 100, 200)

	for _, ins := range installments {
		if _, err := env.paymentUC.PayInstallment(context.Background(), payInput(ins.ID)); err != nil {
			t.Fatalf("setup payment failed: %v", err)
		}
	}

	result, err := env.paymentUC.ReverseInstallment(context.Background(), usecase.ReverseInstallmentInput{
		InstallmentID: installments[0].ID,
		Reason:        "pagamento duplicado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Installment.Status != domain.InstallmentPendente {
		t.Errorf("expected status pendente, got %s", result.Installment.Status)
	}
	if result.Installment.PaymentDate != nil {
		t.Error("reversed installment must not keep a payment date")
	}
	if result.Title.Status != domain.TitleStatusParcial {
		t.Errorf("expected title PARCIAL after reversal, got %s", result.Title.Status)
	}
	if result.Title.Locked {
		t.Error("reversal must unlock the title")
	}
	if result.Title.SettlementDate != nil {
		t.Error("reversal must clear the settlement date")
	}
	if result.Aggregates.Total != 2 || result.Aggregates.Paid != 1 || result.Aggregates.Pending != 1 {
		t.Errorf("unexpected aggregates %+v", result.Aggregates)
	}

	account, _ := env.accRepo.GetByID(context.Background(), "acc-1")
	if !account.CurrentBalance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected balance 800 after reversing the 100 payment, got %s", account.CurrentBalance)
	}

	count, _ := env.movRepo.CountByAccount(context.Background(), "acc-1")
	if count != 1 {
		t.Errorf("expected generating movement deleted, got %d movements", count)
	}
}

func TestPaymentUseCase_ReverseInstallment_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     func(env *paymentEnv) usecase.ReverseInstallmentInput
		errorType error
	}{
		{
			name: "missing installment id",
			input: func(env *paymentEnv) usecase.ReverseInstallmentInput {
				return usecase.ReverseInstallmentInput{}
			},
			errorType: domain.ErrInstallmentNotFound,
		},
		{
			name: "pending installment",
			input: func(env *paymentEnv) usecase.ReverseInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				return usecase.ReverseInstallmentInput{InstallmentID: installments[0].ID}
			},
			errorType: domain.ErrInstallmentNotPaid,
		},
		{
			name: "cancelled installment",
			input: func(env *paymentEnv) usecase.ReverseInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				installments[0].Status = domain.InstallmentCancelado
				return usecase.ReverseInstallmentInput{InstallmentID: installments[0].ID}
			},
			errorType: domain.ErrInstallmentCancelled,
		},
		{
			name: "paid installment without movement",
			input: func(env *paymentEnv) usecase.ReverseInstallmentInput {
				_, installments := env.seedTitle("title-1", domain.TitlePayable, 100)
				installments[0].Status = domain.InstallmentPago
				return usecase.ReverseInstallmentInput{InstallmentID: installments[0].ID}
			},
			errorType: domain.ErrReversalMovementMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newPaymentEnv()
			env.seedAccount("acc-1", 1000)

			_, err := env.paymentUC.ReverseInstallment(context.Background(), tt.input(env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected error %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestPaymentUseCase_TitleLifecycle(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 0)
	title, installments := env.seedTitle("title-1", domain.TitlePayable, 100, 100, 100)

	expectStatus := func(want domain.TitleStatus) {
		t.Helper()
		stored, err := env.titleRepo.GetByID(context.Background(), title.ID)
		if err != nil {
			t.Fatalf("title lookup failed: %v", err)
		}
		if stored.Status != want {
			t.Errorf("expected title status %s, got %s", want, stored.Status)
		}
	}

	if _, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID)); err != nil {
		t.Fatalf("pay 1/3 failed: %v", err)
	}
	expectStatus(domain.TitleStatusParcial)

	if _, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[1].ID)); err != nil {
		t.Fatalf("pay 2/3 failed: %v", err)
	}
	expectStatus(domain.TitleStatusParcial)

	if _, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[2].ID)); err != nil {
		t.Fatalf("pay 3/3 failed: %v", err)
	}
	expectStatus(domain.TitleStatusPago)

	stored, _ := env.titleRepo.GetByID(context.Background(), title.ID)
	if !stored.Locked {
		t.Error("fully paid title must be locked")
	}

	if _, err := env.paymentUC.ReverseInstallment(context.Background(), usecase.ReverseInstallmentInput{
		InstallmentID: installments[1].ID,
	}); err != nil {
		t.Fatalf("reversal failed: %v", err)
	}
	expectStatus(domain.TitleStatusParcial)

	stored, _ = env.titleRepo.GetByID(context.Background(), title.ID)
	if stored.Locked {
		t.Error("reversal must unlock the title")
	}

	account, _ := env.accRepo.GetByID(context.Background(), "acc-1")
	if !account.CurrentBalance.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("expected balance -200 with two payments standing, got %s", account.CurrentBalance)
	}
}

func TestPaymentUseCase_PayReversePayAgain(t *testing.T) {
	env := newPaymentEnv()
	env.seedAccount("acc-1", 500)
	_, installments := env.seedTitle("title-1", domain.TitleReceivable, 300)

	if _, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID)); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	if _, err := env.paymentUC.ReverseInstallment(context.Background(), usecase.ReverseInstallmentInput{
		InstallmentID: installments[0].ID,
	}); err != nil {
		t.Fatalf("reversal failed: %v", err)
	}

	result, err := env.paymentUC.PayInstallment(context.Background(), payInput(installments[0].ID))
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}

	if !result.AccountBalance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected balance 800 after pay, reverse, pay, got %s", result.AccountBalance)
	}

	count, _ := env.movRepo.CountByAccount(context.Background(), "acc-1")
	if count != 1 {
		t.Errorf("expected exactly one standing movement, got %d", count)
	}
}
