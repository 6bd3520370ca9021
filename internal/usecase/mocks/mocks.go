package mocks

import (
	"context"
	"errors"
	"iter"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/contaflux/internal/domain"
	"github.com/rmaia/contaflux/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateFunc           func(ctx context.Context, account *domain.Account) error
	DeleteFunc           func(ctx context.Context, id string) error
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Account, error)
	ListIDsFunc          func(ctx context.Context, tenantID string) ([]string, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		snapshot := *acc
		return &snapshot, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.CurrentBalance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.TenantID == tenantID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx, tenantID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for _, acc := range m.accounts {
		if acc.TenantID == tenantID {
			ids = append(ids, acc.ID)
		}
	}
	return ids, nil
}

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.Movement

	// InstallmentDueDates, keyed by installment ID, lets the in-memory
	// Query resolve the due-basis date of installment-linked movements.
	InstallmentDueDates map[string]time.Time

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
	DeleteByInstallmentFunc func(ctx context.Context, tx usecase.Transaction, installmentID string, origin domain.MovementOrigin) ([]*domain.Movement, error)
	QueryFunc               func(ctx context.Context, filter usecase.MovementFilter) iter.Seq2[*domain.Movement, error]
	SummarizeFunc           func(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
	SumSignedFunc           func(ctx context.Context, tx usecase.Transaction, accountID string, since time.Time) (decimal.Decimal, error)
	SumByOriginFunc         func(ctx context.Context, accountID string, origin domain.MovementOrigin) (decimal.Decimal, error)
	CountByAccountFunc      func(ctx context.Context, accountID string) (int64, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{
		movements: make(map[string]*domain.Movement),
	}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) DeleteByInstallment(ctx context.Context, tx usecase.Transaction, installmentID string, origin domain.MovementOrigin) ([]*domain.Movement, error) {
	if m.DeleteByInstallmentFunc != nil {
		return m.DeleteByInstallmentFunc(ctx, tx, installmentID, origin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted []*domain.Movement
	for id, mv := range m.movements {
		if mv.InstallmentID != nil && *mv.InstallmentID == installmentID && mv.Origin == origin {
			deleted = append(deleted, mv)
			delete(m.movements, id)
		}
	}
	return deleted, nil
}

func (m *MockMovementRepository) Query(ctx context.Context, filter usecase.MovementFilter) iter.Seq2[*domain.Movement, error] {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	basisDate := func(mv *domain.Movement) time.Time {
		if filter.DateBasis == domain.DateBasisDue && mv.InstallmentID != nil {
			if due, ok := m.InstallmentDueDates[*mv.InstallmentID]; ok {
				return due
			}
		}
		return mv.Date
	}

	m.mu.RLock()
	matched := make([]*domain.Movement, 0, len(m.movements))
	for _, mv := range m.movements {
		if filter.AccountID != "" && mv.AccountID != filter.AccountID {
			continue
		}
		if filter.TenantID != "" && mv.TenantID != filter.TenantID {
			continue
		}
		if !filter.From.IsZero() && basisDate(mv).Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && basisDate(mv).After(filter.To) {
			continue
		}
		if filter.Origin != "" && mv.Origin != filter.Origin {
			continue
		}
		if d := basisDate(mv); !d.Equal(mv.Date) {
			clone := *mv
			clone.Date = d
			mv = &clone
		}
		matched = append(matched, mv)
	}
	m.mu.RUnlock()

	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			if matched[j].Date.Before(matched[i].Date) ||
				(matched[j].Date.Equal(matched[i].Date) && matched[j].ID < matched[i].ID) {
				matched[i], matched[j] = matched[j], matched[i]
			}
		}
	}

	return func(yield func(*domain.Movement, error) bool) {
		for _, mv := range matched {
			if !yield(mv, nil) {
				return
			}
		}
	}
}

func (m *MockMovementRepository) Summarize(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, accountID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	inflow, outflow := decimal.Zero, decimal.Zero
	for _, mv := range m.movements {
		if mv.AccountID != accountID {
			continue
		}
		if !from.IsZero() && mv.Date.Before(from) {
			continue
		}
		if !to.IsZero() && mv.Date.After(to) {
			continue
		}
		inflow = inflow.Add(mv.Inflow)
		outflow = outflow.Add(mv.Outflow)
	}
	return inflow, outflow, nil
}

func (m *MockMovementRepository) SumSigned(ctx context.Context, tx usecase.Transaction, accountID string, since time.Time) (decimal.Decimal, error) {
	if m.SumSignedFunc != nil {
		return m.SumSignedFunc(ctx, tx, accountID, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, mv := range m.movements {
		if mv.AccountID != accountID || mv.Date.Before(since) {
			continue
		}
		sum = sum.Add(mv.Amount())
	}
	return sum, nil
}

func (m *MockMovementRepository) SumByOrigin(ctx context.Context, accountID string, origin domain.MovementOrigin) (decimal.Decimal, error) {
	if m.SumByOriginFunc != nil {
		return m.SumByOriginFunc(ctx, accountID, origin)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, mv := range m.movements {
		if mv.AccountID != accountID || mv.Origin != origin {
			continue
		}
		sum = sum.Add(mv.Amount())
	}
	return sum, nil
}

func (m *MockMovementRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	if m.CountByAccountFunc != nil {
		return m.CountByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, mv := range m.movements {
		if mv.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

// MockTitleRepository is a mock implementation of TitleRepository.
type MockTitleRepository struct {
	mu     sync.RWMutex
	titles map[string]*domain.Title

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, title *domain.Title) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Title, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Title, error)
	UpdateAggregateFunc  func(ctx context.Context, tx usecase.Transaction, id string, status domain.TitleStatus, settlementDate *time.Time, locked bool, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error)
}

func NewMockTitleRepository() *MockTitleRepository {
	return &MockTitleRepository{
		titles: make(map[string]*domain.Title),
	}
}

func (m *MockTitleRepository) Create(ctx context.Context, tx usecase.Transaction, title *domain.Title) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, title)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles[title.ID] = title
	return nil
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id string) (*domain.Title, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.titles[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTitleNotFound
}

func (m *MockTitleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Title, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTitleRepository) UpdateAggregate(ctx context.Context, tx usecase.Transaction, id string, status domain.TitleStatus, settlementDate *time.Time, locked bool, updatedAt time.Time) error {
	if m.UpdateAggregateFunc != nil {
		return m.UpdateAggregateFunc(ctx, tx, id, status, settlementDate, locked, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.titles[id]; ok {
		t.Status = status
		t.SettlementDate = settlementDate
		t.Locked = locked
		t.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrTitleNotFound
}

func (m *MockTitleRepository) List(ctx context.Context, filter usecase.TitleFilter) ([]*domain.Title, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var titles []*domain.Title
	for _, t := range m.titles {
		if filter.TenantID != "" && t.TenantID != filter.TenantID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		titles = append(titles, t)
	}
	return titles, nil
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository.
type MockInstallmentRepository struct {
	mu           sync.RWMutex
	installments map[string]*domain.Installment

	CreateBatchFunc         func(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Installment, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error)
	MarkPaidFunc            func(ctx context.Context, tx usecase.Transaction, id string, paymentDate time.Time, compensationDate *time.Time, accountID, paymentMethodID string, updatedAt time.Time) error
	MarkPendingFunc         func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error
	ListByTitleFunc         func(ctx context.Context, titleID string) ([]*domain.Installment, error)
	CountByStatusFunc       func(ctx context.Context, tx usecase.Transaction, titleID string) (int, int, error)
	ListPendingFunc         func(ctx context.Context, filter usecase.PendingInstallmentFilter) ([]*domain.PendingInstallment, error)
	SumPendingByAccountFunc func(ctx context.Context, accountID string, titleType domain.TitleType) (decimal.Decimal, error)
}

func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		installments: make(map[string]*domain.Installment),
	}
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, installments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ins := range installments {
		m.installments[ins.ID] = ins
	}
	return nil
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ins, ok := m.installments[id]; ok {
		return ins, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInstallmentRepository) MarkPaid(ctx context.Context, tx usecase.Transaction, id string, paymentDate time.Time, compensationDate *time.Time, accountID, paymentMethodID string, updatedAt time.Time) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, tx, id, paymentDate, compensationDate, accountID, paymentMethodID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ins, ok := m.installments[id]
	if !ok {
		return domain.ErrInstallmentNotFound
	}
	ins.Status = domain.InstallmentPago
	ins.PaymentDate = &paymentDate
	ins.CompensationDate = compensationDate
	ins.AccountID = &accountID
	ins.PaymentMethodID = &paymentMethodID
	ins.UpdatedAt = updatedAt
	return nil
}

func (m *MockInstallmentRepository) MarkPending(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.MarkPendingFunc != nil {
		return m.MarkPendingFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ins, ok := m.installments[id]
	if !ok {
		return domain.ErrInstallmentNotFound
	}
	ins.Status = domain.InstallmentPendente
	ins.PaymentDate = nil
	ins.CompensationDate = nil
	ins.AccountID = nil
	ins.PaymentMethodID = nil
	ins.UpdatedAt = updatedAt
	return nil
}

func (m *MockInstallmentRepository) ListByTitle(ctx context.Context, titleID string) ([]*domain.Installment, error) {
	if m.ListByTitleFunc != nil {
		return m.ListByTitleFunc(ctx, titleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var installments []*domain.Installment
	for _, ins := range m.installments {
		if ins.TitleID == titleID {
			installments = append(installments, ins)
		}
	}
	return installments, nil
}

func (m *MockInstallmentRepository) CountByStatus(ctx context.Context, tx usecase.Transaction, titleID string) (int, int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, tx, titleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total, paid int
	for _, ins := range m.installments {
		if ins.TitleID != titleID {
			continue
		}
		total++
		if ins.Status == domain.InstallmentPago {
			paid++
		}
	}
	return total, paid, nil
}

func (m *MockInstallmentRepository) ListPending(ctx context.Context, filter usecase.PendingInstallmentFilter) ([]*domain.PendingInstallment, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pending []*domain.PendingInstallment
	for _, ins := range m.installments {
		if ins.Status != domain.InstallmentPendente {
			continue
		}
		if filter.TenantID != "" && ins.TenantID != filter.TenantID {
			continue
		}
		if !filter.From.IsZero() && ins.DueDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && ins.DueDate.After(filter.To) {
			continue
		}
		pending = append(pending, &domain.PendingInstallment{Installment: *ins})
	}
	return pending, nil
}

func (m *MockInstallmentRepository) SumPendingByAccount(ctx context.Context, accountID string, titleType domain.TitleType) (decimal.Decimal, error) {
	if m.SumPendingByAccountFunc != nil {
		return m.SumPendingByAccountFunc(ctx, accountID, titleType)
	}
	return decimal.Zero, nil
}

// MockDailyBalanceRepository is a mock implementation of DailyBalanceRepository.
type MockDailyBalanceRepository struct {
	mu   sync.RWMutex
	rows map[string][]*domain.DailyBalance

	ReplaceFromFunc   func(ctx context.Context, accountID string, from time.Time, rows []*domain.DailyBalance) error
	GetLastBeforeFunc func(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalance, error)
	ListRangeFunc     func(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error)
}

func NewMockDailyBalanceRepository() *MockDailyBalanceRepository {
	return &MockDailyBalanceRepository{
		rows: make(map[string][]*domain.DailyBalance),
	}
}

func (m *MockDailyBalanceRepository) ReplaceFrom(ctx context.Context, accountID string, from time.Time, rows []*domain.DailyBalance) error {
	if m.ReplaceFromFunc != nil {
		return m.ReplaceFromFunc(ctx, accountID, from, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.DailyBalance
	for _, row := range m.rows[accountID] {
		if row.Date.Before(from) {
			kept = append(kept, row)
		}
	}
	m.rows[accountID] = append(kept, rows...)
	return nil
}

func (m *MockDailyBalanceRepository) GetLastBefore(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalance, error) {
	if m.GetLastBeforeFunc != nil {
		return m.GetLastBeforeFunc(ctx, accountID, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last *domain.DailyBalance
	for _, row := range m.rows[accountID] {
		if row.Date.Before(date) && (last == nil || row.Date.After(last.Date)) {
			last = row
		}
	}
	return last, nil
}

func (m *MockDailyBalanceRepository) ListRange(ctx context.Context, accountID string, from, to time.Time) ([]*domain.DailyBalance, error) {
	if m.ListRangeFunc != nil {
		return m.ListRangeFunc(ctx, accountID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DailyBalance
	for _, row := range m.rows[accountID] {
		if !row.Date.Before(from) && !row.Date.After(to) {
			result = append(result, row)
		}
	}
	return result, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc     func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AuditLog
	for _, l := range m.logs {
		if filter.TenantID != "" && l.TenantID != filter.TenantID {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

// Logs returns all recorded audit entries.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockPaymentMethodValidator is a mock implementation of PaymentMethodValidator.
type MockPaymentMethodValidator struct {
	ExistsFunc func(ctx context.Context, tenantID, id string) (bool, error)
}

func NewMockPaymentMethodValidator() *MockPaymentMethodValidator {
	return &MockPaymentMethodValidator{}
}

func (m *MockPaymentMethodValidator) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, tenantID, id)
	}
	return true, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func NewMockTransaction() *MockTransaction {
	return &MockTransaction{}
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = NewMockTransaction()
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// ErrCacheMiss is returned by MockCache.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
