package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rmaia/contaflux/internal/domain"
)

// CashFlowUseCase projects the unified cash-flow timeline: realized ledger
// movements merged with still-pending installments. Pure read side, no
// mutation.
type CashFlowUseCase struct {
	movementRepo    MovementRepository
	installmentRepo InstallmentRepository
}

// NewCashFlowUseCase creates a new CashFlowUseCase.
func NewCashFlowUseCase(movementRepo MovementRepository, installmentRepo InstallmentRepository) *CashFlowUseCase {
	return &CashFlowUseCase{
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
	}
}

// GetCashFlowInput filters the projection. Unknown filter values are
// defaulted, not rejected: this feeds reporting, not money movement.
type GetCashFlowInput struct {
	TenantID       string
	From           time.Time
	To             time.Time
	AccountID      string
	IncludePending bool
	DateBasis      domain.DateBasis
}

// GetCashFlow returns the merged, chronologically ordered timeline. An
// installment that already produced a movement appears only through that
// movement: the pending branch selects status "pendente" exclusively, so a
// paid installment can never be counted twice. The date basis decides where
// that movement lands on the timeline, its installment's due date or the
// ledger date it was paid on.
func (uc *CashFlowUseCase) GetCashFlow(ctx context.Context, input GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
	if err := domain.ValidateDateRange(input.From, input.To); err != nil {
		return nil, err
	}

	if !input.DateBasis.IsValid() {
		input.DateBasis = domain.DateBasisDue
	}

	entries, err := uc.realizedEntries(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.IncludePending {
		pending, err := uc.pendingEntries(ctx, input)
		if err != nil {
			return nil, err
		}

		entries = append(entries, pending...)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})

	return entries, nil
}

func (uc *CashFlowUseCase) realizedEntries(ctx context.Context, input GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
	var entries []*domain.CashFlowEntry

	// Under the due basis the repository dates installment-linked movements
	// by their installment's due date, so a paid installment shows up in the
	// window its due date falls in.
	for movement, err := range uc.movementRepo.Query(ctx, MovementFilter{
		TenantID:  input.TenantID,
		AccountID: input.AccountID,
		From:      input.From,
		To:        input.To,
		DateBasis: input.DateBasis,
	}) {
		if err != nil {
			return nil, err
		}

		accountID := movement.AccountID
		entries = append(entries, &domain.CashFlowEntry{
			Origin:        domain.CashFlowFromMovement,
			OriginID:      movement.ID,
			Date:          movement.Date,
			AccountID:     &accountID,
			Inflow:        movement.Inflow,
			Outflow:       movement.Outflow,
			Description:   movement.Description,
			Status:        "realizado",
			InstallmentID: movement.InstallmentID,
		})
	}

	return entries, nil
}

func (uc *CashFlowUseCase) pendingEntries(ctx context.Context, input GetCashFlowInput) ([]*domain.CashFlowEntry, error) {
	// Pending installments carry no payment date; regardless of the chosen
	// basis they are projected on their due date.
	pending, err := uc.installmentRepo.ListPending(ctx, PendingInstallmentFilter{
		TenantID:  input.TenantID,
		AccountID: input.AccountID,
		From:      input.From,
		To:        input.To,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.CashFlowEntry, 0, len(pending))
	for _, p := range pending {
		installmentID := p.ID

		entry := &domain.CashFlowEntry{
			Origin:        domain.CashFlowFromInstallment,
			OriginID:      p.ID,
			Date:          p.DueDate,
			AccountID:     p.AccountID,
			Description:   p.Counterparty,
			Status:        string(p.Status),
			InstallmentID: &installmentID,
		}

		if p.TitleType == domain.TitleReceivable {
			entry.Inflow = p.Value
		} else {
			entry.Outflow = p.Value
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
