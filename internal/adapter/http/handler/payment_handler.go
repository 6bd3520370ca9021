package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/contaflux/internal/adapter/http/dto"
	"github.com/rmaia/contaflux/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	PayInstallment(ctx context.Context, input usecase.PayInstallmentInput) (*usecase.PayInstallmentResult, error)
	ReverseInstallment(ctx context.Context, input usecase.ReverseInstallmentInput) (*usecase.ReverseInstallmentResult, error)
}

// PaymentHandler handles installment payment and reversal requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Pay records a payment for a pending installment.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	var req dto.PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.PayInstallment(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to pay installment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayResultFromUseCase(result))
}

// Reverse undoes a recorded payment, returning the installment to pending.
func (h *PaymentHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	var req dto.ReverseInstallmentRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	result, err := h.paymentUC.ReverseInstallment(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse installment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReverseResultFromUseCase(result))
}
