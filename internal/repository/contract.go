package repository

import (
	"context"

	"github.com/alimikegami/quadraplay/payment-service/internal/domain"
)

type PaymentRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo PaymentRepository) error) error

	// CreatePayment inserts data unless a payment for the same order already exists.
	CreatePayment(ctx context.Context, data domain.Payment) (err error)
	// GetPaymentByOrderID locks the row when called inside HandleTrx.
	GetPaymentByOrderID(ctx context.Context, orderID string) (data domain.Payment, err error)
	UpdatePayment(ctx context.Context, orderID string, data domain.PaymentUpdate) (err error)
	GetStalePendingPayments(ctx context.Context, updatedBefore int64, limit int) (data []domain.Payment, err error)
}
