package service

import (
	"context"

	"github.com/alimikegami/quadraplay/payment-service/internal/domain"
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/repository"
	"github.com/stretchr/testify/mock"
	"gopkg.in/gomail.v2"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.PaymentRepository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) CreatePayment(ctx context.Context, data domain.Payment) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *mockRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (domain.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Payment), args.Error(1)
}

func (m *mockRepository) UpdatePayment(ctx context.Context, orderID string, data domain.PaymentUpdate) error {
	args := m.Called(ctx, orderID, data)
	return args.Error(0)
}

func (m *mockRepository) GetStalePendingPayments(ctx context.Context, updatedBefore int64, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, updatedBefore, limit)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSnapTransaction(ctx context.Context, req dto.SnapRequest) (dto.SnapResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.SnapResponse), args.Error(1)
}

func (m *mockGateway) GetTransactionStatus(ctx context.Context, orderID string) (dto.MidtransStatusResponse, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(dto.MidtransStatusResponse), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) WriteMessage(ctx context.Context, key, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg *gomail.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
