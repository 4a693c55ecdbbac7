package service

import (
	"context"

	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"gopkg.in/gomail.v2"
)

type PaymentService interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (resp dto.CreateTransactionResponse, err error)
	CheckStatus(ctx context.Context, orderID string) (data dto.TransactionStatusData, err error)
	HandleNotification(ctx context.Context, req dto.PaymentNotification) (err error)
	ReconcilePendingPayments(ctx context.Context) (reconciled int, err error)
}

type NotificationService interface {
	Send(ctx context.Context, req dto.SendNotificationRequest) (message string, err error)
}

type PaymentGateway interface {
	CreateSnapTransaction(ctx context.Context, req dto.SnapRequest) (dto.SnapResponse, error)
	GetTransactionStatus(ctx context.Context, orderID string) (dto.MidtransStatusResponse, error)
}

type EventPublisher interface {
	WriteMessage(ctx context.Context, key, value []byte) error
}

// MailSender delivers msg and reports which transport accepted it.
type MailSender interface {
	Send(ctx context.Context, msg *gomail.Message) (transport string, err error)
}
