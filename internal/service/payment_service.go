package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/domain"
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/repository"
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/alimikegami/quadraplay/payment-service/pkg/utils"
	"github.com/midtrans/midtrans-go"
	"github.com/rs/zerolog/log"
)

const (
	defaultItemID       = "rental-ps"
	defaultItemName     = "Rental PlayStation"
	fallbackItemID      = "item"
	fallbackItemName    = "Item"
	defaultCustomerName = "Customer"

	publishMaxRetries = 3
	publishTimeout    = 2 * time.Second
)

type PaymentServiceImpl struct {
	repository repository.PaymentRepository
	gateway    PaymentGateway
	publisher  EventPublisher
	config     *config.Config
	now        func() time.Time
	retryDelay time.Duration
	// publishTimeout bounds all publish attempts of one event, since they run inside the webhook call.
	publishTimeout time.Duration
}

// CreatePaymentService wires the payment flows. publisher may be nil, in which case no events
// are emitted.
func CreatePaymentService(repository repository.PaymentRepository, gateway PaymentGateway, publisher EventPublisher, config *config.Config) PaymentService {
	return &PaymentServiceImpl{
		repository:     repository,
		gateway:        gateway,
		publisher:      publisher,
		config:         config,
		now:            time.Now,
		retryDelay:     200 * time.Millisecond,
		publishTimeout: publishTimeout,
	}
}

func (s *PaymentServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (resp dto.CreateTransactionResponse, err error) {
	log.Ctx(ctx).Info().Str("component", "CreateTransaction").Interface("request", req).Msg("create transaction request")

	if req.OrderID == "" {
		return resp, errs.New(errs.ErrClient, "order_id is required")
	}
	// the gateway only takes whole rupiah, so fractions are dropped before the check
	grossAmount := int64(req.GrossAmount)
	if grossAmount <= 0 {
		return resp, errs.New(errs.ErrClient, "gross_amount must be greater than 0")
	}

	scheme := s.config.AppConfig.DeepLinkScheme

	snapReq := dto.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: grossAmount,
		},
		CustomerDetails: buildCustomerDetails(req.CustomerDetails),
		ItemDetails:     buildItemDetails(req.ItemDetails, grossAmount),
		Callbacks: dto.SnapCallbacks{
			Finish:   fmt.Sprintf("%s://payment/finish", scheme),
			Unfinish: fmt.Sprintf("%s://payment/unfinish", scheme),
			Error:    fmt.Sprintf("%s://payment/error", scheme),
		},
	}

	snapResp, err := s.gateway.CreateSnapTransaction(ctx, snapReq)
	if err != nil {
		return resp, err
	}

	now := s.now().Unix()
	storedAmount := fmt.Sprintf("%d.00", grossAmount)
	err = s.repository.CreatePayment(ctx, domain.Payment{
		OrderID:     req.OrderID,
		Status:      string(domain.PaymentStatusPending),
		GrossAmount: &storedAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateTransaction").Str("order_id", req.OrderID).Msg("snap session created but payment was not saved")
		return resp, errs.ErrPaymentCreateFailed
	}

	resp.Success = true
	resp.SnapToken = snapResp.Token
	resp.RedirectURL = snapResp.RedirectURL
	resp.OrderID = req.OrderID

	return resp, nil
}

func buildCustomerDetails(req *dto.CustomerDetailsRequest) *midtrans.CustomerDetails {
	if req == nil {
		return nil
	}

	firstName := req.FirstName
	if firstName == "" {
		firstName = defaultCustomerName
	}

	return &midtrans.CustomerDetails{
		FName: firstName,
		Email: req.Email,
		Phone: req.Phone,
	}
}

// buildItemDetails fills in missing item fields. A missing price becomes floor(gross/quantity),
// so price*quantity may fall short of the gross amount by less than quantity.
func buildItemDetails(items []dto.ItemDetailRequest, grossAmount int64) []midtrans.ItemDetails {
	if len(items) == 0 {
		return []midtrans.ItemDetails{{
			ID:    defaultItemID,
			Name:  defaultItemName,
			Price: grossAmount,
			Qty:   1,
		}}
	}

	details := make([]midtrans.ItemDetails, len(items))
	for i, item := range items {
		quantity := 1
		if item.Quantity != nil && *item.Quantity > 0 {
			quantity = *item.Quantity
		}

		price := int64(item.Price)
		if price == 0 {
			price = grossAmount / int64(quantity)
		}

		id := item.ID
		if id == "" {
			id = fallbackItemID
		}
		name := item.Name
		if name == "" {
			name = fallbackItemName
		}

		details[i] = midtrans.ItemDetails{
			ID:    id,
			Name:  name,
			Price: price,
			Qty:   int32(quantity),
		}
	}

	return details
}

func (s *PaymentServiceImpl) CheckStatus(ctx context.Context, orderID string) (data dto.TransactionStatusData, err error) {
	if orderID == "" {
		return data, errs.New(errs.ErrClient, "order_id is required")
	}

	log.Ctx(ctx).Info().Str("component", "CheckStatus").Str("order_id", orderID).Msg("check status request")

	status, err := s.gateway.GetTransactionStatus(ctx, orderID)
	if err != nil {
		return data, err
	}

	data.OrderID = orderID
	if status.OrderID != nil && *status.OrderID != "" {
		data.OrderID = *status.OrderID
	}
	data.TransactionID = status.TransactionID
	data.TransactionStatus = status.TransactionStatus
	data.StatusCode = status.StatusCode
	data.StatusMessage = status.StatusMessage
	data.PaymentType = status.PaymentType
	data.GrossAmount = status.GrossAmount
	data.FraudStatus = status.FraudStatus
	data.SettlementTime = status.SettlementTime
	data.ExpiryTime = status.ExpiryTime
	data.VANumbers = status.VANumbers
	data.PaymentCode = status.PaymentCode
	data.TransactionTime = status.TransactionTime

	return data, nil
}

func (s *PaymentServiceImpl) HandleNotification(ctx context.Context, req dto.PaymentNotification) (err error) {
	log.Ctx(ctx).Info().Str("component", "HandleNotification").Interface("notification", req).Msg("webhook notification received")

	if req.OrderID == "" || req.TransactionStatus == "" {
		return errs.ErrInvalidNotification
	}

	if !utils.VerifyMidtransSignature(req.OrderID, req.StatusCode, req.GrossAmount, s.config.MidtransConfig.ServerKey, req.SignatureKey) {
		log.Ctx(ctx).Warn().Str("component", "HandleNotification").Str("order_id", req.OrderID).Str("received_signature", req.SignatureKey).Bool("rejected", s.config.MidtransConfig.RejectOnSignatureMismatch).Msg("signature verification failed")

		if s.config.MidtransConfig.RejectOnSignatureMismatch {
			return errs.ErrInvalidSignature
		}
	}

	update := domain.PaymentUpdate{
		OrderID:           req.OrderID,
		TransactionID:     req.TransactionID,
		Status:            domain.MapStatus(req.TransactionStatus, req.FraudStatus),
		TransactionStatus: req.TransactionStatus,
		PaymentType:       req.PaymentType,
		GrossAmount:       req.GrossAmount,
		FraudStatus:       req.FraudStatus,
		SettlementTime:    req.SettlementTime,
		ExpiryTime:        req.ExpiryTime,
		VANumbers:         encodeVANumbers(ctx, req.VANumbers),
		PaymentCode:       req.PaymentCode,
		UpdatedAt:         s.now().Unix(),
	}

	_, err = s.applyUpdate(ctx, update)
	return err
}

func encodeVANumbers(ctx context.Context, vaNumbers []dto.VANumber) string {
	if len(vaNumbers) == 0 {
		return ""
	}

	b, err := json.Marshal(vaNumbers)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "encodeVANumbers").Msg("")
		return ""
	}
	return string(b)
}

// applyUpdate writes update unless the stored payment already reflects it. The row stays locked
// between the read and the write, so concurrent deliveries of the same notification apply once.
func (s *PaymentServiceImpl) applyUpdate(ctx context.Context, update domain.PaymentUpdate) (applied bool, err error) {
	var previousStatus string

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.PaymentRepository) error {
		stored, err := repo.GetPaymentByOrderID(ctx, update.OrderID)
		if err != nil {
			return err
		}

		if stored.Matches(update) {
			log.Ctx(ctx).Info().Str("component", "applyUpdate").Str("order_id", update.OrderID).Str("status", stored.Status).Msg("payment already up to date")
			return nil
		}

		if err := repo.UpdatePayment(ctx, update.OrderID, update); err != nil {
			return err
		}

		previousStatus = stored.Status
		applied = true
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrPaymentNotFound) {
			return false, errs.ErrPaymentNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "applyUpdate").Str("order_id", update.OrderID).Msg("")
		return false, errs.ErrPaymentUpdateFailed
	}

	if applied {
		log.Ctx(ctx).Info().Str("component", "applyUpdate").Str("order_id", update.OrderID).Str("from", previousStatus).Str("to", string(update.Status)).Msg("payment updated")
		if previousStatus != string(update.Status) {
			s.publishStatusUpdated(ctx, update)
		}
	}

	return applied, nil
}

func (s *PaymentServiceImpl) publishStatusUpdated(ctx context.Context, update domain.PaymentUpdate) {
	if s.publisher == nil {
		return
	}

	if s.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.publishTimeout)
		defer cancel()
	}

	msg, err := json.Marshal(dto.KafkaMessage{
		EventType: dto.EventPaymentStatusUpdated,
		Data:      update,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishStatusUpdated").Msg("")
		return
	}

	for i := 0; i < publishMaxRetries; i++ {
		err = s.publisher.WriteMessage(ctx, []byte(update.OrderID), msg)
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishStatusUpdated").Int("attempt", i+1).Msg("")

		if i == publishMaxRetries-1 {
			break
		}
		select {
		case <-time.After(s.retryDelay * time.Duration(i+1)):
		case <-ctx.Done():
			return
		}
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishStatusUpdated").Str("order_id", update.OrderID).Msgf("giving up after %d attempts", publishMaxRetries)
}

// ReconcilePendingPayments polls the gateway for payments that have been pending longer than the
// configured threshold and applies whatever the gateway reports. It covers webhooks that never
// arrived.
func (s *PaymentServiceImpl) ReconcilePendingPayments(ctx context.Context) (reconciled int, err error) {
	cutoff := s.now().Add(-s.config.ReconcileConfig.StaleAfter).Unix()

	payments, err := s.repository.GetStalePendingPayments(ctx, cutoff, s.config.ReconcileConfig.BatchSize)
	if err != nil {
		return 0, err
	}

	for _, p := range payments {
		if ctx.Err() != nil {
			return reconciled, ctx.Err()
		}

		status, err := s.gateway.GetTransactionStatus(ctx, p.OrderID)
		if err != nil {
			if errors.Is(err, errs.ErrTransactionNotFound) {
				log.Ctx(ctx).Debug().Str("component", "ReconcilePendingPayments").Str("order_id", p.OrderID).Msg("no gateway transaction yet")
			} else {
				log.Ctx(ctx).Warn().Err(err).Str("component", "ReconcilePendingPayments").Str("order_id", p.OrderID).Msg("")
			}
			continue
		}

		applied, err := s.applyUpdate(ctx, s.updateFromStatus(ctx, p.OrderID, status))
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "ReconcilePendingPayments").Str("order_id", p.OrderID).Msg("")
			continue
		}
		if applied {
			reconciled++
		}
	}

	log.Ctx(ctx).Info().Str("component", "ReconcilePendingPayments").Int("checked", len(payments)).Int("reconciled", reconciled).Msg("reconciliation finished")

	return reconciled, nil
}

func (s *PaymentServiceImpl) updateFromStatus(ctx context.Context, orderID string, status dto.MidtransStatusResponse) domain.PaymentUpdate {
	fraudStatus := deref(status.FraudStatus)

	return domain.PaymentUpdate{
		OrderID:           orderID,
		TransactionID:     deref(status.TransactionID),
		Status:            domain.MapStatus(status.TransactionStatus, fraudStatus),
		TransactionStatus: status.TransactionStatus,
		PaymentType:       deref(status.PaymentType),
		GrossAmount:       deref(status.GrossAmount),
		FraudStatus:       fraudStatus,
		SettlementTime:    deref(status.SettlementTime),
		ExpiryTime:        deref(status.ExpiryTime),
		VANumbers:         encodeVANumbers(ctx, status.VANumbers),
		PaymentCode:       deref(status.PaymentCode),
		UpdatedAt:         s.now().Unix(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
