package service

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/mail"
	"github.com/alimikegami/quadraplay/payment-service/internal/view"
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const primaryTransport = "smtp"

type NotificationServiceImpl struct {
	mailer MailSender
	config *config.Config
	now    func() time.Time
}

func CreateNotificationService(mailer MailSender, config *config.Config) NotificationService {
	return &NotificationServiceImpl{
		mailer: mailer,
		config: config,
		now:    time.Now,
	}
}

func (s *NotificationServiceImpl) Send(ctx context.Context, req dto.SendNotificationRequest) (message string, err error) {
	log.Ctx(ctx).Info().Str("component", "SendNotification").Interface("request", req).Msg("send notification request")

	if strings.TrimSpace(req.Email) == "" {
		return "", errs.New(errs.ErrClient, "email is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return "", errs.New(errs.ErrClient, "type is required")
	}

	addr, err := netmail.ParseAddress(req.Email)
	if err != nil || addr.Address != strings.TrimSpace(req.Email) {
		return "", errs.New(errs.ErrClient, "Invalid email format")
	}

	switch req.Type {
	case dto.NotificationReservationConfirmed:
		message, err = s.sendReservationConfirmation(ctx, addr.Address, req)
	case dto.NotificationPaymentReminder:
		err = errs.New(errs.ErrNotImplemented, "Payment reminder not implemented yet")
	case dto.NotificationDeliveryNotification:
		err = errs.New(errs.ErrNotImplemented, "Delivery notification not implemented yet")
	default:
		err = errs.New(errs.ErrClient, "Unknown notification type: %s", req.Type)
	}

	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "SendNotification").Str("type", req.Type).Msg("send notification failed")
		return "", err
	}

	log.Ctx(ctx).Info().Str("component", "SendNotification").Str("type", req.Type).Msg(message)
	return message, nil
}

func (s *NotificationServiceImpl) sendReservationConfirmation(ctx context.Context, to string, req dto.SendNotificationRequest) (string, error) {
	data := dto.ReservationConfirmation{
		Email:        to,
		ReservasiID:  req.ReservasiID.Or(""),
		CustomerName: req.CustomerName.Or("Pelanggan"),
		ItemName:     req.ItemName.Or("PlayStation"),
		JumlahUnit:   req.JumlahUnit.Or("1"),
		JumlahHari:   req.JumlahHari.Or("1"),
		TglMulai:     req.TglMulai.Or("-"),
		TglSelesai:   req.TglSelesai.Or("-"),
		TotalHarga:   req.TotalHarga.Or("0"),
		Alamat:       req.Alamat.Or("-"),
		NoWA:         req.NoWA.Or("-"),
		AppName:      s.config.AppConfig.Name,
		SupportPhone: s.config.AppConfig.SupportPhone,
		Year:         s.now().Year(),
	}

	htmlBody, textBody, err := view.RenderReservationConfirmation(data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "sendReservationConfirmation").Msg("")
		return "", err
	}

	msg := mail.BuildMessage(mail.Envelope{
		FromEmail: s.config.MailConfig.FromEmail,
		FromName:  s.config.MailConfig.FromName,
		To:        to,
		Subject:   fmt.Sprintf("✅ Reservasi Dikonfirmasi - %s #%s", s.config.AppConfig.Name, data.ReservasiID),
		HTMLBody:  htmlBody,
		TextBody:  textBody,
	})

	transport, err := s.mailer.Send(ctx, msg)
	if err != nil {
		return "", errs.New(errs.ErrMailDelivery, "%s", mail.LastError(err).Error())
	}

	if transport == primaryTransport {
		return "Email berhasil dikirim", nil
	}
	return fmt.Sprintf("Email berhasil dikirim via %s", transport), nil
}
