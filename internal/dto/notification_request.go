package dto

import (
	"bytes"
	"encoding/json"
)

const (
	NotificationReservationConfirmed = "reservation_confirmed"
	NotificationPaymentReminder      = "payment_reminder"
	NotificationDeliveryNotification = "delivery_notification"
)

// FlexString accepts either a JSON string or a bare number/bool; the mobile client sends ids and
// amounts both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = FlexString(raw)
	return nil
}

func (f FlexString) Or(fallback string) string {
	if f == "" {
		return fallback
	}
	return string(f)
}

type SendNotificationRequest struct {
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	ReservasiID  FlexString `json:"reservasi_id"`
	CustomerName FlexString `json:"customer_name"`
	ItemName     FlexString `json:"item_name"`
	JumlahUnit   FlexString `json:"jumlah_unit"`
	JumlahHari   FlexString `json:"jumlah_hari"`
	TglMulai     FlexString `json:"tgl_mulai"`
	TglSelesai   FlexString `json:"tgl_selesai"`
	TotalHarga   FlexString `json:"total_harga"`
	Alamat       FlexString `json:"alamat"`
	NoWA         FlexString `json:"no_wa"`
}

// ReservationConfirmation is the resolved content of a reservation_confirmed email.
type ReservationConfirmation struct {
	Email        string
	ReservasiID  string
	CustomerName string
	ItemName     string
	JumlahUnit   string
	JumlahHari   string
	TglMulai     string
	TglSelesai   string
	TotalHarga   string
	Alamat       string
	NoWA         string
	AppName      string
	SupportPhone string
	Year         int
}
