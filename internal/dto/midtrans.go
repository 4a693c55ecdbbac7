package dto

import "github.com/midtrans/midtrans-go"

// SnapRequest is the body of a Snap transaction creation call.
type SnapRequest struct {
	TransactionDetails midtrans.TransactionDetails `json:"transaction_details"`
	CustomerDetails    *midtrans.CustomerDetails   `json:"customer_details,omitempty"`
	ItemDetails        []midtrans.ItemDetails      `json:"item_details"`
	Callbacks          SnapCallbacks               `json:"callbacks"`
}

type SnapCallbacks struct {
	Finish   string `json:"finish"`
	Unfinish string `json:"unfinish"`
	Error    string `json:"error"`
}

type SnapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   *string  `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
	Message       string   `json:"message"`
}

type VANumber struct {
	Bank     string `json:"bank"`
	VANumber string `json:"va_number"`
}

// MidtransStatusResponse is the body of GET /v2/{order_id}/status.
type MidtransStatusResponse struct {
	OrderID           *string    `json:"order_id"`
	TransactionID     *string    `json:"transaction_id"`
	TransactionStatus string     `json:"transaction_status"`
	StatusCode        *string    `json:"status_code"`
	StatusMessage     *string    `json:"status_message"`
	Message           *string    `json:"message"`
	PaymentType       *string    `json:"payment_type"`
	GrossAmount       *string    `json:"gross_amount"`
	FraudStatus       *string    `json:"fraud_status"`
	SettlementTime    *string    `json:"settlement_time"`
	ExpiryTime        *string    `json:"expiry_time"`
	VANumbers         []VANumber `json:"va_numbers"`
	PaymentCode       *string    `json:"payment_code"`
	TransactionTime   *string    `json:"transaction_time"`
}
