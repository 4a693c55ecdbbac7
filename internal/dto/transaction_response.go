package dto

type CreateTransactionResponse struct {
	Success     bool    `json:"success"`
	SnapToken   string  `json:"snap_token"`
	RedirectURL *string `json:"redirect_url"`
	OrderID     string  `json:"order_id"`
}

type TransactionStatusData struct {
	OrderID           string     `json:"order_id"`
	TransactionID     *string    `json:"transaction_id"`
	TransactionStatus string     `json:"transaction_status"`
	StatusCode        *string    `json:"status_code"`
	StatusMessage     *string    `json:"status_message"`
	PaymentType       *string    `json:"payment_type"`
	GrossAmount       *string    `json:"gross_amount"`
	FraudStatus       *string    `json:"fraud_status"`
	SettlementTime    *string    `json:"settlement_time"`
	ExpiryTime        *string    `json:"expiry_time"`
	VANumbers         []VANumber `json:"va_numbers"`
	PaymentCode       *string    `json:"payment_code"`
	TransactionTime   *string    `json:"transaction_time"`
}
