package dto

type PaymentNotification struct {
	TransactionType   string     `json:"transaction_type"`
	TransactionTime   string     `json:"transaction_time"`
	TransactionStatus string     `json:"transaction_status"`
	TransactionID     string     `json:"transaction_id"`
	StatusMessage     string     `json:"status_message"`
	StatusCode        string     `json:"status_code"`
	SignatureKey      string     `json:"signature_key"`
	SettlementTime    string     `json:"settlement_time"`
	ExpiryTime        string     `json:"expiry_time"`
	PaymentType       string     `json:"payment_type"`
	PaymentCode       string     `json:"payment_code"`
	VANumbers         []VANumber `json:"va_numbers"`
	BillKey           string     `json:"bill_key"`
	BillerCode        string     `json:"biller_code"`
	OrderID           string     `json:"order_id"`
	MerchantID        string     `json:"merchant_id"`
	Issuer            string     `json:"issuer"`
	GrossAmount       string     `json:"gross_amount"`
	FraudStatus       string     `json:"fraud_status"`
	Currency          string     `json:"currency"`
	Acquirer          string     `json:"acquirer"`
}
