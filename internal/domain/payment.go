package domain

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusDenied    PaymentStatus = "denied"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Gateway transaction states and fraud verdicts reported by Midtrans.
const (
	TransactionStatusCapture    = "capture"
	TransactionStatusSettlement = "settlement"
	TransactionStatusPending    = "pending"
	TransactionStatusDeny       = "deny"
	TransactionStatusCancel     = "cancel"
	TransactionStatusExpire     = "expire"
	TransactionStatusFailure    = "failure"

	FraudStatusAccept    = "accept"
	FraudStatusChallenge = "challenge"
	FraudStatusDeny      = "deny"
)

type Payment struct {
	OrderID           string  `db:"order_id"`
	TransactionID     *string `db:"transaction_id"`
	Status            string  `db:"status"`
	TransactionStatus *string `db:"transaction_status"`
	PaymentType       *string `db:"payment_type"`
	GrossAmount       *string `db:"gross_amount"`
	FraudStatus       *string `db:"fraud_status"`
	SettlementTime    *string `db:"settlement_time"`
	ExpiryTime        *string `db:"expiry_time"`
	VANumbers         *string `db:"va_numbers"`
	PaymentCode       *string `db:"payment_code"`
	CreatedAt         int64   `db:"created_at"`
	UpdatedAt         int64   `db:"updated_at"`
}

// PaymentUpdate is the trusted, normalised result of a gateway notification or status poll.
type PaymentUpdate struct {
	OrderID           string        `db:"order_id" json:"order_id"`
	TransactionID     string        `db:"transaction_id" json:"transaction_id"`
	Status            PaymentStatus `db:"status" json:"status"`
	TransactionStatus string        `db:"transaction_status" json:"transaction_status"`
	PaymentType       string        `db:"payment_type" json:"payment_type"`
	GrossAmount       string        `db:"gross_amount" json:"gross_amount"`
	FraudStatus       string        `db:"fraud_status" json:"fraud_status,omitempty"`
	SettlementTime    string        `db:"settlement_time" json:"settlement_time,omitempty"`
	ExpiryTime        string        `db:"expiry_time" json:"expiry_time,omitempty"`
	VANumbers         string        `db:"va_numbers" json:"va_numbers,omitempty"`
	PaymentCode       string        `db:"payment_code" json:"payment_code,omitempty"`
	UpdatedAt         int64         `db:"updated_at" json:"updated_at"`
}

// MapStatus derives the domain payment status from the gateway's transaction and fraud status.
// Unrecognised transaction states are treated as pending.
func MapStatus(transactionStatus, fraudStatus string) PaymentStatus {
	switch transactionStatus {
	case TransactionStatusCapture:
		// card captures flagged by the fraud system wait for a manual decision
		if fraudStatus == FraudStatusChallenge {
			return PaymentStatusPending
		}
		return PaymentStatusConfirmed
	case TransactionStatusSettlement:
		return PaymentStatusConfirmed
	case TransactionStatusPending:
		return PaymentStatusPending
	case TransactionStatusDeny:
		return PaymentStatusDenied
	case TransactionStatusCancel:
		return PaymentStatusCancelled
	case TransactionStatusExpire:
		return PaymentStatusExpired
	case TransactionStatusFailure:
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}

// Matches reports whether the stored payment already reflects u.
func (p Payment) Matches(u PaymentUpdate) bool {
	if p.Status != string(u.Status) {
		return false
	}
	if p.TransactionStatus == nil {
		return u.TransactionStatus == ""
	}
	return *p.TransactionStatus == u.TransactionStatus
}
