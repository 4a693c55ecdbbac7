package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusForbidden        = http.StatusForbidden
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusMethodNotAllowed = http.StatusMethodNotAllowed
	ErrStatusNotImplemented   = http.StatusNotImplemented
)

var (
	ErrInternalServer      = errors.New("Server error")
	ErrClient              = errors.New("Bad request")
	ErrInvalidJSON         = errors.New("Invalid JSON input")
	ErrUnauthorized        = errors.New("Unauthorized access")
	ErrNotFound            = errors.New("Resource not found")
	ErrMethodNotAllowed    = errors.New("Method not allowed")
	ErrInvalidNotification = errors.New("Invalid notification data")
	ErrInvalidSignature    = errors.New("Invalid signature")
	ErrPaymentNotFound     = errors.New("Payment not found")
	ErrTransactionNotFound = errors.New("Transaction not found")
	ErrPaymentUpdateFailed = errors.New("Failed to update payment")
	ErrPaymentCreateFailed = errors.New("Failed to save payment")
	ErrConnection          = errors.New("Connection error")
	ErrGateway             = errors.New("Failed to create transaction")
	ErrNotImplemented      = errors.New("Not implemented")
	ErrMailDelivery        = errors.New("Failed to send email")
)

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrInvalidJSON:         ErrStatusClient,
	ErrUnauthorized:        ErrStatusUnauthorized,
	ErrNotFound:            ErrStatusNotFound,
	ErrMethodNotAllowed:    ErrStatusMethodNotAllowed,
	ErrInvalidNotification: ErrStatusClient,
	ErrInvalidSignature:    ErrStatusForbidden,
	ErrPaymentNotFound:     ErrStatusNotFound,
	ErrTransactionNotFound: ErrStatusNotFound,
	ErrPaymentUpdateFailed: ErrStatusInternalServer,
	ErrPaymentCreateFailed: ErrStatusInternalServer,
	ErrConnection:          ErrStatusInternalServer,
	ErrGateway:             ErrStatusClient,
	ErrNotImplemented:      ErrStatusNotImplemented,
	ErrMailDelivery:        ErrStatusInternalServer,
}

// Error attaches a client-facing message to one of the sentinel errors above. Status, when
// non-zero, replaces the status mapped from Kind; Details is echoed back to the client.
type Error struct {
	Kind    error
	Message string
	Status  int
	Details interface{}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New returns an *Error of the given kind with a formatted message.
func New(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func GetErrorStatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}

	for kind, status := range errorMap {
		if errors.Is(err, kind) {
			return status
		}
	}

	return errorMap[ErrInternalServer]
}

// GetErrorDetails returns the details attached to err, if any.
func GetErrorDetails(err error) interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
