package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/controller"
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/middleware"
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (dto.CreateTransactionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.CreateTransactionResponse), args.Error(1)
}

func (m *mockPaymentService) CheckStatus(ctx context.Context, orderID string) (dto.TransactionStatusData, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(dto.TransactionStatusData), args.Error(1)
}

func (m *mockPaymentService) HandleNotification(ctx context.Context, req dto.PaymentNotification) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockPaymentService) ReconcilePendingPayments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) Send(ctx context.Context, req dto.SendNotificationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type ControllerSuite struct {
	suite.Suite
	e            *echo.Echo
	payments     *mockPaymentService
	notification *mockNotificationService
}

func (s *ControllerSuite) SetupTest() {
	s.payments = new(mockPaymentService)
	s.notification = new(mockNotificationService)

	conf := &config.Config{AppConfig: config.AppConfig{Name: "QuadraPlay", DeepLinkScheme: "quadraplay"}}

	s.e = echo.New()
	s.e.HTTPErrorHandler = response.HTTPErrorHandler
	s.e.Pre(middleware.CORS)
	s.e.Use(middleware.Logger)

	g := s.e.Group("/api/v1")
	controller.CreatePaymentController(g, s.payments)
	controller.CreateRedirectController(g, conf)
	controller.CreateNotificationController(g, s.notification)
}

func (s *ControllerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ControllerSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *ControllerSuite) TestMalformedJSON() {
	for _, target := range []string{"/api/v1/midtrans/transactions", "/api/v1/midtrans/notifications", "/api/v1/notifications"} {
		for _, body := range []string{"{not json", " ", "null", "[]", `"text"`, "42"} {
			rec := s.do(http.MethodPost, target, body)
			s.Equal(http.StatusBadRequest, rec.Code, target)
			s.JSONEq(`{"success":false,"message":"Invalid JSON input"}`, rec.Body.String(), target)
		}
	}
}

func (s *ControllerSuite) TestMalformedJSON_WithoutContentType() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/midtrans/transactions", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ControllerSuite) TestPreflight() {
	for _, target := range []string{"/api/v1/midtrans/transactions", "/api/v1/midtrans/transactions/status", "/api/v1/midtrans/notifications", "/api/v1/notifications", "/api/v1/midtrans/finish"} {
		rec := s.do(http.MethodOptions, target, "")
		s.Equal(http.StatusOK, rec.Code, target)
		s.Equal("*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin), target)
	}
}

func (s *ControllerSuite) TestMethodNotAllowed() {
	rec := s.do(http.MethodGet, "/api/v1/midtrans/notifications", "")
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.JSONEq(`{"success":false,"message":"Method not allowed"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/api/v1/midtrans/transactions/status", "")
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *ControllerSuite) TestCreateTransaction() {
	redirect := "https://app.sandbox.midtrans.com/snap/v4/redirection/tok"
	s.payments.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.OrderID == "RSV-1" && req.GrossAmount == 100000 && len(req.ItemDetails) == 1 && *req.ItemDetails[0].Quantity == 4
	})).Return(dto.CreateTransactionResponse{Success: true, SnapToken: "tok", RedirectURL: &redirect, OrderID: "RSV-1"}, nil)

	rec := s.do(http.MethodPost, "/api/v1/midtrans/transactions", `{"order_id":"RSV-1","gross_amount":100000,"item_details":[{"quantity":4}]}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"snap_token":"tok","redirect_url":"`+redirect+`","order_id":"RSV-1"}`, rec.Body.String())
}

func (s *ControllerSuite) TestCreateTransaction_Errors() {
	s.payments.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.OrderID == ""
	})).Return(dto.CreateTransactionResponse{}, errs.New(errs.ErrClient, "order_id is required"))
	s.payments.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.OrderID == "RSV-DUP"
	})).Return(dto.CreateTransactionResponse{}, &errs.Error{
		Kind:    errs.ErrGateway,
		Message: "transaction_details.order_id has already been taken",
		Status:  http.StatusBadRequest,
		Details: map[string]interface{}{"error_messages": []string{"transaction_details.order_id has already been taken"}},
	})
	s.payments.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.OrderID == "RSV-NET"
	})).Return(dto.CreateTransactionResponse{}, errs.New(errs.ErrConnection, "Connection error: %s", "dial tcp: i/o timeout"))

	rec := s.do(http.MethodPost, "/api/v1/midtrans/transactions", `{"gross_amount":1000}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"success":false,"message":"order_id is required"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/midtrans/transactions", `{"order_id":"RSV-DUP","gross_amount":1000}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	s.Equal("transaction_details.order_id has already been taken", body["message"])
	s.NotNil(body["details"])

	rec = s.do(http.MethodPost, "/api/v1/midtrans/transactions", `{"order_id":"RSV-NET","gross_amount":1000}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("Connection error: dial tcp: i/o timeout", s.decode(rec)["message"])
}

func (s *ControllerSuite) TestCheckStatus() {
	txID := "trx-1"
	s.payments.On("CheckStatus", mock.Anything, "RSV-1").Return(dto.TransactionStatusData{OrderID: "RSV-1", TransactionID: &txID, TransactionStatus: "settlement"}, nil)

	rec := s.do(http.MethodGet, "/api/v1/midtrans/transactions/status?order_id=RSV-1", "")
	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal(true, body["success"])
	data := body["data"].(map[string]interface{})
	s.Equal("settlement", data["transaction_status"])
	s.Equal("trx-1", data["transaction_id"])

	rec = s.do(http.MethodPost, "/api/v1/midtrans/transactions/status", `{"order_id":"RSV-1"}`)
	s.Equal(http.StatusOK, rec.Code)

	s.payments.AssertNumberOfCalls(s.T(), "CheckStatus", 2)
}

func (s *ControllerSuite) TestCheckStatus_NotFoundAndMissing() {
	s.payments.On("CheckStatus", mock.Anything, "").Return(dto.TransactionStatusData{}, errs.New(errs.ErrClient, "order_id is required"))
	s.payments.On("CheckStatus", mock.Anything, "RSV-404").Return(dto.TransactionStatusData{}, &errs.Error{
		Kind: errs.ErrTransactionNotFound, Message: "Transaction doesn't exist.", Status: http.StatusNotFound,
		Details: map[string]string{"status_code": "404"},
	})

	rec := s.do(http.MethodGet, "/api/v1/midtrans/transactions/status", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/midtrans/transactions/status", "{broken")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("order_id is required", s.decode(rec)["message"])

	rec = s.do(http.MethodGet, "/api/v1/midtrans/transactions/status?order_id=RSV-404", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"success":false,"message":"Transaction doesn't exist.","details":{"status_code":"404"}}`, rec.Body.String())
}

func (s *ControllerSuite) TestHandleNotification() {
	s.payments.On("HandleNotification", mock.Anything, mock.MatchedBy(func(n dto.PaymentNotification) bool {
		return n.OrderID == "RSV-1" && n.TransactionStatus == "settlement" && len(n.VANumbers) == 1
	})).Return(nil)

	rec := s.do(http.MethodPost, "/api/v1/midtrans/notifications",
		`{"order_id":"RSV-1","transaction_status":"settlement","status_code":"200","gross_amount":"100000.00","signature_key":"abc","va_numbers":[{"bank":"bca","va_number":"1"}]}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"message":"Notification processed"}`, rec.Body.String())
}

func (s *ControllerSuite) TestHandleNotification_Errors() {
	var tests = []struct {
		orderID  string
		err      error
		expected int
		message  string
	}{
		{orderID: "RSV-BAD", err: errs.ErrInvalidNotification, expected: http.StatusBadRequest, message: "Invalid notification data"},
		{orderID: "RSV-SIG", err: errs.ErrInvalidSignature, expected: http.StatusForbidden, message: "Invalid signature"},
		{orderID: "RSV-404", err: errs.ErrPaymentNotFound, expected: http.StatusNotFound, message: "Payment not found"},
		{orderID: "RSV-DB", err: errs.ErrPaymentUpdateFailed, expected: http.StatusInternalServerError, message: "Failed to update payment"},
	}

	for _, tt := range tests {
		tt := tt
		s.payments.On("HandleNotification", mock.Anything, mock.MatchedBy(func(n dto.PaymentNotification) bool {
			return n.OrderID == tt.orderID
		})).Return(tt.err)

		rec := s.do(http.MethodPost, "/api/v1/midtrans/notifications", `{"order_id":"`+tt.orderID+`","transaction_status":"settlement"}`)
		s.Equal(tt.expected, rec.Code, tt.orderID)
		s.JSONEq(`{"success":false,"message":"`+tt.message+`"}`, rec.Body.String(), tt.orderID)
	}
}

func (s *ControllerSuite) TestRedirectPages() {
	var tests = []struct {
		target   string
		contains []string
	}{
		{
			target:   "/api/v1/midtrans/finish?order_id=RSV-1&status_code=200",
			contains: []string{"Pembayaran Berhasil", "quadraplay://payment/finish?order_id=RSV-1&amp;status=settlement"},
		},
		{
			target:   "/api/v1/midtrans/unfinish?order_id=RSV-1",
			contains: []string{"Menunggu Pembayaran", "quadraplay://payment/unfinish?order_id=RSV-1&amp;status=pending"},
		},
		{
			target:   "/api/v1/midtrans/error?order_id=RSV-1&transaction_status=deny",
			contains: []string{"Pembayaran Gagal", "quadraplay://payment/error?order_id=RSV-1&amp;status=deny"},
		},
		{
			target:   "/api/v1/midtrans/error",
			contains: []string{"quadraplay://payment/error?order_id=&amp;status=error"},
		},
	}

	for _, tt := range tests {
		rec := s.do(http.MethodGet, tt.target, "")
		s.Equal(http.StatusOK, rec.Code, tt.target)
		s.Contains(rec.Header().Get(echo.HeaderContentType), "text/html", tt.target)
		for _, want := range tt.contains {
			s.Contains(rec.Body.String(), want, tt.target)
		}
	}
}

func (s *ControllerSuite) TestSendNotification() {
	s.notification.On("Send", mock.Anything, mock.MatchedBy(func(req dto.SendNotificationRequest) bool {
		return req.Email == "a@b.com" && req.ReservasiID == "42" && req.TotalHarga == "450000"
	})).Return("Email berhasil dikirim", nil)

	rec := s.do(http.MethodPost, "/api/v1/notifications", `{"email":"a@b.com","type":"reservation_confirmed","reservasi_id":42,"total_harga":"450000"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"message":"Email berhasil dikirim"}`, rec.Body.String())
}

func (s *ControllerSuite) TestSendNotification_Errors() {
	s.notification.On("Send", mock.Anything, mock.MatchedBy(func(req dto.SendNotificationRequest) bool {
		return req.Type == "payment_reminder"
	})).Return("", errs.New(errs.ErrNotImplemented, "Payment reminder not implemented yet"))
	s.notification.On("Send", mock.Anything, mock.MatchedBy(func(req dto.SendNotificationRequest) bool {
		return req.Type == "reservation_confirmed"
	})).Return("", errs.New(errs.ErrMailDelivery, "mail() function failed"))

	rec := s.do(http.MethodPost, "/api/v1/notifications", `{"email":"a@b.com","type":"payment_reminder"}`)
	s.Equal(http.StatusNotImplemented, rec.Code)
	s.JSONEq(`{"success":false,"message":"Payment reminder not implemented yet"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/notifications", `{"email":"a@b.com","type":"reservation_confirmed"}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"success":false,"message":"mail() function failed"}`, rec.Body.String())
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}
