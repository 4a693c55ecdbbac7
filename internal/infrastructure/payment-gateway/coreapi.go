package paymentgateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// coreAPICaller is the midtrans.HttpClient used for a single Core API call. It binds the request
// to ctx and sends it to apiURL instead of the environment's fixed base URL.
type coreAPICaller struct {
	ctx     context.Context
	baseURL string
	apiURL  string
	client  *midtrans.HttpClientImplementation
}

func (c *coreAPICaller) Call(method string, url string, apiKey *string, options *midtrans.ConfigOptions, body io.Reader, result interface{}) *midtrans.Error {
	url = c.apiURL + strings.TrimPrefix(url, c.baseURL)

	req, err := http.NewRequestWithContext(c.ctx, method, url, body)
	if err != nil {
		return &midtrans.Error{
			Message:  fmt.Sprintf("Error Request creation failed: %s", err.Error()),
			RawError: err,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != nil {
		req.SetBasicAuth(*apiKey, "")
	}

	return c.client.DoRequest(req, result)
}

// midtransLogger routes the library's log lines into zerolog.
type midtransLogger struct {
	logger *zerolog.Logger
}

func (l midtransLogger) Error(format string, val ...interface{}) {
	l.logger.Warn().Str("component", "midtrans-go").Msgf(format, val...)
}

func (l midtransLogger) Info(format string, val ...interface{}) {
	l.logger.Debug().Str("component", "midtrans-go").Msgf(format, val...)
}

// Debug is dropped: the library prints the Authorization header at this level.
func (l midtransLogger) Debug(format string, val ...interface{}) {}

func (c *MidtransClient) coreAPI(ctx context.Context) coreapi.Client {
	return coreapi.Client{
		ServerKey: c.serverKey,
		Env:       c.env,
		HttpClient: &coreAPICaller{
			ctx:     ctx,
			baseURL: c.env.BaseUrl(),
			apiURL:  c.apiURL,
			client: &midtrans.HttpClientImplementation{
				HttpClient: c.httpClient.StdClient(),
				Logger:     midtransLogger{logger: log.Ctx(ctx)},
			},
		},
	}
}

func statusFromCoreAPI(resp *coreapi.TransactionStatusResponse) dto.MidtransStatusResponse {
	status := dto.MidtransStatusResponse{
		OrderID:           optional(resp.OrderID),
		TransactionID:     optional(resp.TransactionID),
		TransactionStatus: resp.TransactionStatus,
		StatusCode:        optional(resp.StatusCode),
		StatusMessage:     optional(resp.StatusMessage),
		PaymentType:       optional(resp.PaymentType),
		GrossAmount:       optional(resp.GrossAmount),
		FraudStatus:       optional(resp.FraudStatus),
		SettlementTime:    optional(resp.SettlementTime),
		ExpiryTime:        optional(resp.ExpiryTime),
		PaymentCode:       optional(resp.PaymentCode),
		TransactionTime:   optional(resp.TransactionTime),
	}

	for _, va := range resp.VaNumbers {
		status.VANumbers = append(status.VANumbers, dto.VANumber{Bank: va.Bank, VANumber: va.VANumber})
	}

	return status
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
