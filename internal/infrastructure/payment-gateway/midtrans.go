package paymentgateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/alimikegami/quadraplay/payment-service/pkg/httpclient"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	sandboxSnapURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	sandboxAPIURL     = "https://api.sandbox.midtrans.com"
	productionSnapURL = "https://app.midtrans.com/snap/v1/transactions"
	productionAPIURL  = "https://api.midtrans.com"
)

// upstreamError marks 5xx answers so the breaker counts them as failures; the body is still
// handed back to the caller.
type upstreamError struct {
	statusCode int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.statusCode)
}

type MidtransClient struct {
	env        midtrans.EnvironmentType
	serverKey  string
	snapURL    string
	apiURL     string
	httpClient *httpclient.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
}

func CreateMidtransClient(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) *MidtransClient {
	env := midtrans.Sandbox
	if config.MidtransConfig.IsProduction {
		env = midtrans.Production
	}

	snapURL, apiURL := endpoints(env)
	if config.MidtransConfig.SnapURL != "" {
		snapURL = config.MidtransConfig.SnapURL
	}
	if config.MidtransConfig.APIURL != "" {
		apiURL = config.MidtransConfig.APIURL
	}

	return &MidtransClient{
		env:        env,
		serverKey:  config.MidtransConfig.ServerKey,
		snapURL:    snapURL,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpclient.CreateClient(config.MidtransConfig.Timeout),
		cb:         cb,
	}
}

func endpoints(env midtrans.EnvironmentType) (snapURL, apiURL string) {
	if env == midtrans.Production {
		return productionSnapURL, productionAPIURL
	}
	return sandboxSnapURL, sandboxAPIURL
}

func (c *MidtransClient) headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(c.serverKey+":")),
	}
}

// call runs req through the circuit breaker. Transport failures and an open breaker come back
// as errs.ErrConnection; any HTTP answer is returned with its status code.
func (c *MidtransClient) call(ctx context.Context, req httpclient.HttpRequest) (int, []byte, error) {
	var statusCode int
	body, err := c.cb.Execute(func() ([]byte, error) {
		code, body, err := c.httpClient.SendRequest(ctx, req)
		statusCode = code
		if err != nil {
			return nil, err
		}
		if code >= http.StatusInternalServerError {
			return body, &upstreamError{statusCode: code}
		}
		return body, nil
	})

	var upErr *upstreamError
	if err != nil && !errors.As(err, &upErr) {
		log.Ctx(ctx).Error().Err(err).Str("component", "MidtransClient").Str("url", req.URL).Msg("")
		return 0, nil, errs.New(errs.ErrConnection, "Connection error: %s", err.Error())
	}

	return statusCode, body, nil
}

func (c *MidtransClient) CreateSnapTransaction(ctx context.Context, req dto.SnapRequest) (dto.SnapResponse, error) {
	var resp dto.SnapResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("error marshalling snap request: %w", err)
	}

	log.Ctx(ctx).Info().Str("component", "CreateSnapTransaction").RawJSON("payload", payload).Msg("snap payload")

	statusCode, body, err := c.call(ctx, httpclient.HttpRequest{
		URL:     c.snapURL,
		Method:  http.MethodPost,
		Body:    payload,
		Headers: c.headers(),
	})
	if err != nil {
		return resp, err
	}

	log.Ctx(ctx).Info().Str("component", "CreateSnapTransaction").Int("http_code", statusCode).Bytes("response", body).Msg("midtrans response")

	var details interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "CreateSnapTransaction").Msg("")
		}
		json.Unmarshal(body, &details)
	}

	if statusCode >= 200 && statusCode < 300 && resp.Token != "" {
		return resp, nil
	}

	message := errs.ErrGateway.Error()
	switch {
	case len(resp.ErrorMessages) > 0 && resp.ErrorMessages[0] != "":
		message = resp.ErrorMessages[0]
	case resp.Message != "":
		message = resp.Message
	}

	status := http.StatusBadRequest
	if statusCode >= http.StatusBadRequest {
		status = statusCode
	}

	return resp, &errs.Error{Kind: errs.ErrGateway, Message: message, Status: status, Details: details}
}

// GetTransactionStatus polls the Core API status endpoint. Any gateway answer without a
// transaction status is reported as errs.ErrTransactionNotFound.
func (c *MidtransClient) GetTransactionStatus(ctx context.Context, orderID string) (dto.MidtransStatusResponse, error) {
	var (
		resp   dto.MidtransStatusResponse
		status *coreapi.TransactionStatusResponse
		apiErr *midtrans.Error
	)

	_, err := c.cb.Execute(func() ([]byte, error) {
		status, apiErr = c.coreAPI(ctx).CheckTransaction(url.PathEscape(orderID))
		switch {
		case apiErr == nil:
			return nil, nil
		case apiErr.RawApiResponse == nil:
			return nil, apiErr
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return nil, &upstreamError{statusCode: apiErr.StatusCode}
		}
		return nil, nil
	})

	var upErr *upstreamError
	if err != nil && !errors.As(err, &upErr) {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTransactionStatus").Str("order_id", orderID).Msg("")
		return resp, errs.New(errs.ErrConnection, "Connection error: %s", err.Error())
	}

	statusCode := http.StatusOK
	if apiErr != nil {
		statusCode = apiErr.StatusCode
		if len(apiErr.RawApiResponse.RawBody) > 0 {
			if err := json.Unmarshal(apiErr.RawApiResponse.RawBody, &resp); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "GetTransactionStatus").Msg("")
			}
		}
	} else {
		resp = statusFromCoreAPI(status)
	}

	log.Ctx(ctx).Info().Str("component", "GetTransactionStatus").Str("order_id", orderID).Int("http_code", statusCode).Str("transaction_status", resp.TransactionStatus).Msg("midtrans response")

	if apiErr == nil && resp.TransactionStatus != "" {
		return resp, nil
	}

	message := errs.ErrTransactionNotFound.Error()
	switch {
	case resp.StatusMessage != nil && *resp.StatusMessage != "":
		message = *resp.StatusMessage
	case resp.Message != nil && *resp.Message != "":
		message = *resp.Message
	}

	notFoundStatus := http.StatusBadRequest
	if statusCode >= http.StatusBadRequest || (resp.StatusCode != nil && *resp.StatusCode == "404") {
		notFoundStatus = http.StatusNotFound
	}

	var details interface{}
	if resp.StatusCode != nil {
		details = map[string]string{"status_code": *resp.StatusCode}
	}

	return resp, &errs.Error{Kind: errs.ErrTransactionNotFound, Message: message, Status: notFoundStatus, Details: details}
}
