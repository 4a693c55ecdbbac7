package response

import (
	"errors"
	"net/http"

	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Message = message
	resp.Data = data

	return c.JSON(http.StatusOK, resp)
}

func WriteErrorResponse(c echo.Context, err error) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Message = err.Error()
	resp.Details = errs.GetErrorDetails(err)

	// internal failures never reach the client verbatim
	if statusCode == http.StatusInternalServerError && !isClientFacing(err) {
		resp.Message = errs.ErrInternalServer.Error()
	}

	return c.JSON(statusCode, resp)
}

func isClientFacing(err error) bool {
	var e *errs.Error
	if errors.As(err, &e) {
		return true
	}
	for _, kind := range []error{errs.ErrInternalServer, errs.ErrPaymentUpdateFailed, errs.ErrPaymentCreateFailed, errs.ErrConnection, errs.ErrMailDelivery} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// HTTPErrorHandler renders errors raised by echo itself (unknown route, wrong method, recovered
// panics) with the same envelope as the handlers.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusMethodNotAllowed:
			err = errs.ErrMethodNotAllowed
		case http.StatusNotFound:
			err = errs.ErrNotFound
		case http.StatusUnauthorized:
			err = errs.ErrUnauthorized
		case http.StatusBadRequest:
			err = errs.ErrClient
		case http.StatusInternalServerError:
			err = errs.ErrInternalServer
		default:
			err = &errs.Error{Kind: errs.ErrInternalServer, Status: he.Code, Message: http.StatusText(he.Code)}
		}
	} else if errs.GetErrorStatusCode(err) == http.StatusInternalServerError {
		log.Error().Err(err).Str("component", "HTTPErrorHandler").Msg("")
	}

	if c.Request().Method == http.MethodHead {
		if werr := c.NoContent(errs.GetErrorStatusCode(err)); werr != nil {
			log.Error().Err(werr).Str("component", "HTTPErrorHandler").Msg("")
		}
		return
	}

	if werr := WriteErrorResponse(c, err); werr != nil {
		log.Error().Err(werr).Str("component", "HTTPErrorHandler").Msg("")
	}
}
