package controller

import (
	"net/http"

	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/service"
	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type PaymentController struct {
	service service.PaymentService
}

func CreatePaymentController(e *echo.Group, service service.PaymentService) {
	c := PaymentController{
		service: service,
	}

	e.POST("/midtrans/transactions", c.CreateTransaction)
	e.GET("/midtrans/transactions/status", c.CheckStatus)
	e.POST("/midtrans/transactions/status", c.CheckStatus)
	e.POST("/midtrans/notifications", c.HandleNotification)
}

func (c *PaymentController) CreateTransaction(e echo.Context) error {
	payload := dto.CreateTransactionRequest{}
	if err := bindJSON(e, &payload); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	resp, err := c.service.CreateTransaction(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return e.JSON(http.StatusOK, resp)
}

// CheckStatus reads order_id from the query string, falling back to the JSON body on POST.
func (c *PaymentController) CheckStatus(e echo.Context) error {
	orderID := e.QueryParam("order_id")
	if orderID == "" && e.Request().Method == http.MethodPost {
		payload := dto.TransactionStatusRequest{}
		if err := bindJSON(e, &payload); err == nil {
			orderID = payload.OrderID
		}
	}

	data, err := c.service.CheckStatus(e.Request().Context(), orderID)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *PaymentController) HandleNotification(e echo.Context) error {
	payload := dto.PaymentNotification{}
	if err := bindJSON(e, &payload); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	if err := c.service.HandleNotification(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Notification processed", nil)
}
