package controller

import (
	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
	"github.com/alimikegami/quadraplay/payment-service/internal/service"
	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/alimikegami/quadraplay/payment-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type NotificationController struct {
	service service.NotificationService
}

// CreateNotificationController registers the send-notification route. Every middleware in guards
// runs before the handler.
func CreateNotificationController(e *echo.Group, service service.NotificationService, guards ...echo.MiddlewareFunc) {
	c := NotificationController{
		service: service,
	}

	e.POST("/notifications", c.SendNotification, guards...)
}

func (c *NotificationController) SendNotification(e echo.Context) error {
	payload := dto.SendNotificationRequest{}
	if err := bindJSON(e, &payload); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	if subject := utils.ExtractTokenSubject(e); subject != "" {
		log.Ctx(e.Request().Context()).Info().Str("component", "SendNotification").Str("requested_by", subject).Str("type", payload.Type).Msg("")
	}

	message, err := c.service.Send(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, message, nil)
}
