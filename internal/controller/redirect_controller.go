package controller

import (
	"bytes"
	"html"
	"net/http"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type RedirectController struct {
	appName string
	scheme  string
}

func CreateRedirectController(e *echo.Group, config *config.Config) {
	c := RedirectController{
		appName: config.AppConfig.Name,
		scheme:  config.AppConfig.DeepLinkScheme,
	}

	e.GET("/midtrans/finish", c.page(view.OutcomeFinish))
	e.GET("/midtrans/unfinish", c.page(view.OutcomeUnfinish))
	e.GET("/midtrans/error", c.page(view.OutcomeError))
}

// page serves the landing page the gateway redirects the browser to. It always answers 200; the
// outcome travels in the deep link.
func (c *RedirectController) page(outcome view.Outcome) echo.HandlerFunc {
	return func(e echo.Context) error {
		orderID := e.QueryParam("order_id")
		statusCode := e.QueryParam("status_code")
		status := e.QueryParam("transaction_status")
		if status == "" {
			status = view.DefaultStatus(outcome)
		}

		log.Ctx(e.Request().Context()).Info().Str("component", "PaymentRedirect").Str("outcome", string(outcome)).Str("order_id", orderID).Str("status_code", statusCode).Str("transaction_status", status).Msg("payment redirect")

		deepLink := view.DeepLink(c.scheme, outcome, orderID, status)

		var buf bytes.Buffer
		if err := view.RenderRedirectPage(&buf, c.appName, deepLink, outcome, orderID); err != nil {
			log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "PaymentRedirect").Msg("")
			return e.HTML(http.StatusOK, `<a href="`+html.EscapeString(deepLink)+`">Kembali ke Aplikasi</a>`)
		}

		return e.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}
