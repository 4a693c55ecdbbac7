package middleware

import (
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// JWTAuth requires an HS256 bearer token signed with secret. The parsed token is stored under
// "user" in the echo context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echomiddleware.JWTWithConfig(echomiddleware.JWTConfig{
		SigningKey: []byte(secret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "JWTAuth").Msg("rejected token")
			return response.WriteErrorResponse(c, errs.ErrUnauthorized)
		},
	})
}
