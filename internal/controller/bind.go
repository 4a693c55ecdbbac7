package controller

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// bindJSON decodes the request body as JSON regardless of the Content-Type header. An empty or
// malformed body, or one that is not a JSON object, yields errs.ErrInvalidJSON.
func bindJSON(c echo.Context, v interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "bindJSON").Msg("")
		return errs.ErrInvalidJSON
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return errs.ErrInvalidJSON
	}

	if err := json.Unmarshal(body, v); err != nil {
		log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "bindJSON").Msg("")
		return errs.ErrInvalidJSON
	}

	return nil
}
