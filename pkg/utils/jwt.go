package utils

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ExtractTokenSubject returns the "sub" claim of the token stored by the JWT middleware, or an
// empty string when the request carries none.
func ExtractTokenSubject(c echo.Context) string {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return ""
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	subject, _ := claims["sub"].(string)
	return subject
}
