package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/alimikegami/quadraplay/payment-service/pkg/utils"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Pre(CORS)
	e.Use(Logger)
	return e
}

func TestCORS_Preflight(t *testing.T) {
	e := newEcho()
	e.POST("/api/v1/midtrans/notifications", func(c echo.Context) error {
		return c.NoContent(http.StatusTeapot)
	})

	for _, path := range []string{"/api/v1/midtrans/notifications", "/api/v1/unknown"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		require.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), "POST")
		require.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), "Authorization")
	}
}

func TestCORS_HeadersOnRegularResponses(t *testing.T) {
	e := newEcho()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestLogger_RequestID(t *testing.T) {
	e := newEcho()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestLogger_RendersHandlerErrors(t *testing.T) {
	e := newEcho()
	e.GET("/boom", func(c echo.Context) error {
		return echo.ErrMethodNotAllowed
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, rec.Body.String())
}

func TestJWTAuth(t *testing.T) {
	const secret = "notification-secret"

	valid := signToken(t, jwt.SigningMethodHS256, "admin-backend", secret, time.Hour)
	expired := signToken(t, jwt.SigningMethodHS256, "admin-backend", secret, -time.Hour)
	wrongKey := signToken(t, jwt.SigningMethodHS256, "admin-backend", "other", time.Hour)
	wrongMethod := signToken(t, jwt.SigningMethodHS512, "admin-backend", secret, time.Hour)

	var tests = []struct {
		name     string
		header   string
		expected int
	}{
		{name: "valid token", header: "Bearer " + valid, expected: http.StatusOK},
		{name: "missing header", header: "", expected: http.StatusUnauthorized},
		{name: "not a bearer token", header: valid, expected: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, expected: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, expected: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", expected: http.StatusUnauthorized},
		{name: "unexpected signing method", header: "Bearer " + wrongMethod, expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.POST("/notifications", func(c echo.Context) error {
				require.Equal(t, "admin-backend", utils.ExtractTokenSubject(c))
				return c.NoContent(http.StatusOK)
			}, JWTAuth(secret))

			req := httptest.NewRequest(http.MethodPost, "/notifications", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.expected, rec.Code)
			if tt.expected == http.StatusUnauthorized {
				require.JSONEq(t, `{"success":false,"message":"Unauthorized access"}`, rec.Body.String())
			}
		})
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, subject, secret string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["sub"] = subject
	claims["exp"] = time.Now().Add(ttl).Unix()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
