package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studyRecommender/business/recommendation"
	"studyRecommender/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, AuthMiddleware(testSecret))
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AuthMiddleware(testSecret), AdminOnly())
	return e
}

func doRequest(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	e := newAuthServer()

	rec := doRequest(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := utils.GenerateJWT("other-secret", "u1", "USER", time.Hour)
	require.NoError(t, err)
	rec = doRequest(e, http.MethodGet, "/me", other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := utils.GenerateJWT(testSecret, "u1", "USER", -time.Minute)
	require.NoError(t, err)
	rec = doRequest(e, http.MethodGet, "/me", expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := utils.GenerateJWT(testSecret, "u1", "USER", time.Hour)
	require.NoError(t, err)
	rec = doRequest(e, http.MethodGet, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "USER", body["role"])
}

func TestAdminOnly(t *testing.T) {
	e := newAuthServer()

	user, err := utils.GenerateJWT(testSecret, "u1", "USER", time.Hour)
	require.NoError(t, err)
	rec := doRequest(e, http.MethodGet, "/admin", user)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := utils.GenerateJWT(testSecret, "u2", "admin", time.Hour)
	require.NoError(t, err)
	rec = doRequest(e, http.MethodGet, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTraceMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(TraceMiddleware())
	e.GET("/trace", func(c echo.Context) error {
		return c.String(http.StatusOK, recommendation.TraceIDFromContext(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-7", rec.Body.String())
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := doRequest(e, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)

	rec = doRequest(e, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_SERVER_ERROR"`)
	assert.NotContains(t, rec.Body.String(), "boom")
}
