package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/orca-works/orca-crm/internal/api/http/handlers"
	"github.com/orca-works/orca-crm/internal/auth"
	"github.com/orca-works/orca-crm/internal/config"
	"github.com/orca-works/orca-crm/internal/observability"
	"github.com/orca-works/orca-crm/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	authService := service.NewAuthService(config.AuthConfig{
		OperatorUsername:      "admin",
		OperatorPasswordHash:  hash,
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("orca-crm", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService, false),
		Customers:      handlers.NewCustomersHandler(nil),
		Tickets:        handlers.NewTicketsHandler(nil),
		Tasks:          handlers.NewTasksHandler(nil),
		Devices:        handlers.NewDevicesHandler(nil),
		Worklogs:       handlers.NewWorklogsHandler(nil),
		Types:          handlers.NewTypesHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, mutate func(*http.Request)) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestLoginMissingFields(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteAcceptsBearerToken(t *testing.T) {
	app := newTestApp(t)

	login := doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, login.StatusCode)
	loginBody := decodeBody(t, login)
	token := loginBody["data"].(map[string]any)["token"].(string)

	resp := doJSON(t, app, fiber.MethodGet, "/auth/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", data["username"])
}

func TestHealthLiveIsPublic(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alive", body["status"])
}

func TestHealthReadyReportsUnconfiguredDependencies(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health/ready", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errObj["code"])

	details, ok := errObj["details"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, details["postgres"])
	assert.NotEmpty(t, details["redis"])
}
