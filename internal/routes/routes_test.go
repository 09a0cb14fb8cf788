package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradedesk/internal/config"
	"tradedesk/internal/services/fee"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBalances struct {
	updates int
}

func (s *stubBalances) UpdateBalance(context.Context, string, decimal.Decimal) error {
	s.updates++
	return nil
}

func (s *stubBalances) GetBalance(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("boom")
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func setupTestApp(t *testing.T, server config.ServerConfig) (*fiber.App, *stubBalances) {
	t.Helper()
	balances := &stubBalances{}
	app := NewApp()
	SetupMiddleware(app, server)
	SetupRoutes(app, Dependencies{
		Server:   server,
		Fees:     fee.NewCalculator(fee.Config{}),
		Balances: balances,
		Store:    stubPinger{},
	})
	return app, balances
}

func postJSON(t *testing.T, app *fiber.App, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestRoutes_EndToEnd(t *testing.T) {
	app, balances := setupTestApp(t, config.ServerConfig{AllowOrigins: "*"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/fee?amount=1000.00", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Fee=15.00", string(body))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	status, out := postJSON(t, app, "/api/balance", `{"account":"1234567890","delta":"5.00"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "****7890", out["account"])
	assert.Equal(t, 1, balances.updates)

	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoutes_UnclassifiedErrorIsGeneric(t *testing.T) {
	app, _ := setupTestApp(t, config.ServerConfig{AllowOrigins: "*"})

	status, out := postJSON(t, app, "/api/balance/lookup", `{"account":"1234567890"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", out["code"])
	assert.NotContains(t, out["error"], "boom")
	assert.NotEmpty(t, out["request_id"])
}

func TestRoutes_NotFoundIsJSON(t *testing.T) {
	app, _ := setupTestApp(t, config.ServerConfig{AllowOrigins: "*"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ROUTE_NOT_FOUND", out["code"])
}

func TestRoutes_BalanceRateLimited(t *testing.T) {
	app, balances := setupTestApp(t, config.ServerConfig{
		AllowOrigins:   "*",
		RateLimitMax:   2,
		RateLimitEvery: time.Minute,
	})

	for i := 0; i < 2; i++ {
		status, _ := postJSON(t, app, "/api/balance", `{"account":"1234567890","delta":"1.00"}`)
		require.Equal(t, fiber.StatusOK, status)
	}

	status, out := postJSON(t, app, "/api/balance", `{"account":"1234567890","delta":"1.00"}`)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", out["code"])
	assert.Equal(t, 2, balances.updates)
}
