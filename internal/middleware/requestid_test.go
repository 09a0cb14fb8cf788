package middleware

import (
	"net/http/httptest"
	"testing"

	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(utils.RequestID(c))
	})
	return app
}

func TestRequestID_Generates(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	id := resp.Header.Get(fiber.HeaderXRequestID)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	app := newTestApp()
	want := uuid.NewString()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, want)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, want, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRequestID_ReplacesMalformedHeader(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "acct-1234567890")
	resp, err := app.Test(req)
	require.NoError(t, err)

	id := resp.Header.Get(fiber.HeaderXRequestID)
	assert.NotContains(t, id, "1234567890")
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}
