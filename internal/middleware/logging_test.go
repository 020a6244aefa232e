package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger_IncludesContextValues(t *testing.T) {
	var buf bytes.Buffer
	ConfigureLogger("production", &buf)
	t.Cleanup(func() { ConfigureLogger("test", &bytes.Buffer{}) })

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		c.SetUserContext(WithUserID(c.UserContext(), 42))
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := buf.String()
	assert.Contains(t, out, `"msg":"request processed"`)
	assert.Contains(t, out, `"request_id":"`)
	assert.Contains(t, out, `"user_id":42`)
	assert.Contains(t, out, `"path":"/ping"`)
}

func TestConfigureLogger_TextOutsideProduction(t *testing.T) {
	var buf bytes.Buffer
	ConfigureLogger("development", &buf)
	t.Cleanup(func() { ConfigureLogger("test", &bytes.Buffer{}) })

	Logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}
