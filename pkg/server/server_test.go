//go:build unit

package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-api/pkg/config"
)

func TestServer(t *testing.T) {
	t.Run("should create server instance and return server instance", func(t *testing.T) {
		cfg := &config.Config{
			ServerPort: "8080",
		}

		var handlers []Handler
		testServer := NewServer(cfg, handlers)

		assert.IsType(t, &server{}, testServer)
	})

	t.Run("should server start and stop", func(t *testing.T) {
		cfg := &config.Config{
			ServerPort: "8080",
		}

		var handlers []Handler
		testServer := NewServer(cfg, handlers)

		go func() {
			err := testServer.Start()
			assert.NoError(t, err)
		}()

		err := testServer.Shutdown()
		assert.NoError(t, err)
	})

	t.Run("should expose health endpoint", func(t *testing.T) {
		cfg := &config.Config{
			ServerPort: "8080",
		}

		testServer := NewServer(cfg, nil)
		app := testServer.GetFiberInstance()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("should register handler routes", func(t *testing.T) {
		cfg := &config.Config{
			ServerPort: "8080",
		}

		testServer := NewServer(cfg, []Handler{&fakeHandler{}})
		testServer.RegisterRoutes()
		app := testServer.GetFiberInstance()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fake", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

type fakeHandler struct{}

func (h *fakeHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/fake", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
}
