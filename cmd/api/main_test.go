package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sin docs/swagger.json el servidor debe arrancar igual: el middleware no se
// registra y el resto de rutas sigue sirviendo.
func TestSetupSwagger_ArchivoAusente(t *testing.T) {
	app := fiber.New()

	registered := setupSwagger(app, filepath.Join(t.TempDir(), "swagger.json"), "test")
	assert.False(t, registered)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Con el archivo presente el middleware se registra normalmente.
func TestSetupSwagger_ArchivoPresente(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"test","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o600))

	app := fiber.New()
	assert.True(t, setupSwagger(app, specPath, "test"))
}
