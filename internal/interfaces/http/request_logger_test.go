package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{"ok", "/ok", fiber.StatusOK, "info"},
		{"cliente", "/bad", fiber.StatusBadRequest, "warn"},
		{"servidor", "/boom", fiber.StatusInternalServerError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := fiber.New()
			app.Use(RequestLogger(logger.New(logger.Config{Level: "info", Out: &buf})))
			app.Get(tt.path, func(c *fiber.Ctx) error {
				c.Locals(LocalCompanyID, "co-1")
				return c.SendStatus(tt.status)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, "co-1", entry["company_id"])
			assert.EqualValues(t, tt.status, entry["status"])
		})
	}
}
