package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

// RequestLogger registra una línea por petición. 5xx sale como error y 4xx como warn.
// company_id solo aparece si la ruta pasó por AuthMiddleware.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		level := zerolog.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		ev := log.WithLevel(level).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if companyID, ok := c.Locals(LocalCompanyID).(string); ok {
			ev = ev.Str("company_id", companyID)
		}
		if chainErr != nil {
			ev = ev.Err(chainErr)
		}
		ev.Msg("http")
		return chainErr
	}
}
