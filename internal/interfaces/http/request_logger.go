package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

// HeaderCorrelationID se propaga o se genera por petición.
const HeaderCorrelationID = "X-Correlation-ID"

// LocalCorrelationID key en c.Locals.
const LocalCorrelationID = "correlation_id"

// RequestLogging registra cada petición con duración, estado y correlation id.
// Va antes del router: el usuario solo se conoce después de AuthMiddleware, así que se lee al final.
func RequestLogging(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		correlationID := c.Get(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Locals(LocalCorrelationID, correlationID)
		c.Set(HeaderCorrelationID, correlationID)

		chainErr := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(chainErr, &fe) {
			status = fe.Code
		} else if chainErr != nil {
			status = fiber.StatusInternalServerError
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(chainErr)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("bytes", len(c.Response().Body())).
			Str("ip", c.IP()).
			Str("correlation_id", correlationID).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return chainErr
	}
}
