package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"akcert_backend/internals/middlewares/logger"
)

// RecoveryMiddleware turns a panic into an error for the app ErrorHandler and
// logs the stack with the request id.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			reqID, _ := c.Locals(logger.LocRequestID).(string)
			log.Error().
				Str("id", reqID).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("panic", fmt.Sprint(e)).
				Bytes("stack", debug.Stack()).
				Msg("[PANIC] recovered")
		},
	})
}
