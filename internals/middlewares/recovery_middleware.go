package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true, // Stack trace akan dicetak saat error
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[PANIC] id=%v %s %s: %v\n%s", c.Locals("reqid"), c.Method(), c.Path(), e, debug.Stack())
		},
	})
}

