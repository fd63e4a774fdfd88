// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware membuat middleware CORS.
// origins dari env CORS_ALLOW_ORIGINS (pisah koma); "*" = semua origin tanpa credentials.
func CorsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders:    "Content-Disposition, X-Request-ID, X-Attendance-Link",
		AllowCredentials: origins != "*",
	})
}
