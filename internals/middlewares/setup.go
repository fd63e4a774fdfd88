package middlewares

import (
	"notulensi_backend/internals/configs"
	"notulensi_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// SetupMiddlewares memasang middleware global (urutan penting: recover paling luar).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(configs.CORSAllowOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	app.Use(GlobalRateLimiter(configs.RateGlobalPerMinute))
}
