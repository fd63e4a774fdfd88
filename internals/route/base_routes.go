package routes

import (
	"time"

	"notulensi_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
)

// StoreStatusFunc mengembalikan driver penyimpanan + error koneksi (nil = siap).
type StoreStatusFunc func() (driver string, err error)

func BaseRoutes(app *fiber.App, status StoreStatusFunc) {
	app.Get("/health", func(c *fiber.Ctx) error {
		driver, err := status()
		storeStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		resp := fiber.Map{
			"driver": driver,
		}
		if err != nil {
			storeStatus = "Store connection error"
			serverStatus = "DEGRADED"
			httpStatus = fiber.StatusServiceUnavailable
			resp["error"] = err.Error()
		}

		resp["status"] = serverStatus
		resp["store"] = storeStatus
		resp["server_time"] = dbtime.NowWIB().Format(time.RFC3339)
		resp["uptime_seconds"] = int(time.Since(startTime).Seconds())
		return c.Status(httpStatus).JSON(resp)
	})
}
