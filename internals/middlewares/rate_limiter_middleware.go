package middlewares

import (
	"time"

	helper "notulensi_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Default per menit. Satu ruang guru biasanya absen bersamaan dari satu NAT wifi
// sekolah, jadi kuota per IP harus cukup untuk seluruh staf (±4 request per guru).
const (
	DefaultGlobalPerMinute     = 600
	DefaultAttendancePerMinute = 200
)

// Global limiter: untuk semua endpoint biasa. perMinute <= 0 pakai default.
func GlobalRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = DefaultGlobalPerMinute
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
		},
	})
}

// Rate limiter untuk submit absensi (form publik), per IP + rapat.
// perMinute <= 0 pakai default.
func AttendanceRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = DefaultAttendancePerMinute
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Params("id")
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Terlalu banyak percobaan absensi. Coba beberapa saat lagi.")
		},
	})
}

// Rate limiter untuk generate dokumen (PDF/Excel berat di CPU & kuota Sheets)
func DocumentRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Terlalu banyak permintaan dokumen. Tunggu sebentar ya.")
		},
	})
}
