// file: internals/features/rapat/meetings/route/meeting_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	meetingCtl "notulensi_backend/internals/features/rapat/meetings/controller"
	"notulensi_backend/internals/features/rapat/meetings/repository"
)

// MeetingAdminRoutes: kelola rapat & daftar hadir.
// Contoh mount dari caller:
//
//	admin := app.Group("/api/a")
//	route.MeetingAdminRoutes(admin, repo, configs.AppURL)
func MeetingAdminRoutes(admin fiber.Router, repo *repository.Repository, appURL string) {
	v := meetingCtl.NewValidator()
	mc := meetingCtl.NewMeetingController(repo, v, appURL)
	ac := meetingCtl.NewAttendanceController(repo, v)

	g := admin.Group("/meetings")

	// debug harus sebelum /:id
	g.Get("/debug/raw", mc.Raw)

	g.Post("/", mc.Create)
	g.Get("/", mc.List)
	g.Get("/:id", mc.Get)
	g.Put("/:id", mc.Update)
	g.Delete("/:id", mc.Delete)

	g.Get("/:id/attendance", ac.List)
	g.Delete("/:id/attendance/:id_number", ac.Delete)
	g.Get("/:id/attendance/:id_number/signature", ac.SignaturePreview)
}

// MeetingPublicRoutes: dipakai form absensi (tanpa login).
// submitLimiter membatasi POST absensi per IP.
func MeetingPublicRoutes(public fiber.Router, repo *repository.Repository, submitLimiter fiber.Handler) {
	v := meetingCtl.NewValidator()
	mc := meetingCtl.NewMeetingController(repo, v, "")
	ac := meetingCtl.NewAttendanceController(repo, v)

	g := public.Group("/meetings")
	g.Get("/:id", mc.PublicGet)

	if submitLimiter != nil {
		g.Post("/:id/attendance", submitLimiter, ac.Submit)
	} else {
		g.Post("/:id/attendance", ac.Submit)
	}
}
