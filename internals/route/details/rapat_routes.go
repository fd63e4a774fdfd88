package details

import (
	"notulensi_backend/internals/configs"
	docRoutes "notulensi_backend/internals/features/rapat/documents/route"
	meetingRoutes "notulensi_backend/internals/features/rapat/meetings/route"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	pageRoutes "notulensi_backend/internals/features/rapat/pages/route"
	staffModel "notulensi_backend/internals/features/rapat/staff/model"
	staffRoutes "notulensi_backend/internals/features/rapat/staff/route"
	"notulensi_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RapatPageRoutes: halaman HTML (admin + form absensi)
func RapatPageRoutes(app *fiber.App) {
	pageRoutes.PageRoutes(app)
}

// RapatPublicRoutes: dipakai form absensi (tanpa login)
func RapatPublicRoutes(public fiber.Router, repo *repository.Repository, staff *staffModel.Directory) {
	meetingRoutes.MeetingPublicRoutes(public, repo, middlewares.AttendanceRateLimiter(configs.RateAttendancePerMinute))
	staffRoutes.StaffPublicRoutes(public, staff)
}

// RapatAdminRoutes: kelola rapat, daftar hadir, dokumen
func RapatAdminRoutes(admin fiber.Router, repo *repository.Repository, appURL string) {
	meetingRoutes.MeetingAdminRoutes(admin, repo, appURL)

	docRoutes.DocumentRoutes(admin, repo, appURL, middlewares.DocumentRateLimiter())
}
