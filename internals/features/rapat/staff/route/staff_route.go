package route

import (
	"github.com/gofiber/fiber/v2"

	staffCtl "notulensi_backend/internals/features/rapat/staff/controller"
	"notulensi_backend/internals/features/rapat/staff/model"
)

// StaffPublicRoutes: /api/public/staff (autofill NIP di form absensi)
func StaffPublicRoutes(public fiber.Router, d *model.Directory) {
	ctl := staffCtl.NewStaffController(d)
	public.Get("/staff", ctl.List)
}
