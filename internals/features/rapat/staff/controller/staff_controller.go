package controller

import (
	"notulensi_backend/internals/features/rapat/staff/model"
	helper "notulensi_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type StaffController struct {
	Directory *model.Directory
}

func NewStaffController(d *model.Directory) *StaffController {
	return &StaffController{Directory: d}
}

// GET /api/public/staff
// GET /api/public/staff?nip=... → satu guru (autofill form)
func (ctl *StaffController) List(c *fiber.Ctx) error {
	if nip := c.Query("nip"); nip != "" {
		s, ok := ctl.Directory.ByNIP(nip)
		if !ok {
			return helper.JsonError(c, fiber.StatusNotFound, "NIP tidak terdaftar")
		}
		return helper.JsonOK(c, "ok", s)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return helper.JsonList(c, "ok", ctl.Directory.All())
}
