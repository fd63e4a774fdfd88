// file: internals/features/rapat/meetings/controller/meeting_controller.go
package controller

import (
	"encoding/base64"
	"log"
	"strings"

	docService "notulensi_backend/internals/features/rapat/documents/service"
	"notulensi_backend/internals/features/rapat/meetings/dto"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	helper "notulensi_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type MeetingController struct {
	Repo     *repository.Repository
	Validate *validator.Validate
	AppURL   string
}

func NewMeetingController(repo *repository.Repository, v *validator.Validate, appURL string) *MeetingController {
	if v == nil {
		v = NewValidator()
	}
	return &MeetingController{Repo: repo, Validate: v, AppURL: appURL}
}

// POST /api/a/meetings
func (ctl *MeetingController) Create(c *fiber.Ctx) error {
	var req dto.CreateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Repo.CreateMeeting(c.UserContext(), req.ToInput())
	if err != nil {
		return WriteRepoError(c, err)
	}

	link := docService.AttendanceLink(AttendanceBaseURL(c, ctl.AppURL), m.MeetingID)
	resp := dto.CreateMeetingResponse{
		Meeting:        dto.FromMeetingModel(m),
		AttendanceLink: link,
	}
	// rapat sudah tersimpan; QR gagal cukup dicatat, bisa diambil ulang via /qr
	if png, err := docService.QRCodePNG(link); err != nil {
		log.Printf("[QR] %s: %v", m.MeetingID, err)
	} else {
		resp.QRPNGBase64 = base64.StdEncoding.EncodeToString(png)
	}
	return helper.JsonCreated(c, "Rapat berhasil dibuat", resp)
}

// GET /api/a/meetings
func (ctl *MeetingController) List(c *fiber.Ctx) error {
	list, err := ctl.Repo.ListMeetings(c.UserContext())
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromMeetingModels(list))
}

// GET /api/a/meetings/:id
func (ctl *MeetingController) Get(c *fiber.Ctx) error {
	m, err := ctl.Repo.FindMeeting(c.UserContext(), c.Params("id"))
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromMeetingModel(m))
}

// PUT /api/a/meetings/:id
func (ctl *MeetingController) Update(c *fiber.Ctx) error {
	var req dto.UpdateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Repo.UpdateMeeting(c.UserContext(), c.Params("id"), req.ToUpdate())
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonUpdated(c, "Rapat berhasil diupdate", dto.FromMeetingModel(m))
}

// DELETE /api/a/meetings/:id  body: {"confirm_meeting_id": "..."}
func (ctl *MeetingController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var req dto.DeleteMeetingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
		}
	}
	if strings.TrimSpace(req.ConfirmMeetingID) != id {
		return helper.JsonValidationError(c, map[string][]string{
			"confirm_meeting_id": {"Konfirmasi tidak cocok!"},
		})
	}

	removed, err := ctl.Repo.DeleteMeeting(c.UserContext(), id)
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonDeleted(c, "Rapat berhasil dihapus", dto.DeleteMeetingResponse{
		MeetingID:         id,
		AttendanceRemoved: removed,
	})
}

// GET /api/a/meetings/debug/raw?values=true
func (ctl *MeetingController) Raw(c *fiber.Ctx) error {
	raw, resolved, err := ctl.Repo.RawMeetings(c.UserContext())
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewRawMeetingsResponse(raw, resolved, c.QueryBool("values", false)))
}

// GET /api/public/meetings/:id (ringkasan untuk form absensi)
func (ctl *MeetingController) PublicGet(c *fiber.Ctx) error {
	m, err := ctl.Repo.FindMeeting(c.UserContext(), c.Params("id"))
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromMeetingPublic(m))
}
