package controller

import (
	"errors"

	"notulensi_backend/internals/features/rapat/meetings/dto"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	helper "notulensi_backend/internals/helpers"
	"notulensi_backend/internals/helpers/signature"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const previewMaxWidth = 320

type AttendanceController struct {
	Repo     *repository.Repository
	Validate *validator.Validate
}

func NewAttendanceController(repo *repository.Repository, v *validator.Validate) *AttendanceController {
	if v == nil {
		v = NewValidator()
	}
	return &AttendanceController{Repo: repo, Validate: v}
}

// POST /api/public/meetings/:id/attendance
func (ctl *AttendanceController) Submit(c *fiber.Ctx) error {
	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// pesan sama persis dengan yang ditampilkan form
	if req.Name == "" || req.IDNumber == "" {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, msgNameRequired)
	}

	// kanvas kosong / bukan gambar ditolak sebelum menyentuh sheet
	norm, err := signature.Normalize(req.Signature)
	switch {
	case errors.Is(err, signature.ErrEmpty):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, msgSignatureEmpty)
	case err != nil:
		return helper.JsonValidationError(c, map[string][]string{"signature": {"Format tanda tangan tidak valid"}})
	}
	req.Signature = norm

	a, err := ctl.Repo.RecordAttendance(c.UserContext(), req.ToInput(c.Params("id")))
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonCreated(c, "Absensi berhasil disimpan. Terima kasih!", dto.FromAttendanceModel(a))
}

// GET /api/a/meetings/:id/attendance
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	m, err := ctl.Repo.FindMeeting(ctx, c.Params("id"))
	if err != nil {
		return WriteRepoError(c, err)
	}
	list, err := ctl.Repo.ListAttendance(ctx, m.MeetingID)
	if err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromAttendanceModels(list))
}

// DELETE /api/a/meetings/:id/attendance/:id_number
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	if err := ctl.Repo.DeleteAttendance(c.UserContext(), c.Params("id"), c.Params("id_number")); err != nil {
		return WriteRepoError(c, err)
	}
	return helper.JsonDeleted(c, "Absensi berhasil dihapus", fiber.Map{
		"meeting_id": c.Params("id"),
		"id_number":  c.Params("id_number"),
	})
}

// GET /api/a/meetings/:id/attendance/:id_number/signature → image/webp
func (ctl *AttendanceController) SignaturePreview(c *fiber.Ctx) error {
	a, err := ctl.Repo.FindAttendance(c.UserContext(), c.Params("id"), c.Params("id_number"))
	if err != nil {
		return WriteRepoError(c, err)
	}
	img, err := signature.PreviewWebP(a.Signature, previewMaxWidth, 80)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tanda tangan tidak tersedia")
	}
	c.Set(fiber.HeaderContentType, "image/webp")
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(img)
}
