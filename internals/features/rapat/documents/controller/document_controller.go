// file: internals/features/rapat/documents/controller/document_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"notulensi_backend/internals/features/rapat/documents/service"
	meetingCtl "notulensi_backend/internals/features/rapat/meetings/controller"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	helper "notulensi_backend/internals/helpers"
	"notulensi_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archiver menyimpan PDF notulensi ke object storage (OSS).
type Archiver interface {
	ArchivePDF(ctx context.Context, meetingID, filename string, data []byte) (string, error)
}

type DocumentController struct {
	Repo     *repository.Repository
	Archiver Archiver // nil = arsip dimatikan
	AppURL   string
}

func NewDocumentController(repo *repository.Repository, archiver Archiver, appURL string) *DocumentController {
	return &DocumentController{Repo: repo, Archiver: archiver, AppURL: appURL}
}

type MinutesRequest struct {
	Notes   string `json:"notes"`
	Archive bool   `json:"archive"`
}

// GET /api/a/meetings/:id/qr → image/png
func (ctl *DocumentController) QR(c *fiber.Ctx) error {
	m, err := ctl.Repo.FindMeeting(c.UserContext(), c.Params("id"))
	if err != nil {
		return meetingCtl.WriteRepoError(c, err)
	}
	link := service.AttendanceLink(meetingCtl.AttendanceBaseURL(c, ctl.AppURL), m.MeetingID)
	png, err := service.QRCodePNG(link)
	if err != nil {
		log.Printf("[QR] %s: %v", m.MeetingID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat QR code")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="qr_%s.png"`, m.MeetingID))
	c.Set("X-Attendance-Link", link)
	return c.Send(png)
}

// GET /api/a/meetings/:id/export → xlsx daftar hadir
func (ctl *DocumentController) Export(c *fiber.Ctx) error {
	ctx := c.UserContext()
	m, err := ctl.Repo.FindMeeting(ctx, c.Params("id"))
	if err != nil {
		return meetingCtl.WriteRepoError(c, err)
	}
	rows, err := ctl.Repo.ListAttendance(ctx, m.MeetingID)
	if err != nil {
		return meetingCtl.WriteRepoError(c, err)
	}
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Belum ada data absensi.")
	}

	b, err := service.BuildAttendanceWorkbook(m.MeetingID, rows)
	if err != nil {
		log.Printf("[EXCEL] %s: %v", m.MeetingID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(service.ExportFileName(m.MeetingID))
	return c.Send(b)
}

// POST /api/a/meetings/:id/minutes  body: {"notes": "...", "archive": false}
func (ctl *DocumentController) Minutes(c *fiber.Ctx) error {
	var req MinutesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Notes = strings.TrimSpace(req.Notes)
	if req.Notes == "" {
		return helper.JsonValidationError(c, map[string][]string{"notes": {"Isi notulensi wajib diisi"}})
	}

	ctx := c.UserContext()
	m, err := ctl.Repo.FindMeeting(ctx, c.Params("id"))
	if err != nil {
		return meetingCtl.WriteRepoError(c, err)
	}
	rows, err := ctl.Repo.ListAttendance(ctx, m.MeetingID)
	if err != nil {
		return meetingCtl.WriteRepoError(c, err)
	}

	pdf, err := service.BuildMinutesPDF(m, rows, req.Notes)
	if err != nil {
		log.Printf("[PDF] %s: %v", m.MeetingID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat PDF notulensi")
	}
	filename := service.MinutesFileName(dbtime.NowWIB())

	if req.Archive {
		if ctl.Archiver == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Arsip OSS belum dikonfigurasi")
		}
		url, err := ctl.Archiver.ArchivePDF(ctx, m.MeetingID, filename, pdf)
		if err != nil {
			log.Printf("[OSS] arsip %s gagal: %v", m.MeetingID, err)
			if errors.Is(err, context.DeadlineExceeded) {
				return helper.JsonError(c, fiber.StatusGatewayTimeout, "Upload arsip timeout")
			}
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah arsip notulensi")
		}
		return helper.JsonCreated(c, "Notulensi berhasil diarsipkan", fiber.Map{
			"meeting_id":   m.MeetingID,
			"file_name":    filename,
			"url":          url,
			"participants": len(rows),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
