// file: internals/features/rapat/pages/controller/page_controller.go
package controller

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	schoolName    = "SD Negeri Simoangin-Angin"
	footerText    = "© 2026 SD Negeri Simoangin-Angin | Sistem Absensi & Notulensi Rapat v2.0"
	msgInvalidURL = "Link tidak valid! Meeting ID tidak ditemukan"
)

type pageData struct {
	Title     string
	School    string
	Subtitle  string
	Footer    string
	MeetingID string
	Invalid   string
}

type PageController struct {
	tmpl *template.Template
}

func NewPageController(t *template.Template) *PageController {
	return &PageController{tmpl: t}
}

// GET /
// GET /?page=attendance&meeting_id=MTG...  (alias: page=absensi)
func (ctl *PageController) Index(c *fiber.Ctx) error {
	switch strings.ToLower(strings.TrimSpace(c.Query("page"))) {
	case "attendance", "absensi":
		return ctl.attendance(c)
	default:
		return ctl.render(c, "admin.html", pageData{
			Title:    "Admin Rapat",
			Subtitle: "Sistem Absensi & Notulensi Rapat",
		})
	}
}

func (ctl *PageController) attendance(c *fiber.Ctx) error {
	data := pageData{
		Title:     "Absensi Rapat",
		Subtitle:  "Form Absensi Rapat Guru",
		MeetingID: strings.TrimSpace(c.Query("meeting_id")),
	}
	if data.MeetingID == "" {
		data.Invalid = msgInvalidURL
	}
	return ctl.render(c, "attendance.html", data)
}

func (ctl *PageController) render(c *fiber.Ctx, name string, data pageData) error {
	data.School = schoolName
	data.Footer = footerText

	var buf bytes.Buffer
	if err := ctl.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[PAGE] render %s: %v", name, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat halaman")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}
