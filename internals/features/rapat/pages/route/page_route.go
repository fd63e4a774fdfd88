package route

import (
	"github.com/gofiber/fiber/v2"

	"notulensi_backend/internals/features/rapat/pages"
	pageCtl "notulensi_backend/internals/features/rapat/pages/controller"
)

// PageRoutes: halaman admin & form absensi (HTML ter-embed).
func PageRoutes(app fiber.Router) {
	ctl := pageCtl.NewPageController(pages.Templates)
	app.Get("/", ctl.Index)
}
