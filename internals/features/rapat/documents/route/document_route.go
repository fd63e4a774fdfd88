// file: internals/features/rapat/documents/route/document_route.go
package route

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	docCtl "notulensi_backend/internals/features/rapat/documents/controller"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	osshelper "notulensi_backend/internals/helpers/oss"
)

const archivePrefix = "notulensi"

// DocumentRoutes: QR, export Excel, PDF notulensi (admin).
// limiter dipasang per route (generate dokumen berat).
func DocumentRoutes(admin fiber.Router, repo *repository.Repository, appURL string, limiter fiber.Handler) {
	ctl := docCtl.NewDocumentController(repo, newArchiver(), appURL)

	g := admin.Group("/meetings/:id")
	g.Get("/qr", ctl.QR)
	g.Get("/export", limiter, ctl.Export)
	g.Post("/minutes", limiter, ctl.Minutes)
}

// newArchiver: OSS opsional; tanpa env ALI_OSS_* arsip dimatikan.
func newArchiver() docCtl.Archiver {
	svc, err := osshelper.NewOSSServiceFromEnv(archivePrefix)
	if err != nil {
		if !errors.Is(err, osshelper.ErrNotConfigured) {
			log.Printf("[OSS] ⚠️ arsip notulensi dimatikan: %v", err)
		}
		return nil
	}
	log.Printf("[OSS] ✅ arsip notulensi aktif (bucket=%s)", svc.BucketName)
	return svc
}
