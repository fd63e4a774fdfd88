// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"notulensi_backend/internals/configs"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	"notulensi_backend/internals/features/rapat/sheetstore"
	staffModel "notulensi_backend/internals/features/rapat/staff/model"
	routeDetails "notulensi_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

var startTime time.Time

// SetupRoutes memasang semua route. status dipakai /health.
func SetupRoutes(app *fiber.App, store *sheetstore.Store, staff *staffModel.Directory, status StoreStatusFunc) {
	startTime = time.Now()

	repo := repository.New(store, nil)

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, status)

	log.Println("[INFO] Setting up Page routes...")
	routeDetails.RapatPageRoutes(app)

	// ===================== GROUPS =====================

	// PUBLIC → form absensi
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → tanpa login (dipakai di jaringan sekolah)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a")

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Rapat routes...")
	routeDetails.RapatPublicRoutes(public, repo, staff)
	routeDetails.RapatAdminRoutes(admin, repo, configs.AppURL)
}
