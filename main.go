package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"notulensi_backend/internals/configs"
	database "notulensi_backend/internals/databases"
	"notulensi_backend/internals/features/rapat/meetings/repository"
	staffModel "notulensi_backend/internals/features/rapat/staff/model"
	helper "notulensi_backend/internals/helpers"
	middlewares "notulensi_backend/internals/middlewares"
	routes "notulensi_backend/internals/route"
	"notulensi_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(newFiberConfig(configs.TrustedProxies))

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard; dokumen (PDF/Excel) baca dua sheet + render, jadi lebih longgar
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout(c.Path()))
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 Store (Sheets / Postgres / memory). Gagal konek tidak menghentikan server:
	// halaman & /health tetap jalan, operasi data balas 503.
	store := database.Store()

	if configs.SeedDemo {
		seedCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		if err := seeds.RunAllSeeds(seedCtx, repository.New(store, nil)); err != nil {
			log.Printf("⚠️ [SEED] gagal: %v", err)
		}
		cancel()
	}

	staff, err := staffModel.LoadDirectory(configs.StaffFile)
	if err != nil {
		log.Fatalf("❌ daftar guru: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, store, staff, database.StoreStatus)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.Port

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB (kalau driver postgres)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	fmt.Println("👋 server berhenti")
}

// newFiberConfig: X-Forwarded-For hanya dipercaya dari proxy di daftar CIDR.
func newFiberConfig(trustedProxies []string) fiber.Config {
	return fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FromFiberError,
		BodyLimit:               8 * 1024 * 1024, // data URL tanda tangan bisa besar
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
	}
}

func requestTimeout(path string) time.Duration {
	if strings.HasSuffix(path, "/export") || strings.HasSuffix(path, "/minutes") {
		return 30 * time.Second
	}
	return 10 * time.Second
}
