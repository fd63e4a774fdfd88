package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"notulensi_backend/internals/configs"
	"notulensi_backend/internals/features/rapat/sheetstore"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var (
	storeOnce sync.Once
	store     *sheetstore.Store
	storeErr  error
)

// Store = handle penyimpanan satu-satunya untuk proses ini. Dibuat sekali saat
// pertama dipanggil, tidak pernah ditutup. Kalau gagal, error disimpan dan semua
// operasi data mengembalikan ErrStoreUnavailable.
func Store() *sheetstore.Store {
	storeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		backend, err := openBackend(ctx, configs.StoreDriver)
		if err != nil {
			storeErr = err
			log.Printf("❌ [STORE] driver=%s gagal: %v", configs.StoreDriver, err)
			store = sheetstore.NewStore(sheetstore.UnavailableBackend{Cause: err})
			return
		}
		log.Printf("✅ [STORE] driver=%s siap", configs.StoreDriver)
		store = sheetstore.NewStore(backend)
	})
	return store
}

// StoreStatus untuk /health. Memicu inisialisasi kalau belum.
func StoreStatus() (driver string, err error) {
	Store()
	return configs.StoreDriver, storeErr
}

func openBackend(ctx context.Context, driver string) (sheetstore.Backend, error) {
	switch driver {
	case configs.DriverSheets, "":
		if configs.SpreadsheetKey == "" {
			return nil, errors.New("SPREADSHEET_KEY belum diset")
		}
		if len(configs.GoogleCredentials) == 0 {
			return nil, errors.New("kredensial Google belum diset")
		}
		return sheetstore.NewSheetsBackend(ctx, configs.GoogleCredentials, configs.SpreadsheetKey, configs.SheetsRatePerMinute)
	case configs.DriverPostgres:
		if err := ConnectDB(configs.DatabaseURL); err != nil {
			return nil, err
		}
		TunePool()
		WarmUpQueries()
		return sheetstore.NewPostgresBackend(DB)
	case configs.DriverMemory:
		return sheetstore.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", driver)
	}
}

// ConnectDB membuka Postgres dari DATABASE_URL (DSN lengkap).
func ConnectDB(dsn string) error {
	log.Println("🔌 Koneksi ke PostgreSQL...")
	if dsn == "" {
		return errors.New("DATABASE_URL belum diset")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("gagal konek DB: %w", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// trafik kecil (satu sekolah), pool tidak perlu besar
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries: ping sekali supaya koneksi pertama tidak kena latency handshake.
func WarmUpQueries() {
	if err := ping(); err != nil {
		log.Printf("warm-up ping err: %v", err)
	}
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
