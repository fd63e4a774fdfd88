package configs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	DriverSheets   = "sheets"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	Port                string
	AppURL              string
	StoreDriver         string
	SpreadsheetKey      string
	GoogleCredentials   []byte
	SheetsRatePerMinute int
	DatabaseURL         string
	StaffFile           string
	CORSAllowOrigins    string
	SeedDemo            bool

	RateGlobalPerMinute     int
	RateAttendancePerMinute int
	TrustedProxies          []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	Port = GetEnv("PORT", "3000")
	AppURL = strings.TrimRight(strings.TrimSpace(GetEnv("APP_URL")), "/")
	StoreDriver = strings.ToLower(strings.TrimSpace(GetEnv("STORE_DRIVER", DriverSheets)))
	SpreadsheetKey = strings.TrimSpace(GetEnv("SPREADSHEET_KEY"))
	SheetsRatePerMinute = GetEnvInt("SHEETS_RATE_PER_MINUTE", 60)
	DatabaseURL = GetEnv("DATABASE_URL")
	StaffFile = GetEnv("STAFF_FILE")
	CORSAllowOrigins = GetEnv("CORS_ALLOW_ORIGINS", "*")
	SeedDemo = strings.EqualFold(GetEnv("SEED_DEMO"), "true")
	RateGlobalPerMinute = GetEnvInt("RATE_GLOBAL_PER_MINUTE", 600)
	RateAttendancePerMinute = GetEnvInt("RATE_ATTENDANCE_PER_MINUTE", 200)
	TrustedProxies = GetEnvList("TRUSTED_PROXIES")
	if len(TrustedProxies) == 0 {
		log.Println("⚠️ TRUSTED_PROXIES kosong, X-Forwarded-For diabaikan (IP klien = IP koneksi)")
	}

	creds, err := loadGoogleCredentials()
	GoogleCredentials = creds

	switch StoreDriver {
	case DriverSheets:
		if SpreadsheetKey == "" {
			log.Println("❌ SPREADSHEET_KEY belum diset!")
		} else {
			log.Println("✅ SPREADSHEET_KEY berhasil dimuat.")
		}
		if err != nil {
			log.Printf("❌ Kredensial Google: %v", err)
		} else {
			log.Println("✅ Kredensial Google berhasil dimuat.")
		}
	case DriverPostgres:
		if DatabaseURL == "" {
			log.Println("❌ DATABASE_URL belum diset!")
		}
	case DriverMemory:
		log.Println("⚠️ STORE_DRIVER=memory, data hilang saat restart")
	default:
		log.Printf("❌ STORE_DRIVER tidak dikenal: %q", StoreDriver)
	}

	if AppURL == "" {
		log.Println("⚠️ APP_URL belum diset, link absensi memakai host dari request")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// GetEnvList: nilai dipisah koma, entri kosong dibuang.
func GetEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// loadGoogleCredentials: GOOGLE_CREDENTIALS_JSON (JSON mentah atau base64),
// lalu GOOGLE_CREDENTIALS_FILE.
func loadGoogleCredentials() ([]byte, error) {
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); raw != "" {
		return DecodeCredentials(raw)
	}
	if path := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("baca %s: %w", path, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON / GOOGLE_CREDENTIALS_FILE belum diset")
}

// DecodeCredentials menerima JSON service account apa adanya atau versi base64-nya.
func DecodeCredentials(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON bukan JSON maupun base64: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(b)), "{") {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON (base64) bukan JSON")
	}
	return b, nil
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
