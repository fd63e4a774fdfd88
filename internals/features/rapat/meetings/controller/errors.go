package controller

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"notulensi_backend/internals/features/rapat/meetings/repository"
	helper "notulensi_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	msgStoreUnavailable = "Gagal terhubung ke penyimpanan data. Coba lagi beberapa saat."
	msgDuplicate        = "Anda sudah melakukan absensi untuk rapat ini!"
	msgNameRequired     = "Nama dan NIP wajib diisi!"
	msgSignatureEmpty   = "Tanda tangan belum dibuat!"
)

// WriteRepoError memetakan error repository ke response HTTP.
func WriteRepoError(c *fiber.Ctx, err error) error {
	var fe repository.FieldErrors
	switch {
	case errors.As(err, &fe):
		return helper.JsonValidationError(c, helper.FieldErrorsToMap(fe))
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, repository.ErrDuplicateAttendance):
		return helper.JsonError(c, fiber.StatusConflict, msgDuplicate)
	case errors.Is(err, repository.ErrStoreUnavailable):
		log.Printf("[STORE] %s %s: %v", c.Method(), c.Path(), err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, msgStoreUnavailable)
	default:
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NewValidator: nama field di pesan error = nama json.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AttendanceBaseURL: APP_URL kalau diset, kalau tidak dari request (scheme + host).
func AttendanceBaseURL(c *fiber.Ctx, appURL string) string {
	if appURL = strings.TrimRight(strings.TrimSpace(appURL), "/"); appURL != "" {
		return appURL
	}
	return c.BaseURL()
}
