package repository

import (
	"errors"
	"sort"
	"strings"

	"notulensi_backend/internals/features/rapat/sheetstore"
)

var (
	ErrStoreUnavailable    = sheetstore.ErrStoreUnavailable
	ErrNotFound            = errors.New("data tidak ditemukan")
	ErrDuplicateAttendance = errors.New("peserta sudah melakukan absensi untuk rapat ini")
	ErrValidation          = errors.New("validasi gagal")
)

// FieldErrors = error validasi per field. errors.Is(err, ErrValidation) bernilai true.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return ErrValidation }

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func required(errs FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}
