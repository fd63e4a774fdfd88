package sheetstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrStoreUnavailable dipakai untuk semua kegagalan koneksi / izin / tulis ke backend.
var ErrStoreUnavailable = errors.New("penyimpanan tidak tersedia")

// Backend = operasi mentah terhadap tabel bernama.
// Posisi baris 1-based dan header ikut dihitung (header = baris 1).
type Backend interface {
	// Values mengembalikan seluruh isi tabel termasuk header.
	Values(ctx context.Context, table string) ([][]string, error)
	AppendRow(ctx context.Context, table string, row []string) error
	// UpdateCell menulis satu sel; col juga 1-based.
	UpdateCell(ctx context.Context, table string, row, col int, value string) error
	DeleteRow(ctx context.Context, table string, row int) error
	// EnsureTable membuat tabel kalau belum ada. created=true bila baru dibuat.
	EnsureTable(ctx context.Context, table string) (created bool, err error)
	// WriteHeader menimpa baris 1.
	WriteHeader(ctx context.Context, table string, header []string) error
}

func unavailable(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %v", ErrStoreUnavailable, op, table, err)
}

// UnavailableBackend dipasang kalau koneksi gagal dibuat; semua operasi
// mengembalikan ErrStoreUnavailable dengan penyebab awalnya.
type UnavailableBackend struct{ Cause error }

func (u UnavailableBackend) err(op, table string) error {
	cause := u.Cause
	if cause == nil {
		cause = errors.New("koneksi belum dibuat")
	}
	return unavailable(op, table, cause)
}

func (u UnavailableBackend) Values(_ context.Context, table string) ([][]string, error) {
	return nil, u.err("read", table)
}

func (u UnavailableBackend) AppendRow(_ context.Context, table string, _ []string) error {
	return u.err("append", table)
}

func (u UnavailableBackend) UpdateCell(_ context.Context, table string, _, _ int, _ string) error {
	return u.err("update", table)
}

func (u UnavailableBackend) DeleteRow(_ context.Context, table string, _ int) error {
	return u.err("delete", table)
}

func (u UnavailableBackend) EnsureTable(_ context.Context, table string) (bool, error) {
	return false, u.err("ensure", table)
}

func (u UnavailableBackend) WriteHeader(_ context.Context, table string, _ []string) error {
	return u.err("header", table)
}
