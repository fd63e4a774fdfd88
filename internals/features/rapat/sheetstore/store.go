package sheetstore

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Store = adapter baris di atas Backend. Semua error backend dibungkus ErrStoreUnavailable.
type Store struct {
	backend Backend
	ensured sync.Map // table -> struct{}
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Append menambah baris di akhir tabel tanpa membaca tabel lebih dulu.
func (s *Store) Append(ctx context.Context, table string, row []any) error {
	return unavailable("append", table, s.backend.AppendRow(ctx, table, Stringify(row)))
}

// Update menimpa baris di posisi tertentu sel per sel.
// Kalau gagal di tengah, sel yang sudah tertulis tidak dikembalikan.
func (s *Store) Update(ctx context.Context, table string, position int, row []any) error {
	if position < 2 {
		return fmt.Errorf("%w: posisi baris tidak valid: %d", ErrStoreUnavailable, position)
	}
	for i, v := range Stringify(row) {
		if err := s.backend.UpdateCell(ctx, table, position, i+1, v); err != nil {
			return unavailable("update", table, err)
		}
	}
	return nil
}

// DeleteAt menghapus satu baris; baris di bawahnya naik satu posisi.
func (s *Store) DeleteAt(ctx context.Context, table string, position int) error {
	if position < 2 {
		return fmt.Errorf("%w: posisi baris tidak valid: %d", ErrStoreUnavailable, position)
	}
	return unavailable("delete", table, s.backend.DeleteRow(ctx, table, position))
}

// DeleteAllMatching menghapus semua baris (selain header) yang sel keyColumn-nya
// sama dengan key (trimmed). Dihapus dari posisi terbesar ke terkecil.
func (s *Store) DeleteAllMatching(ctx context.Context, table string, keyColumn int, key string) (int, error) {
	values, err := s.backend.Values(ctx, table)
	if err != nil {
		return 0, unavailable("read", table, err)
	}

	key = strings.TrimSpace(key)
	var positions []int
	for i := 1; i < len(values); i++ {
		row := values[i]
		if keyColumn < len(row) && strings.TrimSpace(row[keyColumn]) == key {
			positions = append(positions, i+1)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))

	deleted := 0
	for _, pos := range positions {
		if err := s.backend.DeleteRow(ctx, table, pos); err != nil {
			return deleted, unavailable("delete", table, err)
		}
		deleted++
	}
	return deleted, nil
}

// Read membaca seluruh tabel lalu direkonsiliasi terhadap header expected.
func (s *Store) Read(ctx context.Context, table string, expected []string) (Sheet, error) {
	values, err := s.backend.Values(ctx, table)
	if err != nil {
		return Sheet{}, unavailable("read", table, err)
	}
	return Reconcile(values, expected), nil
}

// Raw mengembalikan isi mentah tabel (untuk halaman debug admin).
func (s *Store) Raw(ctx context.Context, table string) ([][]string, error) {
	values, err := s.backend.Values(ctx, table)
	if err != nil {
		return nil, unavailable("read", table, err)
	}
	return values, nil
}

// EnsureTable memastikan tabel ada dan baris 1 berisi header.
// Header ditulis kalau baris 1 kosong, atau tabel baru dibuat dan headernya tidak cocok.
// Hanya dijalankan sekali per tabel per proses.
func (s *Store) EnsureTable(ctx context.Context, table string, header []string) error {
	if _, ok := s.ensured.Load(table); ok {
		return nil
	}

	created, err := s.backend.EnsureTable(ctx, table)
	if err != nil {
		return unavailable("ensure", table, err)
	}

	values, err := s.backend.Values(ctx, table)
	if err != nil {
		return unavailable("read", table, err)
	}

	var first []string
	if len(values) > 0 {
		first = values[0]
	}

	switch {
	case isBlankRow(first):
		log.Printf("[SHEETS] menulis header ke %s", table)
		if err := s.backend.WriteHeader(ctx, table, header); err != nil {
			return unavailable("header", table, err)
		}
	case created && !headerUsable(trimAll(first), header):
		log.Printf("[SHEETS] header %s tidak cocok, ditimpa", table)
		if err := s.backend.WriteHeader(ctx, table, header); err != nil {
			return unavailable("header", table, err)
		}
	}

	s.ensured.Store(table, struct{}{})
	return nil
}

// Stringify: semua sel jadi teks, nil jadi "".
func Stringify(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch t := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = t
		case fmt.Stringer:
			out[i] = t.String()
		default:
			out[i] = fmt.Sprint(t)
		}
	}
	return out
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
