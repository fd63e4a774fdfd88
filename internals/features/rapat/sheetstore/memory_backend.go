package sheetstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend menyimpan tabel di memori. Dipakai untuk test dan STORE_DRIVER=memory.
type MemoryBackend struct {
	mu     sync.Mutex
	tables map[string][][]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: map[string][][]string{}}
}

// Seed mengisi tabel apa adanya (termasuk header). Menimpa isi lama.
func (m *MemoryBackend) Seed(table string, values [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = cloneValues(values)
}

func (m *MemoryBackend) Values(_ context.Context, table string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneValues(m.tables[table]), nil
}

func (m *MemoryBackend) AppendRow(_ context.Context, table string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], append([]string(nil), row...))
	return nil
}

func (m *MemoryBackend) UpdateCell(_ context.Context, table string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 1 || col < 1 {
		return fmt.Errorf("sel di luar jangkauan: %d,%d", row, col)
	}
	rows := m.tables[table]
	for len(rows) < row {
		rows = append(rows, nil)
	}
	r := rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	rows[row-1] = r
	m.tables[table] = rows
	return nil
}

func (m *MemoryBackend) DeleteRow(_ context.Context, table string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if row < 1 || row > len(rows) {
		return fmt.Errorf("baris %d tidak ada di %s", row, table)
	}
	m.tables[table] = append(rows[:row-1], rows[row:]...)
	return nil
}

func (m *MemoryBackend) EnsureTable(_ context.Context, table string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; ok {
		return false, nil
	}
	m.tables[table] = [][]string{}
	return true, nil
}

func (m *MemoryBackend) WriteHeader(_ context.Context, table string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	h := append([]string(nil), header...)
	if len(rows) == 0 {
		m.tables[table] = [][]string{h}
		return nil
	}
	rows[0] = h
	return nil
}

func cloneValues(values [][]string) [][]string {
	if values == nil {
		return nil
	}
	out := make([][]string, len(values))
	for i, r := range values {
		out[i] = append([]string(nil), r...)
	}
	return out
}
