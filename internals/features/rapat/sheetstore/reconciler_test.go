package sheetstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var rapatHeader = []string{"Meeting ID", "Judul", "Tanggal", "Waktu", "Lokasi", "Pimpinan", "Timestamp Dibuat", "Status"}

func TestReconcile_EmptyTable(t *testing.T) {
	got := Reconcile(nil, rapatHeader)
	assert.Empty(t, got.Header)
	assert.Empty(t, got.Rows)
}

func TestReconcile_BlankHeaderFallsBackToExpected(t *testing.T) {
	values := [][]string{
		{"", "", ""},
		{"x", "y"},
	}
	got := Reconcile(values, []string{"A", "B", "C"})

	assert.Equal(t, []string{"A", "B", "C"}, got.Header)
	if assert.Len(t, got.Rows, 1) {
		assert.Equal(t, []string{"x", "y", ""}, got.Rows[0].Cells)
		assert.Equal(t, 2, got.Rows[0].Position)
	}
}

func TestReconcile_MismatchedHeaderStillSkipsRowZero(t *testing.T) {
	values := [][]string{
		{"MTG1", "Rapat lama", "01-01-2025"},
		{"MTG2", "Rapat baru", "02-01-2025"},
	}
	got := Reconcile(values, rapatHeader)

	assert.Equal(t, rapatHeader, got.Header)
	if assert.Len(t, got.Rows, 1) {
		assert.Equal(t, "MTG2", got.Rows[0].Cells[0])
		assert.Len(t, got.Rows[0].Cells, len(rapatHeader))
	}
}

func TestReconcile_SheetHeaderWinsWhenAnyNameMatches(t *testing.T) {
	values := [][]string{
		{" meeting id ", "Topik", "Tgl"},
		{"MTG1", "Evaluasi", "01-01-2025", "extra", "extra"},
	}
	got := Reconcile(values, rapatHeader)

	assert.Equal(t, []string{"meeting id", "Topik", "Tgl"}, got.Header)
	assert.Equal(t, []string{"MTG1", "Evaluasi", "01-01-2025"}, got.Rows[0].Cells)
}

func TestReconcile_RowShapeProperties(t *testing.T) {
	tests := []struct {
		name   string
		values [][]string
		want   int
	}{
		{"header only", [][]string{rapatHeader}, 0},
		{"short and long rows", [][]string{rapatHeader, {"a"}, {"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}}, 2},
		{"blank rows dropped", [][]string{rapatHeader, {"", "  "}, {}, {"MTG1"}, {" ", "\t"}}, 1},
		{"all blank", [][]string{rapatHeader, {""}, {"   "}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.values, rapatHeader)
			assert.Len(t, got.Rows, tt.want)
			assert.LessOrEqual(t, len(got.Rows), len(tt.values)-1)
			for _, r := range got.Rows {
				assert.Len(t, r.Cells, len(got.Header))
				assert.False(t, isBlankRow(r.Cells))
			}
		})
	}
}

func TestReconcile_PositionsSurviveSkippedRows(t *testing.T) {
	values := [][]string{
		rapatHeader,
		{"MTG1"},
		{""},
		{"MTG2"},
	}
	got := Reconcile(values, rapatHeader)

	if assert.Len(t, got.Rows, 2) {
		assert.Equal(t, 2, got.Rows[0].Position)
		assert.Equal(t, 4, got.Rows[1].Position)
	}
}
