package sheetstore

import "strings"

// Row adalah satu baris data hasil rekonsiliasi.
// Position = nomor baris asli di sheet (1-based, header = 1).
type Row struct {
	Position int
	Cells    []string
}

// Sheet = header terpakai + baris data yang sudah dirapikan.
type Sheet struct {
	Header []string
	Rows   []Row
}

// Reconcile membaca isi mentah tabel dan menentukan header yang dipakai.
//
// Baris 0 selalu dianggap header dan dilewati. Header sheet dipakai kecuali
// kosong semua atau tidak ada satupun nama expected yang cocok (case-insensitive);
// dalam kasus itu header expected yang dipakai. Baris kosong dibuang, sisanya
// di-pad / dipotong sepanjang header.
func Reconcile(values [][]string, expected []string) Sheet {
	if len(values) == 0 {
		return Sheet{}
	}

	raw := make([]string, len(values[0]))
	for i, h := range values[0] {
		raw[i] = strings.TrimSpace(h)
	}

	header := raw
	if len(expected) > 0 && !headerUsable(raw, expected) {
		header = append([]string(nil), expected...)
	}

	out := Sheet{Header: header}
	for i, row := range values[1:] {
		if isBlankRow(row) {
			continue
		}
		out.Rows = append(out.Rows, Row{
			Position: i + 2,
			Cells:    fitRow(row, len(header)),
		})
	}
	return out
}

func headerUsable(raw, expected []string) bool {
	present := make(map[string]struct{}, len(raw))
	for _, h := range raw {
		if h == "" {
			continue
		}
		present[strings.ToLower(h)] = struct{}{}
	}
	if len(present) == 0 {
		return false
	}
	for _, e := range expected {
		if _, ok := present[strings.ToLower(strings.TrimSpace(e))]; ok {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fitRow(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}
