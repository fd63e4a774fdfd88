package sheetstore

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LocateColumn mencari index kolom untuk nama field logis.
// 1) exact match (case-insensitive, trim), 2) fallback substring tanpa spasi.
// Kalau ada beberapa yang cocok, yang pertama di urutan header menang.
func LocateColumn(header []string, field string) (int, bool) {
	target := foldName(field)
	if target == "" {
		return -1, false
	}
	for i, h := range header {
		if foldName(h) == target {
			return i, true
		}
	}

	compact := strings.ReplaceAll(target, " ", "")
	for i, h := range header {
		if strings.Contains(strings.ReplaceAll(foldName(h), " ", ""), compact) {
			return i, true
		}
	}
	return -1, false
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
