package service

import (
	"fmt"
	"log"
	"strconv"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/helpers/signature"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet        = "Daftar Hadir"
	exportHeaderRow    = 3
	exportRowHeight    = 60
	exportSignatureW   = 150
	exportSignatureH   = 50
	exportMissingLabel = "(TTD tidak tersedia)"
)

var (
	exportHeaders   = []string{"No", "Nama", "NIP", "Waktu Absen", "Tanda Tangan"}
	exportColWidths = []float64{6, 30, 25, 22, 25}
)

// ExportFileName = daftar_hadir_{id}.xlsx
func ExportFileName(meetingID string) string {
	return fmt.Sprintf("daftar_hadir_%s.xlsx", meetingID)
}

// BuildAttendanceWorkbook membuat xlsx daftar hadir + gambar TTD per baris.
func BuildAttendanceWorkbook(meetingID string, rows []model.AttendanceModel) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[EXCEL] close: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E86C1"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	centerStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	nameStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	// Judul
	if err := f.MergeCell(exportSheet, "A1", "E1"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(exportSheet, "A1", "DAFTAR HADIR RAPAT - "+meetingID); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "E1", titleStyle); err != nil {
		return nil, err
	}

	// Header kolom
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, exportHeaderRow)
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, col, col, exportColWidths[i]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(exportSheet, "A3", "E3", headerStyle); err != nil {
		return nil, err
	}

	// Data
	for i, a := range rows {
		r := exportHeaderRow + 1 + i
		rs := strconv.Itoa(r)
		if err := f.SetRowHeight(exportSheet, r, exportRowHeight); err != nil {
			return nil, err
		}
		_ = f.SetCellValue(exportSheet, "A"+rs, i+1)
		_ = f.SetCellValue(exportSheet, "B"+rs, a.Name)
		_ = f.SetCellValue(exportSheet, "C"+rs, a.IDNumber)
		_ = f.SetCellValue(exportSheet, "D"+rs, a.Timestamp)
		_ = f.SetCellStyle(exportSheet, "A"+rs, "A"+rs, centerStyle)
		_ = f.SetCellStyle(exportSheet, "B"+rs, "B"+rs, nameStyle)
		_ = f.SetCellStyle(exportSheet, "C"+rs, "E"+rs, centerStyle)

		if !embedSignature(f, "E"+rs, a.Signature) {
			_ = f.SetCellValue(exportSheet, "E"+rs, exportMissingLabel)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("tulis xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// embedSignature: false kalau TTD kosong / rusak, biar caller isi label.
func embedSignature(f *excelize.File, cell, payload string) bool {
	if !signature.Renderable(payload) {
		return false
	}
	img, err := signature.ResizeForCell(payload, exportSignatureW, exportSignatureH)
	if err != nil {
		log.Printf("[EXCEL] ttd %s tidak bisa dibaca: %v", cell, err)
		return false
	}
	err = f.AddPictureFromBytes(exportSheet, cell, &excelize.Picture{
		Extension: ".png",
		File:      img,
		Format: &excelize.GraphicOptions{
			OffsetX:     4,
			OffsetY:     4,
			Positioning: "oneCell",
		},
	})
	if err != nil {
		log.Printf("[EXCEL] gagal sisipkan ttd %s: %v", cell, err)
		return false
	}
	return true
}
