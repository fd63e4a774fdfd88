package service

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"time"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/helpers/signature"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont        = "Helvetica"
	pdfRowHeight   = 15.0
	pdfLeft        = 10.0
	pdfRight       = 200.0
	minutesNameFmt = "Notulensi_Rapat_%s.pdf"
)

// Kop surat sekolah
var letterhead = struct {
	Regency, Office, School, Address, Email, City string
}{
	Regency: "PEMERINTAH KABUPATEN SIDOARJO",
	Office:  "DINAS PENDIDIKAN DAN KEBUDAYAAN",
	School:  "SD NEGERI SIMOANGIN-ANGIN",
	Address: "Jalan Simoangin-angin, Wonoayu, Sidoarjo, Jawa Timur 61261",
	Email:   "Pos-el: sdnsimoangin@gmail.com",
	City:    "Sidoarjo",
}

type attendanceColumn struct {
	title string
	width float64
}

var pdfAttendanceColumns = []attendanceColumn{
	{"No", 10}, {"Nama", 50}, {"NIP", 35}, {"Waktu Absen", 40}, {"Status", 20}, {"Tanda Tangan", 35},
}

// MinutesFileName = Notulensi_Rapat_yyyyMMdd_HHmmss.pdf
func MinutesFileName(t time.Time) string {
	return fmt.Sprintf(minutesNameFmt, t.Format("20060102_150405"))
}

// BuildMinutesPDF menyusun notulensi: kop, detail rapat, daftar hadir + TTD,
// isi notulensi, blok tanda tangan.
func BuildMinutesPDF(m model.MeetingModel, rows []model.AttendanceModel, notes string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() { drawLetterhead(pdf) })
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, "Halaman "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, "NOTULENSI RAPAT", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Detail
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(40, 7, "DETAIL RAPAT", "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	details := [][2]string{
		{"Meeting ID", m.MeetingID},
		{"Judul Rapat", m.Title},
		{"Tanggal", m.Date},
		{"Waktu", m.Time},
		{"Lokasi", m.Location},
		{"Pimpinan Rapat", m.Chair},
	}
	for _, d := range details {
		pdf.CellFormat(50, 6, d[0]+":", "", 0, "", false, 0, "")
		pdf.CellFormat(0, 6, tr(d[1]), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	// Daftar hadir
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("DAFTAR HADIR (%d Peserta)", len(rows)), "", 1, "", false, 0, "")
	drawAttendanceHeader(pdf)

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, a := range rows {
		if pdf.GetY()+pdfRowHeight > pageH-bottom {
			pdf.AddPage()
			drawAttendanceHeader(pdf)
		}
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(10, pdfRowHeight, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, pdfRowHeight, tr(a.Name), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, pdfRowHeight, a.IDNumber, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, pdfRowHeight, a.Timestamp, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, pdfRowHeight, "Hadir", "1", 0, "C", false, 0, "")

		x, y := pdf.GetX(), pdf.GetY()
		if drawSignature(pdf, fmt.Sprintf("ttd-%d", i), a.Signature, x, y) {
			pdf.CellFormat(35, pdfRowHeight, "", "1", 1, "", false, 0, "")
		} else {
			pdf.CellFormat(35, pdfRowHeight, "-", "1", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(5)

	// Isi notulensi
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 7, "ISI NOTULENSI", "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.MultiCell(0, 6, tr(notes), "", "", false)
	pdf.Ln(10)

	// Tanda tangan
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(95, 6, letterhead.City+", "+m.Date, "", 1, "", false, 0, "")
	pdf.CellFormat(95, 6, "Notulis,", "", 0, "", false, 0, "")
	pdf.CellFormat(95, 6, "Mengetahui,", "", 1, "", false, 0, "")
	pdf.Ln(15)
	pdf.SetFont(pdfFont, "U", 10)
	pdf.CellFormat(95, 6, "(____________________)", "", 0, "C", false, 0, "")
	pdf.CellFormat(95, 6, tr(m.Chair), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(95, 5, "", "", 0, "", false, 0, "")
	pdf.CellFormat(95, 5, "Kepala Sekolah", "", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLetterhead(pdf *fpdf.Fpdf) {
	pdf.SetFont(pdfFont, "", 12)
	pdf.CellFormat(0, 6, letterhead.Regency, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, letterhead.Office, "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 8, letterhead.School, "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 5, letterhead.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, letterhead.Email, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	y := pdf.GetY()
	pdf.SetLineWidth(0.8)
	pdf.Line(pdfLeft, y, pdfRight, y)
	pdf.SetLineWidth(0.3)
	pdf.Line(pdfLeft, y+1.5, pdfRight, y+1.5)
	pdf.Ln(6)
}

func drawAttendanceHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", 9)
	pdf.SetFillColor(200, 220, 255)
	for i, c := range pdfAttendanceColumns {
		ln := 0
		if i == len(pdfAttendanceColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "1", ln, "C", true, 0, "")
	}
}

// drawSignature menggambar TTD di dalam sel (x,y). false = tidak ada / rusak.
func drawSignature(pdf *fpdf.Fpdf, name, payload string, x, y float64) bool {
	if !signature.Renderable(payload) {
		return false
	}
	raw, err := signature.PNG(payload)
	if err != nil {
		log.Printf("[PDF] ttd %s dilewati: %v", name, err)
		return false
	}
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(raw))
	if pdf.Err() {
		// gambar rusak jangan menggagalkan seluruh dokumen
		log.Printf("[PDF] ttd %s dilewati: %v", name, pdf.Error())
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x+2, y+1, 30, pdfRowHeight-2, false, opt, 0, "")
	return true
}
