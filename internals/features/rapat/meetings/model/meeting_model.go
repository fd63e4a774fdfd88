package model

import "strings"

const TableMeetings = "Data_Rapat"

// Nama kolom sesuai header worksheet.
const (
	ColMeetingID = "Meeting ID"
	ColTitle     = "Judul"
	ColDate      = "Tanggal"
	ColTime      = "Waktu"
	ColLocation  = "Lokasi"
	ColChair     = "Pimpinan"
	ColCreatedAt = "Timestamp Dibuat"
	ColStatus    = "Status"
)

// MeetingHeader = urutan kolom kanonik Data_Rapat.
var MeetingHeader = []string{
	ColMeetingID, ColTitle, ColDate, ColTime, ColLocation, ColChair, ColCreatedAt, ColStatus,
}

// Format tampilan tanggal/waktu yang disimpan di sheet.
const (
	DateLayout      = "02-01-2006"
	TimeLayout      = "15:04"
	TimestampLayout = "2006-01-02 15:04:05"
	MeetingIDLayout = "20060102150405"
	MeetingIDPrefix = "MTG"
)

type MeetingStatus string

const (
	StatusActive    MeetingStatus = "Aktif"
	StatusCompleted MeetingStatus = "Selesai"
	StatusCancelled MeetingStatus = "Dibatalkan"
)

// ParseMeetingStatus menerima nilai dari sheet (bisa diedit manual) secara longgar.
// Nilai kosong dianggap Aktif.
func ParseMeetingStatus(s string) (MeetingStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "aktif", "active":
		return StatusActive, true
	case "selesai", "completed":
		return StatusCompleted, true
	case "dibatalkan", "batal", "cancelled", "canceled":
		return StatusCancelled, true
	}
	return MeetingStatus(strings.TrimSpace(s)), false
}

func (s MeetingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo: Aktif -> Selesai | Dibatalkan. Status yang sama selalu boleh.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	if s == next {
		return true
	}
	return s == StatusActive && next.IsTerminal()
}

type MeetingModel struct {
	MeetingID string        `json:"meeting_id"`
	Title     string        `json:"title"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Location  string        `json:"location"`
	Chair     string        `json:"chair"`
	CreatedAt string        `json:"created_at"`
	Status    MeetingStatus `json:"status"`

	// posisi baris di sheet saat dibaca; 0 kalau belum tersimpan
	RowPosition int `json:"-"`
}

// ToRow = urutan sel sesuai MeetingHeader.
func (m MeetingModel) ToRow() []any {
	return []any{
		m.MeetingID,
		m.Title,
		m.Date,
		m.Time,
		m.Location,
		m.Chair,
		m.CreatedAt,
		string(m.Status),
	}
}
