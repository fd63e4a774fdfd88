package model

const TableAttendance = "Data_Absensi"

const (
	ColAttName      = "Nama"
	ColAttIDNumber  = "NIP"
	ColAttTimestamp = "Timestamp"
	ColAttSignature = "Signature"
)

// AttendanceHeader = urutan kolom kanonik Data_Absensi.
var AttendanceHeader = []string{
	ColMeetingID, ColAttName, ColAttIDNumber, ColAttTimestamp, ColAttSignature,
}

type AttendanceModel struct {
	MeetingID string `json:"meeting_id"`
	Name      string `json:"name"`
	IDNumber  string `json:"id_number"`
	Timestamp string `json:"timestamp"`
	// base64 PNG tanpa prefix data URL
	Signature string `json:"-"`

	RowPosition int `json:"-"`
}

func (a AttendanceModel) ToRow() []any {
	return []any{a.MeetingID, a.Name, a.IDNumber, a.Timestamp, a.Signature}
}
