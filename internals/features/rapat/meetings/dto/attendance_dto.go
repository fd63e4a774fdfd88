package dto

import (
	"strings"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/features/rapat/meetings/repository"
)

// AttendanceRequest dari form absensi publik.
// Wajib-isi dicek di repository supaya pesannya sama dengan form.
type AttendanceRequest struct {
	Name      string `json:"name" validate:"max=150"`
	IDNumber  string `json:"id_number" validate:"max=40"`
	Signature string `json:"signature"` // data URL / base64 PNG dari canvas
}

func (r *AttendanceRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.Signature = strings.TrimSpace(r.Signature)
}

func (r AttendanceRequest) ToInput(meetingID string) repository.AttendanceInput {
	return repository.AttendanceInput{
		MeetingID: meetingID,
		Name:      r.Name,
		IDNumber:  r.IDNumber,
		Signature: r.Signature,
	}
}

// AttendanceResponse: payload TTD tidak dikirim (besar), cukup flag.
type AttendanceResponse struct {
	MeetingID    string `json:"meeting_id"`
	Name         string `json:"name"`
	IDNumber     string `json:"id_number"`
	Timestamp    string `json:"timestamp"`
	HasSignature bool   `json:"has_signature"`
}

func FromAttendanceModel(a model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		MeetingID:    a.MeetingID,
		Name:         a.Name,
		IDNumber:     a.IDNumber,
		Timestamp:    a.Timestamp,
		HasSignature: strings.TrimSpace(a.Signature) != "",
	}
}

func FromAttendanceModels(list []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAttendanceModel(a))
	}
	return out
}

// PublicMeetingResponse: ringkasan rapat untuk form absensi.
type PublicMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Chair     string `json:"chair"`
	Status    string `json:"status"`
}

func FromMeetingPublic(m model.MeetingModel) PublicMeetingResponse {
	return PublicMeetingResponse{
		MeetingID: m.MeetingID,
		Title:     m.Title,
		Date:      m.Date,
		Time:      m.Time,
		Location:  m.Location,
		Chair:     m.Chair,
		Status:    string(m.Status),
	}
}
