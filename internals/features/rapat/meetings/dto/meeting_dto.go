// file: internals/features/rapat/meetings/dto/meeting_dto.go
package dto

import (
	"strings"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/features/rapat/meetings/repository"
)

/* =========================================================
   REQUEST DTO: CREATE
   - date: "yyyy-mm-dd" (input HTML) atau "dd-mm-yyyy"; kosong = hari ini
   - time: "HH:MM"; kosong = jam sekarang
========================================================= */

type CreateMeetingRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Date     string `json:"date" validate:"omitempty,max=10"`
	Time     string `json:"time" validate:"omitempty,max=8"`
	Location string `json:"location" validate:"required,max=200"`
	Chair    string `json:"chair" validate:"required,max=200"`
}

func (r *CreateMeetingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Location = strings.TrimSpace(r.Location)
	r.Chair = strings.TrimSpace(r.Chair)
}

func (r CreateMeetingRequest) ToInput() repository.MeetingInput {
	return repository.MeetingInput{
		Title:    r.Title,
		Date:     r.Date,
		Time:     r.Time,
		Location: r.Location,
		Chair:    r.Chair,
	}
}

/* =========================================================
   REQUEST DTO: UPDATE (PUT, semua kolom ditimpa)
   status: Aktif | Selesai | Dibatalkan (kosong = tetap)
========================================================= */

type UpdateMeetingRequest struct {
	CreateMeetingRequest
	Status string `json:"status" validate:"omitempty,max=20"`
}

func (r *UpdateMeetingRequest) Normalize() {
	r.CreateMeetingRequest.Normalize()
	r.Status = strings.TrimSpace(r.Status)
}

func (r UpdateMeetingRequest) ToUpdate() repository.MeetingUpdate {
	return repository.MeetingUpdate{
		MeetingInput: r.CreateMeetingRequest.ToInput(),
		Status:       model.MeetingStatus(r.Status),
	}
}

// DeleteMeetingRequest: admin wajib mengetik ulang Meeting ID.
type DeleteMeetingRequest struct {
	ConfirmMeetingID string `json:"confirm_meeting_id" validate:"required"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type MeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Chair     string `json:"chair"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

func FromMeetingModel(m model.MeetingModel) MeetingResponse {
	return MeetingResponse{
		MeetingID: m.MeetingID,
		Title:     m.Title,
		Date:      m.Date,
		Time:      m.Time,
		Location:  m.Location,
		Chair:     m.Chair,
		CreatedAt: m.CreatedAt,
		Status:    string(m.Status),
	}
}

func FromMeetingModels(list []model.MeetingModel) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMeetingModel(m))
	}
	return out
}

// CreateMeetingResponse = rapat + link absensi + QR (PNG base64).
type CreateMeetingResponse struct {
	Meeting        MeetingResponse `json:"meeting"`
	AttendanceLink string          `json:"attendance_link"`
	QRPNGBase64    string          `json:"qr_png_base64"`
}

type DeleteMeetingResponse struct {
	MeetingID         string `json:"meeting_id"`
	AttendanceRemoved int    `json:"attendance_removed"`
}

// RawMeetingsResponse: debug isi mentah Data_Rapat.
type RawMeetingsResponse struct {
	RawHeader      []string   `json:"raw_header"`
	FirstRow       []string   `json:"first_row"`
	ResolvedHeader []string   `json:"resolved_header"`
	TotalRows      int        `json:"total_rows"`
	Values         [][]string `json:"values,omitempty"`
}

func NewRawMeetingsResponse(raw [][]string, resolved []string, withValues bool) RawMeetingsResponse {
	out := RawMeetingsResponse{ResolvedHeader: resolved, RawHeader: []string{}, FirstRow: []string{}}
	if len(raw) > 0 {
		out.RawHeader = raw[0]
		out.TotalRows = len(raw) - 1
	}
	if len(raw) > 1 {
		out.FirstRow = raw[1]
	}
	if withValues {
		out.Values = raw
	}
	return out
}
