package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/features/rapat/sheetstore"
	"notulensi_backend/internals/helpers/dbtime"
)

// Repository = operasi domain rapat & absensi di atas tabel sheet.
type Repository struct {
	store *sheetstore.Store
	now   func() time.Time
}

// New membuat repository; now boleh nil (default: jam WIB).
func New(store *sheetstore.Store, now func() time.Time) *Repository {
	if now == nil {
		now = dbtime.NowWIB
	}
	return &Repository{store: store, now: now}
}

type MeetingInput struct {
	Title    string
	Date     string // dd-mm-yyyy
	Time     string // HH:MM
	Location string
	Chair    string
}

type MeetingUpdate struct {
	MeetingInput
	Status model.MeetingStatus
}

// CreateMeeting membuat rapat baru dengan status Aktif.
// ID berasal dari timestamp detik; tabrakan tidak dicek.
func (r *Repository) CreateMeeting(ctx context.Context, in MeetingInput) (model.MeetingModel, error) {
	if err := validateMeeting(in); err != nil {
		return model.MeetingModel{}, err
	}
	in = normalizeSchedule(in)
	if err := r.store.EnsureTable(ctx, model.TableMeetings, model.MeetingHeader); err != nil {
		return model.MeetingModel{}, err
	}

	now := r.now()
	m := model.MeetingModel{
		MeetingID: GenerateMeetingID(now),
		Title:     strings.TrimSpace(in.Title),
		Date:      defaultStr(in.Date, now.Format(model.DateLayout)),
		Time:      defaultStr(in.Time, now.Format(model.TimeLayout)),
		Location:  strings.TrimSpace(in.Location),
		Chair:     strings.TrimSpace(in.Chair),
		CreatedAt: now.Format(model.TimestampLayout),
		Status:    model.StatusActive,
	}
	if err := r.store.Append(ctx, model.TableMeetings, m.ToRow()); err != nil {
		return model.MeetingModel{}, err
	}
	log.Printf("[INFO] rapat %s dibuat: %s", m.MeetingID, m.Title)
	return m, nil
}

// GenerateMeetingID = "MTG" + yyyyMMddHHmmss (zona sekolah).
func GenerateMeetingID(t time.Time) string {
	return model.MeetingIDPrefix + t.In(dbtime.SchoolLocation()).Format(model.MeetingIDLayout)
}

// ListMeetings mengembalikan semua rapat sesuai urutan sheet.
func (r *Repository) ListMeetings(ctx context.Context) ([]model.MeetingModel, error) {
	if err := r.store.EnsureTable(ctx, model.TableMeetings, model.MeetingHeader); err != nil {
		return nil, err
	}
	sheet, err := r.store.Read(ctx, model.TableMeetings, model.MeetingHeader)
	if err != nil {
		return nil, err
	}

	cols := resolveColumns(sheet.Header, model.MeetingHeader)
	out := make([]model.MeetingModel, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		status, _ := model.ParseMeetingStatus(cell(row, cols[7]))
		out = append(out, model.MeetingModel{
			MeetingID:   cell(row, cols[0]),
			Title:       cell(row, cols[1]),
			Date:        cell(row, cols[2]),
			Time:        cell(row, cols[3]),
			Location:    cell(row, cols[4]),
			Chair:       cell(row, cols[5]),
			CreatedAt:   cell(row, cols[6]),
			Status:      status,
			RowPosition: row.Position,
		})
	}
	return out, nil
}

// FindMeeting: cocokkan ID (trimmed). Kalau ada duplikat, yang pertama dipakai.
func (r *Repository) FindMeeting(ctx context.Context, id string) (model.MeetingModel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.MeetingModel{}, FieldErrors{"meeting_id": "Meeting ID wajib diisi"}
	}
	all, err := r.ListMeetings(ctx)
	if err != nil {
		return model.MeetingModel{}, err
	}
	for _, m := range all {
		if m.MeetingID == id {
			return m, nil
		}
	}
	return model.MeetingModel{}, fmt.Errorf("%w: Meeting ID %s", ErrNotFound, id)
}

// UpdateMeeting menimpa semua kolom rapat kecuali meeting_id dan created_at.
func (r *Repository) UpdateMeeting(ctx context.Context, id string, in MeetingUpdate) (model.MeetingModel, error) {
	if err := validateMeeting(in.MeetingInput); err != nil {
		return model.MeetingModel{}, err
	}
	in.MeetingInput = normalizeSchedule(in.MeetingInput)
	current, err := r.FindMeeting(ctx, id)
	if err != nil {
		return model.MeetingModel{}, err
	}

	next := current.Status
	if in.Status != "" {
		parsed, ok := model.ParseMeetingStatus(string(in.Status))
		if !ok {
			return model.MeetingModel{}, FieldErrors{"status": "status harus Aktif, Selesai, atau Dibatalkan"}
		}
		next = parsed
	}
	if !current.Status.CanTransitionTo(next) && isKnownStatus(current.Status) {
		return model.MeetingModel{}, FieldErrors{
			"status": fmt.Sprintf("status %s tidak bisa diubah menjadi %s", current.Status, next),
		}
	}

	updated := model.MeetingModel{
		MeetingID:   current.MeetingID,
		Title:       strings.TrimSpace(in.Title),
		Date:        defaultStr(in.Date, current.Date),
		Time:        defaultStr(in.Time, current.Time),
		Location:    strings.TrimSpace(in.Location),
		Chair:       strings.TrimSpace(in.Chair),
		CreatedAt:   current.CreatedAt,
		Status:      next,
		RowPosition: current.RowPosition,
	}
	if err := r.store.Update(ctx, model.TableMeetings, current.RowPosition, updated.ToRow()); err != nil {
		return model.MeetingModel{}, err
	}
	log.Printf("[INFO] rapat %s diupdate (status=%s)", updated.MeetingID, updated.Status)
	return updated, nil
}

// DeleteMeeting menghapus semua absensi rapat lalu baris rapatnya.
// Kalau langkah kedua gagal, rapat tetap ada tanpa absensi (tidak dikompensasi).
func (r *Repository) DeleteMeeting(ctx context.Context, id string) (int, error) {
	m, err := r.FindMeeting(ctx, id)
	if err != nil {
		return 0, err
	}

	keyCol, err := r.attendanceMeetingColumn(ctx)
	if err != nil {
		return 0, err
	}
	removed, err := r.store.DeleteAllMatching(ctx, model.TableAttendance, keyCol, m.MeetingID)
	if err != nil {
		return removed, err
	}

	if err := r.store.DeleteAt(ctx, model.TableMeetings, m.RowPosition); err != nil {
		return removed, err
	}
	log.Printf("[INFO] rapat %s dihapus beserta %d absensi", m.MeetingID, removed)
	return removed, nil
}

// RawMeetings = isi mentah Data_Rapat + header hasil rekonsiliasi (debug admin).
func (r *Repository) RawMeetings(ctx context.Context) ([][]string, []string, error) {
	if err := r.store.EnsureTable(ctx, model.TableMeetings, model.MeetingHeader); err != nil {
		return nil, nil, err
	}
	raw, err := r.store.Raw(ctx, model.TableMeetings)
	if err != nil {
		return nil, nil, err
	}
	return raw, sheetstore.Reconcile(raw, model.MeetingHeader).Header, nil
}

func validateMeeting(in MeetingInput) error {
	errs := FieldErrors{}
	required(errs, "title", in.Title, "Judul rapat wajib diisi")
	required(errs, "location", in.Location, "Lokasi rapat wajib diisi")
	required(errs, "chair", in.Chair, "Pimpinan rapat wajib diisi")
	if strings.TrimSpace(in.Date) != "" {
		if _, err := dbtime.ParseMeetingDate(in.Date); err != nil {
			errs["date"] = "Tanggal harus berformat dd-mm-yyyy"
		}
	}
	if strings.TrimSpace(in.Time) != "" {
		if _, err := dbtime.ParseTod(in.Time); err != nil {
			errs["time"] = "Waktu harus berformat HH:MM"
		}
	}
	return errs.orNil()
}

// normalizeSchedule: tanggal & jam disimpan sebagai dd-mm-yyyy dan HH:MM.
// Dipanggil setelah validateMeeting, jadi parse di sini tidak gagal.
func normalizeSchedule(in MeetingInput) MeetingInput {
	if d, err := dbtime.ParseMeetingDate(in.Date); err == nil {
		in.Date = d.Format(model.DateLayout)
	}
	if t, err := dbtime.ParseTod(in.Time); err == nil {
		in.Time = t.String()
	}
	return in
}

func isKnownStatus(s model.MeetingStatus) bool {
	_, ok := model.ParseMeetingStatus(string(s))
	return ok
}

// resolveColumns: index kolom per field. Kalau Locator gagal, pakai index kanonik.
func resolveColumns(header, fields []string) []int {
	out := make([]int, len(fields))
	for i, f := range fields {
		if idx, ok := sheetstore.LocateColumn(header, f); ok {
			out[i] = idx
			continue
		}
		out[i] = i
	}
	return out
}

func cell(row sheetstore.Row, idx int) string {
	if idx < 0 || idx >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[idx])
}

func defaultStr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
