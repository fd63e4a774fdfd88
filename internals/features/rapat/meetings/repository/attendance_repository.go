package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/features/rapat/sheetstore"
)

type AttendanceInput struct {
	MeetingID string
	Name      string
	IDNumber  string
	Signature string // base64 PNG
}

// RecordAttendance menyimpan absensi satu peserta.
// Cek duplikat (meeting_id, NIP) dilakukan dengan membaca tabel; dua submit yang
// hampir bersamaan masih bisa lolos berdua.
func (r *Repository) RecordAttendance(ctx context.Context, in AttendanceInput) (model.AttendanceModel, error) {
	errs := FieldErrors{}
	required(errs, "meeting_id", in.MeetingID, "Meeting ID wajib diisi")
	required(errs, "name", in.Name, "Nama wajib diisi")
	required(errs, "id_number", in.IDNumber, "NIP wajib diisi")
	required(errs, "signature", in.Signature, "Tanda tangan belum dibuat")
	if err := errs.orNil(); err != nil {
		return model.AttendanceModel{}, err
	}

	meeting, err := r.FindMeeting(ctx, in.MeetingID)
	if err != nil {
		return model.AttendanceModel{}, err
	}

	existing, err := r.readAttendance(ctx)
	if err != nil {
		return model.AttendanceModel{}, err
	}
	idNumber := strings.TrimSpace(in.IDNumber)
	for _, a := range existing {
		if a.MeetingID == meeting.MeetingID && a.IDNumber == idNumber {
			return model.AttendanceModel{}, fmt.Errorf("%w: %s", ErrDuplicateAttendance, idNumber)
		}
	}

	a := model.AttendanceModel{
		MeetingID: meeting.MeetingID,
		Name:      strings.TrimSpace(in.Name),
		IDNumber:  idNumber,
		Timestamp: r.now().Format(model.TimestampLayout),
		Signature: strings.TrimSpace(in.Signature),
	}
	if err := r.store.Append(ctx, model.TableAttendance, a.ToRow()); err != nil {
		return model.AttendanceModel{}, err
	}
	log.Printf("[INFO] absensi %s / %s tersimpan", a.MeetingID, a.IDNumber)
	return a, nil
}

// ListAttendance = absensi satu rapat sesuai urutan sheet.
func (r *Repository) ListAttendance(ctx context.Context, meetingID string) ([]model.AttendanceModel, error) {
	all, err := r.readAttendance(ctx)
	if err != nil {
		return nil, err
	}
	meetingID = strings.TrimSpace(meetingID)
	out := make([]model.AttendanceModel, 0)
	for _, a := range all {
		if a.MeetingID == meetingID {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindAttendance mencari satu absensi berdasarkan (meeting_id, NIP).
func (r *Repository) FindAttendance(ctx context.Context, meetingID, idNumber string) (model.AttendanceModel, error) {
	list, err := r.ListAttendance(ctx, meetingID)
	if err != nil {
		return model.AttendanceModel{}, err
	}
	idNumber = strings.TrimSpace(idNumber)
	for _, a := range list {
		if a.IDNumber == idNumber {
			return a, nil
		}
	}
	return model.AttendanceModel{}, fmt.Errorf("%w: absensi %s / %s", ErrNotFound, meetingID, idNumber)
}

// DeleteAttendance menghapus satu baris absensi.
func (r *Repository) DeleteAttendance(ctx context.Context, meetingID, idNumber string) error {
	a, err := r.FindAttendance(ctx, meetingID, idNumber)
	if err != nil {
		return err
	}
	if err := r.store.DeleteAt(ctx, model.TableAttendance, a.RowPosition); err != nil {
		return err
	}
	log.Printf("[INFO] absensi %s / %s dihapus", a.MeetingID, a.IDNumber)
	return nil
}

func (r *Repository) readAttendance(ctx context.Context) ([]model.AttendanceModel, error) {
	sheet, err := r.readAttendanceSheet(ctx)
	if err != nil {
		return nil, err
	}
	cols := resolveColumns(sheet.Header, model.AttendanceHeader)
	out := make([]model.AttendanceModel, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		out = append(out, model.AttendanceModel{
			MeetingID:   cell(row, cols[0]),
			Name:        cell(row, cols[1]),
			IDNumber:    cell(row, cols[2]),
			Timestamp:   cell(row, cols[3]),
			Signature:   cell(row, cols[4]),
			RowPosition: row.Position,
		})
	}
	return out, nil
}

func (r *Repository) readAttendanceSheet(ctx context.Context) (sheetstore.Sheet, error) {
	if err := r.store.EnsureTable(ctx, model.TableAttendance, model.AttendanceHeader); err != nil {
		return sheetstore.Sheet{}, err
	}
	return r.store.Read(ctx, model.TableAttendance, model.AttendanceHeader)
}

// attendanceMeetingColumn = index kolom Meeting ID di Data_Absensi saat ini.
func (r *Repository) attendanceMeetingColumn(ctx context.Context) (int, error) {
	sheet, err := r.readAttendanceSheet(ctx)
	if err != nil {
		return 0, err
	}
	return resolveColumns(sheet.Header, model.AttendanceHeader)[0], nil
}
