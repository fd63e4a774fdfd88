package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"notulensi_backend/internals/features/rapat/meetings/model"
	"notulensi_backend/internals/features/rapat/sheetstore"
	"notulensi_backend/internals/helpers/dbtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRepo(now time.Time) (*Repository, *sheetstore.MemoryBackend) {
	mem := sheetstore.NewMemoryBackend()
	return New(sheetstore.NewStore(mem), fixedClock(now)), mem
}

var sampleSignature = strings.Repeat("iVBORw0KGgo", 30)

func sampleMeeting() MeetingInput {
	return MeetingInput{
		Title:    "Rapat Koordinasi Semester Genap",
		Date:     "01-01-2025",
		Time:     "12:00",
		Location: "Ruang Guru",
		Chair:    "Drs. Bambang Sutopo, M.Pd",
	}
}

func countRows(values [][]string, col int, key string) int {
	n := 0
	for i, r := range values {
		if i == 0 || col >= len(r) {
			continue
		}
		if strings.TrimSpace(r[col]) == key {
			n++
		}
	}
	return n
}

func TestGenerateMeetingID(t *testing.T) {
	at := time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC) // 12:00 WIB
	assert.Equal(t, "MTG20250101120000", GenerateMeetingID(at))
}

func TestCreateMeeting(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, dbtime.SchoolLocation())
	repo, mem := newTestRepo(now)

	m, err := repo.CreateMeeting(ctx, sampleMeeting())
	require.NoError(t, err)

	assert.Equal(t, "MTG20250101120000", m.MeetingID)
	assert.Equal(t, model.StatusActive, m.Status)
	assert.Equal(t, "2025-01-01 12:00:00", m.CreatedAt)

	values, _ := mem.Values(ctx, model.TableMeetings)
	require.Len(t, values, 2)
	assert.Equal(t, model.MeetingHeader, values[0])
	assert.Equal(t, []string{
		"MTG20250101120000", "Rapat Koordinasi Semester Genap", "01-01-2025", "12:00",
		"Ruang Guru", "Drs. Bambang Sutopo, M.Pd", "2025-01-01 12:00:00", "Aktif",
	}, values[1])
}

func TestCreateMeeting_DefaultsDateAndTime(t *testing.T) {
	now := time.Date(2025, 3, 4, 8, 30, 0, 0, dbtime.SchoolLocation())
	repo, _ := newTestRepo(now)

	in := sampleMeeting()
	in.Date, in.Time = "", ""
	m, err := repo.CreateMeeting(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "04-03-2025", m.Date)
	assert.Equal(t, "08:30", m.Time)
}

func TestCreateMeeting_Validation(t *testing.T) {
	repo, mem := newTestRepo(time.Now())

	_, err := repo.CreateMeeting(context.Background(), MeetingInput{Title: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "title")
	assert.Contains(t, fe, "location")
	assert.Contains(t, fe, "chair")

	values, _ := mem.Values(context.Background(), model.TableMeetings)
	assert.Empty(t, values)
}

func TestFindMeeting_TolerantToSheetDrift(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Now())
	mem.Seed(model.TableMeetings, [][]string{
		{" meeting id ", "JUDUL", "Tanggal", "Waktu", "Lokasi", "Pimpinan"},
		{},
		{" MTG1 ", "Rapat A", "01-01-2025", "08:00", "Aula", "Bu Siti"},
	})

	m, err := repo.FindMeeting(ctx, "MTG1")
	require.NoError(t, err)
	assert.Equal(t, "Rapat A", m.Title)
	assert.Equal(t, 3, m.RowPosition)
	assert.Equal(t, model.StatusActive, m.Status)

	_, err = repo.FindMeeting(ctx, "MTG404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMeeting_PreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Date(2025, 1, 1, 12, 0, 0, 0, dbtime.SchoolLocation()))
	m, err := repo.CreateMeeting(ctx, sampleMeeting())
	require.NoError(t, err)

	upd := MeetingUpdate{MeetingInput: sampleMeeting(), Status: model.StatusCompleted}
	upd.Title = "Rapat Evaluasi"
	got, err := repo.UpdateMeeting(ctx, m.MeetingID, upd)
	require.NoError(t, err)

	assert.Equal(t, m.CreatedAt, got.CreatedAt)
	assert.Equal(t, model.StatusCompleted, got.Status)

	values, _ := mem.Values(ctx, model.TableMeetings)
	assert.Equal(t, "Rapat Evaluasi", values[1][1])
	assert.Equal(t, "2025-01-01 12:00:00", values[1][6])
	assert.Equal(t, "Selesai", values[1][7])
}

func TestUpdateMeeting_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.MeetingStatus
		to      model.MeetingStatus
		wantErr bool
	}{
		{"active to completed", model.StatusActive, model.StatusCompleted, false},
		{"active to cancelled", model.StatusActive, model.StatusCancelled, false},
		{"same status", model.StatusCompleted, model.StatusCompleted, false},
		{"completed is terminal", model.StatusCompleted, model.StatusActive, true},
		{"cancelled is terminal", model.StatusCancelled, model.StatusCompleted, true},
		{"unknown target", model.StatusActive, model.MeetingStatus("Ditunda"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo, mem := newTestRepo(time.Now())
			mem.Seed(model.TableMeetings, [][]string{
				model.MeetingHeader,
				{"MTG1", "Rapat", "01-01-2025", "08:00", "Aula", "Bu Siti", "2025-01-01 07:00:00", string(tt.from)},
			})

			_, err := repo.UpdateMeeting(ctx, "MTG1", MeetingUpdate{MeetingInput: sampleMeeting(), Status: tt.to})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecordAttendance_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Date(2025, 1, 1, 12, 0, 0, 0, dbtime.SchoolLocation()))
	m, err := repo.CreateMeeting(ctx, sampleMeeting())
	require.NoError(t, err)

	in := AttendanceInput{MeetingID: m.MeetingID, Name: "Budi Santoso, S.Pd", IDNumber: "12345", Signature: sampleSignature}
	_, err = repo.RecordAttendance(ctx, in)
	require.NoError(t, err)

	in.IDNumber = " 12345 "
	_, err = repo.RecordAttendance(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateAttendance)

	values, _ := mem.Values(ctx, model.TableAttendance)
	assert.Equal(t, 1, countRows(values, 2, "12345"))
}

func TestRecordAttendance_Errors(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(time.Now())

	_, err := repo.RecordAttendance(ctx, AttendanceInput{MeetingID: "MTG1", Name: "Budi", IDNumber: "1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.RecordAttendance(ctx, AttendanceInput{MeetingID: "MTG404", Name: "Budi", IDNumber: "1", Signature: sampleSignature})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAttendance(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Now())
	mem.Seed(model.TableMeetings, [][]string{model.MeetingHeader, {"MTG1", "Rapat"}})
	mem.Seed(model.TableAttendance, [][]string{
		model.AttendanceHeader,
		{"MTG1", "A", "1", "t", "s"},
		{"MTG1", "B", "2", "t", "s"},
	})

	require.NoError(t, repo.DeleteAttendance(ctx, "MTG1", "2"))
	assert.ErrorIs(t, repo.DeleteAttendance(ctx, "MTG1", "2"), ErrNotFound)

	list, err := repo.ListAttendance(ctx, "MTG1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Name)
}

func TestDeleteMeeting_Cascade(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Now())
	mem.Seed(model.TableMeetings, [][]string{
		model.MeetingHeader,
		{"MTG1", "Rapat 1"},
		{"MTG2", "Rapat 2"},
	})
	mem.Seed(model.TableAttendance, [][]string{
		model.AttendanceHeader,
		{"MTG1", "A", "1"},
		{"MTG2", "B", "2"},
		{"MTG1", "C", "3"},
	})

	removed, err := repo.DeleteMeeting(ctx, "MTG1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	att, _ := mem.Values(ctx, model.TableAttendance)
	assert.Equal(t, [][]string{model.AttendanceHeader, {"MTG2", "B", "2"}}, att)
	meetings, _ := mem.Values(ctx, model.TableMeetings)
	assert.Equal(t, 0, countRows(meetings, 0, "MTG1"))
	assert.Equal(t, 1, countRows(meetings, 0, "MTG2"))
}

// Skenario lengkap: buat rapat, absen, absen ulang ditolak, hapus rapat.
func TestMeetingLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(time.Date(2025, 1, 1, 12, 0, 0, 0, dbtime.SchoolLocation()))

	m, err := repo.CreateMeeting(ctx, sampleMeeting())
	require.NoError(t, err)
	require.Equal(t, "MTG20250101120000", m.MeetingID)

	in := AttendanceInput{MeetingID: "MTG20250101120000", Name: "Budi", IDNumber: "12345", Signature: sampleSignature}
	_, err = repo.RecordAttendance(ctx, in)
	require.NoError(t, err)

	_, err = repo.RecordAttendance(ctx, in)
	require.ErrorIs(t, err, ErrDuplicateAttendance)

	_, err = repo.DeleteMeeting(ctx, "MTG20250101120000")
	require.NoError(t, err)

	att, _ := mem.Values(ctx, model.TableAttendance)
	assert.Equal(t, 0, countRows(att, 0, "MTG20250101120000"))
	meetings, _ := mem.Values(ctx, model.TableMeetings)
	assert.Equal(t, 0, countRows(meetings, 0, "MTG20250101120000"))

	_, err = repo.FindMeeting(ctx, "MTG20250101120000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_StoreUnavailable(t *testing.T) {
	repo := New(sheetstore.NewStore(sheetstore.UnavailableBackend{Cause: errors.New("invalid_grant")}), nil)

	_, err := repo.ListMeetings(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateMeeting_NormalizesSchedule(t *testing.T) {
	repo, _ := newTestRepo(time.Date(2025, 1, 1, 12, 0, 0, 0, dbtime.SchoolLocation()))

	in := sampleMeeting()
	in.Date, in.Time = "2025-02-14", "09:15:00"
	m, err := repo.CreateMeeting(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "14-02-2025", m.Date)
	assert.Equal(t, "09:15", m.Time)

	in.Date, in.Time = "besok", "jam 9"
	_, err = repo.CreateMeeting(context.Background(), in)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "date")
	assert.Contains(t, fe, "time")
}
