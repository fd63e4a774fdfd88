package controller

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notulensi_backend/internals/features/rapat/meetings/repository"
	"notulensi_backend/internals/features/rapat/sheetstore"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeArchiver struct {
	calls    int
	filename string
	size     int
	err      error
}

func (f *fakeArchiver) ArchivePDF(_ context.Context, meetingID, filename string, data []byte) (string, error) {
	f.calls++
	f.filename = filename
	f.size = len(data)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.test/notulensi/" + meetingID + "/" + filename, nil
}

func seededRepo(t *testing.T, withAttendance bool) (*repository.Repository, string) {
	t.Helper()
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	repo := repository.New(sheetstore.NewStore(sheetstore.NewMemoryBackend()), func() time.Time { return now })
	ctx := context.Background()

	m, err := repo.CreateMeeting(ctx, repository.MeetingInput{
		Title:    "Rapat Evaluasi Tengah Semester",
		Location: "Ruang Guru",
		Chair:    "Hendra Gunawan, M.Pd",
	})
	require.NoError(t, err)

	if withAttendance {
		_, err = repo.RecordAttendance(ctx, repository.AttendanceInput{
			MeetingID: m.MeetingID,
			Name:      "Siti Nurhaliza, M.Pd",
			IDNumber:  "198203052005012003",
			Signature: signatureB64(t),
		})
		require.NoError(t, err)
	}
	return repo, m.MeetingID
}

func signatureB64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 20; x < 180; x++ {
		img.Set(x, 40, color.Black)
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newDocApp(repo *repository.Repository, archiver Archiver) *fiber.App {
	ctl := NewDocumentController(repo, archiver, "https://absensi.sdnsimoangin.sch.id")
	app := fiber.New()
	app.Get("/meetings/:id/qr", ctl.QR)
	app.Get("/meetings/:id/export", ctl.Export)
	app.Post("/meetings/:id/minutes", ctl.Minutes)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestQR(t *testing.T) {
	repo, id := seededRepo(t, false)
	app := newDocApp(repo, nil)

	resp, body := send(t, app, http.MethodGet, "/meetings/"+id+"/qr", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "https://absensi.sdnsimoangin.sch.id?page=attendance&meeting_id="+id, resp.Header.Get("X-Attendance-Link"))
	_, err := png.Decode(bytes.NewReader(body))
	assert.NoError(t, err)

	resp, _ = send(t, app, http.MethodGet, "/meetings/MTG00000000000000/qr", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestExport(t *testing.T) {
	repo, id := seededRepo(t, true)
	app := newDocApp(repo, nil)

	resp, body := send(t, app, http.MethodGet, "/meetings/"+id+"/export", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "daftar_hadir_"+id+".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("Daftar Hadir", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Siti Nurhaliza, M.Pd", name)
}

func TestExport_EmptyAttendance(t *testing.T) {
	repo, id := seededRepo(t, false)
	app := newDocApp(repo, nil)

	resp, body := send(t, app, http.MethodGet, "/meetings/"+id+"/export", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Belum ada data absensi.")
}

func TestMinutes_PDFDownload(t *testing.T) {
	repo, id := seededRepo(t, true)
	app := newDocApp(repo, nil)

	resp, body := send(t, app, http.MethodPost, "/meetings/"+id+"/minutes", `{"notes":"1. Jadwal ujian disepakati.\n2. Remedial minggu depan."}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Notulensi_Rapat_")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestMinutes_NotesRequired(t *testing.T) {
	repo, id := seededRepo(t, true)
	app := newDocApp(repo, nil)

	resp, _ := send(t, app, http.MethodPost, "/meetings/"+id+"/minutes", `{"notes":"   "}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMinutes_Archive(t *testing.T) {
	repo, id := seededRepo(t, true)

	t.Run("tanpa OSS", func(t *testing.T) {
		resp, _ := send(t, newDocApp(repo, nil), http.MethodPost, "/meetings/"+id+"/minutes", `{"notes":"ok","archive":true}`)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("sukses", func(t *testing.T) {
		arc := &fakeArchiver{}
		resp, body := send(t, newDocApp(repo, arc), http.MethodPost, "/meetings/"+id+"/minutes", `{"notes":"ok","archive":true}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, 1, arc.calls)
		assert.Greater(t, arc.size, 0)

		var env struct {
			Data struct {
				URL          string `json:"url"`
				Participants int    `json:"participants"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &env))
		assert.Equal(t, "https://cdn.example.test/notulensi/"+id+"/"+arc.filename, env.Data.URL)
		assert.Equal(t, 1, env.Data.Participants)
	})

	t.Run("upload gagal", func(t *testing.T) {
		arc := &fakeArchiver{err: errors.New("connection reset")}
		resp, _ := send(t, newDocApp(repo, arc), http.MethodPost, "/meetings/"+id+"/minutes", `{"notes":"ok","archive":true}`)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})
}
