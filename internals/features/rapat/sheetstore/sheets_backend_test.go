package sheetstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type sheetsCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// fakeSheetsAPI meniru endpoint Sheets v4 yang dipakai backend.
type fakeSheetsAPI struct {
	mu    sync.Mutex
	calls []sheetsCall
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, sheetsCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/FORBIDDEN"):
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/v4/spreadsheets/SHEET1":
		_, _ = io.WriteString(w, `{"sheets":[
			{"properties":{"sheetId":0,"title":"Meetings"}},
			{"properties":{"sheetId":42,"title":"Attendance"}}]}`)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		_, _ = io.WriteString(w, `{"values":[["Meeting ID","Judul"],["MTG1",123]]}`)
	case strings.HasSuffix(r.URL.Path, ":batchUpdate") && strings.Contains(string(body), "addSheet"):
		_, _ = io.WriteString(w, `{"replies":[{"addSheet":{"properties":{"sheetId":77,"title":"Arsip"}}}]}`)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func (f *fakeSheetsAPI) last() sheetsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeSheetsAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newFakeSheetsBackend(t *testing.T, spreadsheetID string) (*SheetsBackend, *fakeSheetsAPI, error) {
	t.Helper()
	api := &fakeSheetsAPI{}
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithEndpoint(ts.URL+"/"), option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	b, err := newSheetsBackend(ctx, srv, spreadsheetID, 6000)
	return b, api, err
}

func TestSheetsBackend_Values(t *testing.T) {
	b, api, err := newFakeSheetsBackend(t, "SHEET1")
	require.NoError(t, err)

	got, err := b.Values(context.Background(), "Meetings")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Meeting ID", "Judul"}, {"MTG1", "123"}}, got)

	call := api.last()
	assert.Equal(t, "/v4/spreadsheets/SHEET1/values/'Meetings'", call.Path)
	assert.Equal(t, "FORMATTED_VALUE", call.Query.Get("valueRenderOption"))
}

func TestSheetsBackend_UpdateCell_A1(t *testing.T) {
	b, api, err := newFakeSheetsBackend(t, "SHEET1")
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		row, col int
		path     string
	}{
		{3, 2, "/v4/spreadsheets/SHEET1/values/'Meetings'!B3"},
		{1, 27, "/v4/spreadsheets/SHEET1/values/'Meetings'!AA1"},
	}
	for _, tt := range tests {
		require.NoError(t, b.UpdateCell(ctx, "Meetings", tt.row, tt.col, "Selesai"))
		call := api.last()
		assert.Equal(t, http.MethodPut, call.Method)
		assert.Equal(t, tt.path, call.Path)
		assert.Equal(t, "RAW", call.Query.Get("valueInputOption"))

		var vr sheets.ValueRange
		require.NoError(t, json.Unmarshal(call.Body, &vr))
		assert.Equal(t, [][]interface{}{{"Selesai"}}, vr.Values)
	}

	assert.Error(t, b.UpdateCell(ctx, "Meetings", 0, 1, "x"))
}

func TestSheetsBackend_AppendAndHeader(t *testing.T) {
	b, api, err := newFakeSheetsBackend(t, "SHEET1")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.AppendRow(ctx, "Attendance", []string{"MTG1", "Budi", "123"}))
	call := api.last()
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/v4/spreadsheets/SHEET1/values/'Attendance'!A1:append", call.Path)
	assert.Equal(t, "INSERT_ROWS", call.Query.Get("insertDataOption"))

	require.NoError(t, b.WriteHeader(ctx, "Attendance", []string{"Meeting ID", "Nama"}))
	call = api.last()
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/v4/spreadsheets/SHEET1/values/'Attendance'!A1", call.Path)
}

func TestSheetsBackend_DeleteRow_ZeroBasedRange(t *testing.T) {
	b, api, err := newFakeSheetsBackend(t, "SHEET1")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.DeleteRow(ctx, "Attendance", 3))
	call := api.last()
	assert.Equal(t, "/v4/spreadsheets/SHEET1:batchUpdate", call.Path)

	var req sheets.BatchUpdateSpreadsheetRequest
	require.NoError(t, json.Unmarshal(call.Body, &req))
	require.Len(t, req.Requests, 1)
	rng := req.Requests[0].DeleteDimension.Range
	assert.Equal(t, int64(42), rng.SheetId)
	assert.Equal(t, "ROWS", rng.Dimension)
	assert.Equal(t, int64(2), rng.StartIndex)
	assert.Equal(t, int64(3), rng.EndIndex)

	// sheetId 0 tetap harus terkirim
	require.NoError(t, b.DeleteRow(ctx, "Meetings", 2))
	body := string(api.last().Body)
	assert.Contains(t, body, `"sheetId":0`)
	assert.Contains(t, body, `"startIndex":1`)

	assert.Error(t, b.DeleteRow(ctx, "TidakAda", 2))
}

func TestSheetsBackend_EnsureTable(t *testing.T) {
	b, api, err := newFakeSheetsBackend(t, "SHEET1")
	require.NoError(t, err)
	ctx := context.Background()

	before := api.count()
	created, err := b.EnsureTable(ctx, "Meetings")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, before, api.count())

	created, err = b.EnsureTable(ctx, "Arsip")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, string(api.last().Body), `"title":"Arsip"`)

	require.NoError(t, b.DeleteRow(ctx, "Arsip", 2))
	assert.Contains(t, string(api.last().Body), `"sheetId":77`)
}

func TestNewSheetsBackend_PermissionDenied(t *testing.T) {
	_, _, err := newFakeSheetsBackend(t, "FORBIDDEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "akses ditolak")

	var gerr *googleapi.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusForbidden, gerr.Code)
}

func TestDescribeSheetsError(t *testing.T) {
	assert.NoError(t, describeSheetsError(nil))

	plain := errors.New("dial tcp: timeout")
	assert.Same(t, plain, describeSheetsError(plain))

	tests := []struct {
		code int
		want string
	}{
		{http.StatusForbidden, "akses ditolak"},
		{http.StatusNotFound, "SPREADSHEET_KEY"},
		{http.StatusTooManyRequests, "kuota Google Sheets"},
	}
	for _, tt := range tests {
		err := describeSheetsError(&googleapi.Error{Code: tt.code})
		assert.Contains(t, err.Error(), tt.want)
	}

	internal := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(internal), describeSheetsError(internal))
}
