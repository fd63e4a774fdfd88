package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	newSheetRows = 1000
	newSheetCols = 20
)

// SheetsBackend = tabel di Google Sheets; satu worksheet per tabel.
type SheetsBackend struct {
	srv           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter

	mu       sync.Mutex
	sheetIDs map[string]int64 // title -> sheetId (dibutuhkan untuk hapus baris)
}

// NewSheetsBackend membuat client dari JSON service account lalu memastikan
// spreadsheet bisa diakses. perMinute membatasi jumlah call ke API.
func NewSheetsBackend(ctx context.Context, credentialsJSON []byte, spreadsheetID string, perMinute int) (*SheetsBackend, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("SPREADSHEET_KEY belum diset")
	}
	conf, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("credentials tidak valid: %w", err)
	}

	// client harus hidup selama proses, jangan pakai ctx request
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(context.Background())))
	if err != nil {
		return nil, fmt.Errorf("sheets.NewService: %w", err)
	}

	return newSheetsBackend(ctx, srv, spreadsheetID, perMinute)
}

func newSheetsBackend(ctx context.Context, srv *sheets.Service, spreadsheetID string, perMinute int) (*SheetsBackend, error) {
	if perMinute <= 0 {
		perMinute = 60
	}
	b := &SheetsBackend{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 10),
		sheetIDs:      map[string]int64{},
	}

	if err := b.loadSheetIDs(ctx); err != nil {
		return nil, describeSheetsError(err)
	}
	log.Printf("[SHEETS] terhubung ke spreadsheet %s (%d worksheet)", spreadsheetID, len(b.sheetIDs))
	return b, nil
}

func (b *SheetsBackend) Values(ctx context.Context, table string) ([][]string, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := b.srv.Spreadsheets.Values.Get(b.spreadsheetID, quoteTitle(table)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, describeSheetsError(err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			if s, ok := v.(string); ok {
				cells[j] = s
			} else if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out, nil
}

func (b *SheetsBackend) AppendRow(ctx context.Context, table string, row []string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := b.srv.Spreadsheets.Values.Append(b.spreadsheetID, quoteTitle(table)+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{toInterfaces(row)},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return describeSheetsError(err)
}

func (b *SheetsBackend) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = b.srv.Spreadsheets.Values.Update(b.spreadsheetID, quoteTitle(table)+"!"+cell, &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return describeSheetsError(err)
}

func (b *SheetsBackend) DeleteRow(ctx context.Context, table string, row int) error {
	sheetID, err := b.sheetID(ctx, table)
	if err != nil {
		return err
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = b.srv.Spreadsheets.BatchUpdate(b.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(row - 1),
					EndIndex:        int64(row),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}).Context(ctx).Do()
	return describeSheetsError(err)
}

func (b *SheetsBackend) EnsureTable(ctx context.Context, table string) (bool, error) {
	if _, err := b.sheetID(ctx, table); err == nil {
		return false, nil
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return false, err
	}
	resp, err := b.srv.Spreadsheets.BatchUpdate(b.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: table,
					GridProperties: &sheets.GridProperties{
						RowCount:    newSheetRows,
						ColumnCount: newSheetCols,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return false, describeSheetsError(err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		b.mu.Lock()
		b.sheetIDs[table] = resp.Replies[0].AddSheet.Properties.SheetId
		b.mu.Unlock()
	}
	log.Printf("[SHEETS] worksheet %s dibuat", table)
	return true, nil
}

func (b *SheetsBackend) WriteHeader(ctx context.Context, table string, header []string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := b.srv.Spreadsheets.Values.Update(b.spreadsheetID, quoteTitle(table)+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{toInterfaces(header)},
	}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return describeSheetsError(err)
}

func (b *SheetsBackend) sheetID(ctx context.Context, table string) (int64, error) {
	b.mu.Lock()
	id, ok := b.sheetIDs[table]
	b.mu.Unlock()
	if ok {
		return id, nil
	}
	if err := b.loadSheetIDs(ctx); err != nil {
		return 0, describeSheetsError(err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.sheetIDs[table]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("worksheet %q tidak ditemukan", table)
}

func (b *SheetsBackend) loadSheetIDs(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	ss, err := b.srv.Spreadsheets.Get(b.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		b.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
	}
	return nil
}

// describeSheetsError memberi pesan yang bisa ditindaklanjuti admin.
func describeSheetsError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusForbidden:
		return fmt.Errorf("akses ditolak: pastikan Google Sheets API aktif dan spreadsheet sudah di-share ke service account: %w", err)
	case http.StatusNotFound:
		return fmt.Errorf("spreadsheet tidak ditemukan: periksa SPREADSHEET_KEY: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("kuota Google Sheets habis, coba lagi sebentar: %w", err)
	}
	return err
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
