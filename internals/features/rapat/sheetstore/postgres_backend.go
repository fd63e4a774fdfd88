package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SheetRowModel = satu baris tabel logis di PostgreSQL.
// Posisi mengikuti aturan sheet: 1-based, header = 1.
type SheetRowModel struct {
	SheetRowID       uint           `gorm:"column:sheet_row_id;primaryKey;autoIncrement"`
	SheetRowTable    string         `gorm:"column:sheet_row_table;type:varchar(100);not null;index:idx_sheet_rows_table_position,priority:1"`
	SheetRowPosition int            `gorm:"column:sheet_row_position;not null;index:idx_sheet_rows_table_position,priority:2"`
	SheetRowCells    pq.StringArray `gorm:"column:sheet_row_cells;type:text[]"`
	SheetRowUpdated  time.Time      `gorm:"column:sheet_row_updated_at;autoUpdateTime"`
}

func (SheetRowModel) TableName() string { return "sheet_rows" }

// SheetTableModel = registry tabel logis (untuk tahu tabel baru dibuat atau tidak).
type SheetTableModel struct {
	SheetTableName      string    `gorm:"column:sheet_table_name;type:varchar(100);primaryKey"`
	SheetTableCreatedAt time.Time `gorm:"column:sheet_table_created_at;autoCreateTime"`
}

func (SheetTableModel) TableName() string { return "sheet_tables" }

// PostgresBackend menyimpan tabel logis di PostgreSQL lewat gorm.
type PostgresBackend struct {
	DB *gorm.DB
}

func NewPostgresBackend(db *gorm.DB) (*PostgresBackend, error) {
	if db == nil {
		return nil, errors.New("koneksi database belum ada")
	}
	if err := db.AutoMigrate(&SheetTableModel{}, &SheetRowModel{}); err != nil {
		return nil, describePgError(err)
	}
	return &PostgresBackend{DB: db}, nil
}

func (p *PostgresBackend) Values(ctx context.Context, table string) ([][]string, error) {
	var rows []SheetRowModel
	if err := p.DB.WithContext(ctx).
		Where("sheet_row_table = ?", table).
		Order("sheet_row_position ASC").
		Find(&rows).Error; err != nil {
		return nil, describePgError(err)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r.SheetRowCells...)
	}
	return out, nil
}

func (p *PostgresBackend) AppendRow(ctx context.Context, table string, row []string) error {
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTable(tx, table); err != nil {
			return err
		}
		var maxPos int
		if err := tx.Model(&SheetRowModel{}).
			Where("sheet_row_table = ?", table).
			Select("COALESCE(MAX(sheet_row_position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		return tx.Create(&SheetRowModel{
			SheetRowTable:    table,
			SheetRowPosition: maxPos + 1,
			SheetRowCells:    pq.StringArray(row),
		}).Error
	})
	return describePgError(err)
}

func (p *PostgresBackend) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("sel di luar jangkauan: %d,%d", row, col)
	}
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m SheetRowModel
		err := tx.Where("sheet_row_table = ? AND sheet_row_position = ?", table, row).Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = SheetRowModel{SheetRowTable: table, SheetRowPosition: row}
		} else if err != nil {
			return err
		}
		cells := []string(m.SheetRowCells)
		for len(cells) < col {
			cells = append(cells, "")
		}
		cells[col-1] = value
		m.SheetRowCells = pq.StringArray(cells)
		return tx.Save(&m).Error
	})
	return describePgError(err)
}

func (p *PostgresBackend) DeleteRow(ctx context.Context, table string, row int) error {
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTable(tx, table); err != nil {
			return err
		}
		res := tx.Where("sheet_row_table = ? AND sheet_row_position = ?", table, row).Delete(&SheetRowModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("baris %d tidak ada di %s", row, table)
		}
		return tx.Model(&SheetRowModel{}).
			Where("sheet_row_table = ? AND sheet_row_position > ?", table, row).
			Update("sheet_row_position", gorm.Expr("sheet_row_position - 1")).Error
	})
	return describePgError(err)
}

func (p *PostgresBackend) EnsureTable(ctx context.Context, table string) (bool, error) {
	res := p.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SheetTableModel{SheetTableName: table})
	if res.Error != nil {
		return false, describePgError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (p *PostgresBackend) WriteHeader(ctx context.Context, table string, header []string) error {
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&SheetRowModel{}).
			Where("sheet_row_table = ? AND sheet_row_position = 1", table).
			Update("sheet_row_cells", pq.StringArray(header))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&SheetRowModel{
			SheetRowTable:    table,
			SheetRowPosition: 1,
			SheetRowCells:    pq.StringArray(header),
		}).Error
	})
	return describePgError(err)
}

// lockTable mengunci posisi baris satu tabel sampai transaksi selesai.
func lockTable(tx *gorm.DB, table string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", table).Error
}

func describePgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s (%s): %w", pgErr.Code, pgErr.Message, err)
	}
	return err
}
