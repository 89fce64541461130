package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

var ErrExportGenerateFail = fmt.Errorf("%w: failed to build the spreadsheet", pkgerrors.ErrRender)

// ExportService writes gathered snapshots as XLSX workbooks.
// One sheet per entity; the buffer is written to the response by the handler.
type ExportService interface {
	ExportTyphoon(ctx context.Context, typhoonID uint) (*bytes.Buffer, string, error)
	ExportYear(ctx context.Context, year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	snapshots SnapshotService
	logger    *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(snapshots SnapshotService, logger *zap.Logger) ExportService {
	return &exportService{snapshots: snapshots, logger: logger}
}

func (s *exportService) ExportTyphoon(ctx context.Context, typhoonID uint) (*bytes.Buffer, string, error) {
	snap, err := s.snapshots.GatherForTyphoon(ctx, typhoonID)
	if err != nil {
		return nil, "", err
	}
	buf, err := s.workbook(fmt.Sprintf("Typhoon %s", snap.Typhoon.Name), snap.Sections)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("sitrep_%s.xlsx", slugify(snap.Typhoon.Name)), nil
}

func (s *exportService) ExportYear(ctx context.Context, year int) (*bytes.Buffer, string, error) {
	snap, err := s.snapshots.GatherForYear(ctx, year)
	if err != nil {
		return nil, "", err
	}
	buf, err := s.workbook(fmt.Sprintf("Annual summary %d", year), snap.Sections)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("sitrep_%d.xlsx", year), nil
}

// ────────────────────── workbook ──────────────────────
//
// Layout per sheet:
//   - row 1: title merged across all columns
//   - row 2: column labels
//   - row 3+: one record per row, empty sheet shows "No records."

func (s *exportService) workbook(title string, sections []dto.SnapshotSection) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, s.fail(err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return nil, s.fail(err)
	}

	for i, sec := range sections {
		sheet := sec.Label
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, s.fail(err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, s.fail(err)
		}

		width := len(sec.Columns)
		if width == 0 {
			width = 1
		}
		_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s: %s", title, sec.Label))
		_ = f.MergeCell(sheet, "A1", cell(colName(width-1), 1))
		_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

		for c, col := range sec.Columns {
			name := colName(c)
			_ = f.SetCellValue(sheet, cell(name, 2), col.Label)
			_ = f.SetColWidth(sheet, name, name, 20)
		}
		_ = f.SetCellStyle(sheet, "A2", cell(colName(width-1), 2), headerStyle)

		if len(sec.Rows) == 0 {
			_ = f.SetCellValue(sheet, "A3", "No records.")
			continue
		}
		for r, row := range sec.Rows {
			for c, col := range sec.Columns {
				_ = f.SetCellValue(sheet, cell(colName(c), r+3), cellValue(row[col.Key]))
			}
		}
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, s.fail(err)
	}
	return buf, nil
}

func (s *exportService) fail(err error) error {
	s.logger.Error("build workbook failed", zap.Error(err))
	return ErrExportGenerateFail
}

// ── helpers ──

// cellValue keeps numbers numeric so spreadsheet sums work
func cellValue(v any) any {
	if f, ok := v.(float64); ok {
		return f
	}
	return formatCell(v)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
