// Package report renders normalized records as spreadsheets and console tables.
// Field values are written exactly as extracted.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kamusis/credscan/internal/record"
)

const defaultSheet = "Sheet1"

// separatorFill is the grey used for the header and for rows between file groups.
const separatorFill = "#DCDCDC"

// WorkbookOptions controls spreadsheet layout.
type WorkbookOptions struct {
	Sheet string
	// GroupBySource merges the first column over consecutive rows that share
	// a Source and puts a grey separator row between groups.
	GroupBySource bool
	// Columns is used for the header when records is empty.
	Columns []string
}

type workbookStyles struct {
	header    int
	border    int
	separator int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	grey := excelize.Fill{Type: "pattern", Color: []string{separatorFill}, Pattern: 1}

	var s workbookStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Border: borders, Fill: grey}); err != nil {
		return s, err
	}
	if s.border, err = f.NewStyle(&excelize.Style{Border: borders, Alignment: &excelize.Alignment{Vertical: "center"}}); err != nil {
		return s, err
	}
	if s.separator, err = f.NewStyle(&excelize.Style{Border: borders, Fill: grey}); err != nil {
		return s, err
	}
	return s, nil
}

// BuildWorkbook lays records out on a single sheet with a bold header row.
func BuildWorkbook(records []record.Reportable, opts WorkbookOptions) (*excelize.File, error) {
	columns := opts.Columns
	if len(records) > 0 {
		columns = records[0].Columns()
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to write")
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	w := &sheetWriter{f: f, sheet: sheet, width: len(columns), styles: styles}
	if err := w.writeRow(1, columns, styles.header); err != nil {
		f.Close()
		return nil, err
	}

	if opts.GroupBySource {
		err = w.writeGrouped(records)
	} else {
		err = w.writePlain(records)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, records []record.Reportable, opts WorkbookOptions) error {
	f, err := BuildWorkbook(records, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f      *excelize.File
	sheet  string
	width  int
	styles workbookStyles
}

func (w *sheetWriter) writeRow(row int, values []string, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(w.width, row)
	if err != nil {
		return err
	}

	cells := make([]interface{}, w.width)
	for i := range cells {
		if i < len(values) {
			cells[i] = values[i]
		} else {
			cells[i] = ""
		}
	}
	if err := w.f.SetSheetRow(w.sheet, start, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return w.f.SetCellStyle(w.sheet, start, end, style)
}

func (w *sheetWriter) writePlain(records []record.Reportable) error {
	for i, r := range records {
		if err := w.writeRow(i+2, r.Values(), w.styles.border); err != nil {
			return err
		}
	}
	return nil
}

// writeGrouped keeps record order. Consecutive records sharing a Source form
// one group; the first column of a multi-row group is merged vertically.
func (w *sheetWriter) writeGrouped(records []record.Reportable) error {
	row := 2
	for start := 0; start < len(records); {
		end := start + 1
		for end < len(records) && records[end].Source() == records[start].Source() {
			end++
		}

		if start > 0 {
			if err := w.writeRow(row, nil, w.styles.separator); err != nil {
				return err
			}
			row++
		}

		first := row
		for _, r := range records[start:end] {
			if err := w.writeRow(row, r.Values(), w.styles.border); err != nil {
				return err
			}
			row++
		}

		if end-start > 1 {
			top, _ := excelize.CoordinatesToCellName(1, first)
			bottom, _ := excelize.CoordinatesToCellName(1, row-1)
			if err := w.f.MergeCell(w.sheet, top, bottom); err != nil {
				return fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
			}
		}
		start = end
	}
	return nil
}
