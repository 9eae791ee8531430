package excel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"maintreport/internal/domain/reports"
)

const (
	sheetName = "Reports"
	// extra column width on top of the widest cell
	widthPadding = 2
)

// legacyHeader is the pre-Date schema some old workbooks still carry.
// Rows under it are projected onto the current header on load.
var legacyHeader = []string{"Unit", "Machine", "Technician", "Issue", "Report"}

// Store keeps the whole report log in a single xlsx workbook. Every
// append reads the file, adds one row and rewrites it via temp+rename.
// The mutex serializes that read-modify-rewrite so overlapping HTTP
// submissions cannot drop rows.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// LoadAll returns all records in file order. A missing workbook is an
// empty log; an unreadable one is logged and treated as empty.
func (s *Store) LoadAll(ctx context.Context) ([]*reports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Append adds one record and rewrites the workbook. Prior content that
// cannot be read is discarded (with a warning), not merged; write
// failures propagate to the caller.
func (s *Store) Append(ctx context.Context, rec *reports.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(append(s.load(), rec))
}

// load reads the workbook. Unreadable or schema-unknown content is
// warned about and discarded; the log keeps working.
func (s *Store) load() []*reports.Record {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		log.Printf("report log: discarding unreadable workbook %s: %v", s.path, err)
		return nil
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		log.Printf("report log: discarding unreadable sheet in %s: %v", s.path, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	switch {
	case headerEquals(rows[0], reports.Header):
		return parseRows(rows[1:], true)
	case headerEquals(rows[0], legacyHeader):
		return parseRows(rows[1:], false)
	default:
		log.Printf("report log: discarding %s: unknown header %v", s.path, rows[0])
		return nil
	}
}

// parseRows maps sheet rows onto records. withDate selects the current
// six-column layout; the legacy layout has no Date column.
func parseRows(rows [][]string, withDate bool) []*reports.Record {
	want := len(reports.Header)
	if !withDate {
		want = len(legacyHeader)
	}

	out := make([]*reports.Record, 0, len(rows))
	for _, row := range rows {
		// GetRows trims trailing empty cells
		for len(row) < want {
			row = append(row, "")
		}

		rec := &reports.Record{}
		cells := row
		if withDate {
			if ts, err := parseDate(row[0]); err == nil {
				rec.Date = ts
			}
			cells = row[1:]
		}
		rec.Unit = cells[0]
		rec.Machine = cells[1]
		rec.TechnicianName = cells[2]
		rec.Issue = cells[3]
		rec.GeneratedReport = cells[4]
		out = append(out, rec)
	}
	return out
}

// write rebuilds the workbook from scratch and swaps it into place.
func (s *Store) write(recs []*reports.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(reports.Header))
	for i, h := range reports.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range recs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := recordRow(rec)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := s.style(f, len(recs)); err != nil {
		return err
	}

	return s.replace(f)
}

// style applies the presentation rules: thin borders everywhere, wrapped
// and vertically centered cells, bold header, column width sized to the
// widest cell. None of it changes cell contents.
func (s *Store) style(f *excelize.File, rowCount int) error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	align := &excelize.Alignment{WrapText: true, Vertical: "center"}

	headStyle, err := f.NewStyle(&excelize.Style{Border: border, Alignment: align, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: border, Alignment: align})
	if err != nil {
		return fmt.Errorf("cell style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(reports.Header))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if rowCount > 0 {
		bottom, _ := excelize.CoordinatesToCellName(len(reports.Header), rowCount+1)
		if err := f.SetCellStyle(sheetName, "A2", bottom, cellStyle); err != nil {
			return fmt.Errorf("apply cell style: %w", err)
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("measure columns: %w", err)
	}
	for col := range reports.Header {
		width := 0
		for _, row := range rows {
			if col < len(row) {
				if n := utf8.RuneCountInString(row[col]); n > width {
					width = n
				}
			}
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, name, name, float64(width+widthPadding)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

// replace saves next to the target and renames over it, so a crash
// mid-save never truncates the live workbook.
func (s *Store) replace(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".reports-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

func recordRow(rec *reports.Record) []any {
	date := ""
	if !rec.Date.IsZero() {
		date = rec.Date.Format(reports.DateLayout)
	}
	return []any{date, rec.Unit, rec.Machine, rec.TechnicianName, rec.Issue, rec.GeneratedReport}
}

func parseDate(cell string) (time.Time, error) {
	return time.ParseInLocation(reports.DateLayout, strings.TrimSpace(cell), time.Local)
}

func headerEquals(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}
