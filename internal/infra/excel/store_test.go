package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maintreport/internal/domain/reports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "generated_reports.xlsx"))
}

func testRecord(unit string) *reports.Record {
	return &reports.Record{
		Date:            time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local),
		Unit:            unit,
		Machine:         "Compressor A1",
		TechnicianName:  "John Doe",
		Issue:           "High temperature issue",
		GeneratedReport: "Technician John Doe resolved high temperature issue on Compressor A1 in " + unit + ".",
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	s := newTestStore(t)

	recs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestAppendRoundTrip(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("Unit 5")

	require.NoError(t, s.Append(context.Background(), rec))

	recs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	require.Equal(t, rec.Unit, got.Unit)
	require.Equal(t, rec.Machine, got.Machine)
	require.Equal(t, rec.TechnicianName, got.TechnicianName)
	require.Equal(t, rec.Issue, got.Issue)
	require.Equal(t, rec.GeneratedReport, got.GeneratedReport)
	require.True(t, rec.Date.Truncate(time.Second).Equal(got.Date))
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testRecord("Unit 1")))
	require.NoError(t, s.Append(ctx, testRecord("Unit 2")))
	require.NoError(t, s.Append(ctx, testRecord("Unit 3")))

	recs, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "Unit 1", recs[0].Unit)
	require.Equal(t, "Unit 2", recs[1].Unit)
	require.Equal(t, "Unit 3", recs[2].Unit)
}

func TestAppendDiscardsCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("not a workbook"), 0o644))

	require.NoError(t, s.Append(context.Background(), testRecord("Unit 9")))

	recs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Unit 9", recs[0].Unit)
}

func TestLoadAllProjectsLegacyHeader(t *testing.T) {
	s := newTestStore(t)

	// old workbooks have no Date column and short column names
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]any{"Unit", "Machine", "Technician", "Issue", "Report"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]any{"Unit 2", "Pump B3", "Jane Roe", "Oil leak", "Jane Roe fixed the oil leak."}))
	require.NoError(t, f.SaveAs(s.Path()))
	require.NoError(t, f.Close())

	recs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Unit 2", recs[0].Unit)
	require.Equal(t, "Pump B3", recs[0].Machine)
	require.Equal(t, "Jane Roe", recs[0].TechnicianName)
	require.Equal(t, "Oil leak", recs[0].Issue)
	require.Equal(t, "Jane Roe fixed the oil leak.", recs[0].GeneratedReport)
	require.True(t, recs[0].Date.IsZero())
}

func TestAppendDiscardsUnknownHeader(t *testing.T) {
	s := newTestStore(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Foo", "Bar"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"x", "y"}))
	require.NoError(t, f.SaveAs(s.Path()))
	require.NoError(t, f.Close())

	require.NoError(t, s.Append(context.Background(), testRecord("Unit 4")))

	recs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Unit 4", recs[0].Unit)
}

func TestWriteAppliesFormatting(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("Unit 5")
	require.NoError(t, s.Append(context.Background(), rec))

	f, err := excelize.OpenFile(s.Path())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Equal(t, reports.Header, rows[0])

	// header bold
	styleID, err := f.GetCellStyle(sheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	require.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	require.True(t, style.Alignment.WrapText)
	require.Equal(t, "center", style.Alignment.Vertical)
	require.Len(t, style.Border, 4)

	// column width tracks the widest cell plus padding
	width, err := f.GetColWidth(sheetName, "B")
	require.NoError(t, err)
	require.InDelta(t, float64(len("Unit 5")+widthPadding), width, 0.01)
}
