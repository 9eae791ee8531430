package reports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ai "maintreport/internal/domain/ai"
	domain "maintreport/internal/domain/reports"
	"maintreport/internal/infra/ai/prompt"
	"maintreport/internal/infra/excel"
)

type stubGenerator struct {
	out        string
	err        error
	lastPrompt string
	calls      int
}

func (g *stubGenerator) Generate(ctx context.Context, p string, _ ai.GenerateParams) (string, error) {
	g.calls++
	g.lastPrompt = p
	return g.out, g.err
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newTestService(t *testing.T, gen *stubGenerator) *Service {
	t.Helper()
	return &Service{
		Log:       excel.NewStore(filepath.Join(t.TempDir(), "generated_reports.xlsx")),
		Generator: gen,
		Clock:     fixedClock{at: time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)},
		Params:    ai.GenerateParams{MaxNewTokens: 128, Temperature: 0.7},
		Prompt:    prompt.BuildReportPrompt,
	}
}

var sampleCmd = SubmitCommand{
	Unit:           "Unit 5",
	Machine:        "Compressor A1",
	TechnicianName: "John Doe",
	Issue:          "High temperature issue",
}

func TestSubmitUsesGeneratedReport(t *testing.T) {
	gen := &stubGenerator{out: "Technician John Doe resolved the high temperature issue on Compressor A1 in Unit 5."}
	svc := newTestService(t, gen)

	res, err := svc.Submit(context.Background(), sampleCmd)
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)
	require.Equal(t, gen.out, res.Record.GeneratedReport)
	require.NotEmpty(t, res.Record.ID)
	require.Len(t, res.History, 1)
	require.Equal(t, gen.out, res.History[0].GeneratedReport)

	// prompt carries all four fields
	require.Contains(t, gen.lastPrompt, "Unit 5")
	require.Contains(t, gen.lastPrompt, "Compressor A1")
	require.Contains(t, gen.lastPrompt, "John Doe")
	require.Contains(t, gen.lastPrompt, "High temperature issue")
}

func TestSubmitFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	svc := newTestService(t, gen)

	res, err := svc.Submit(context.Background(), sampleCmd)
	require.NoError(t, err)
	require.Equal(t,
		"Issue reported and solved by John Doe: High temperature issue",
		res.Record.GeneratedReport)
}

func TestGenerateNeverErrors(t *testing.T) {
	gen := &stubGenerator{err: ai.ErrQuotaExceeded}
	svc := newTestService(t, gen)

	out := svc.Generate(context.Background(), domain.IncidentFields{
		Unit: "Unit 1", Machine: "Fan C2", TechnicianName: "Jane Roe", Issue: "Bearing noise",
	})
	require.Equal(t, "Issue reported and solved by Jane Roe: Bearing noise", out)
}

func TestGenerateTrimsToOneLine(t *testing.T) {
	gen := &stubGenerator{out: "\"Report line.\"\nExtra commentary that should be dropped."}
	svc := newTestService(t, gen)

	out := svc.Generate(context.Background(), domain.IncidentFields{
		Unit: "Unit 1", Machine: "Fan C2", TechnicianName: "Jane Roe", Issue: "Bearing noise",
	})
	require.Equal(t, "Report line.", out)
}

func TestSubmitAppendsInOrder(t *testing.T) {
	gen := &stubGenerator{out: "line"}
	svc := newTestService(t, gen)
	ctx := context.Background()

	first := sampleCmd
	second := sampleCmd
	second.Unit = "Unit 6"

	_, err := svc.Submit(ctx, first)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, second)
	require.NoError(t, err)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "Unit 5", history[0].Unit)
	require.Equal(t, "Unit 6", history[1].Unit)
}
