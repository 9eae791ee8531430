package reports

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	ai "maintreport/internal/domain/ai"
	domain "maintreport/internal/domain/reports"
)

// Service implements use-cases untuk report
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Log       domain.Log
	Generator ai.TextGenerator
	Archiver  domain.Archiver // optional, nil disables snapshots
	Clock     Clock
	Params    ai.GenerateParams
	Prompt    func(domain.IncidentFields) string
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

//
// ==== USE CASES ====
//

// SubmitCommand carries the validated incident fields from the boundary.
type SubmitCommand struct {
	Unit           string
	Machine        string
	TechnicianName string
	Issue          string
}

type SubmitResult struct {
	Record  *domain.Record   `json:"record"`
	History []*domain.Record `json:"history"`
}

// Submit generate report → append ke log → reload seluruh history.
// Generation never fails the submission: any backend error falls back to
// the deterministic one-liner. Append errors do propagate.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	fields := domain.IncidentFields{
		Unit:           cmd.Unit,
		Machine:        cmd.Machine,
		TechnicianName: cmd.TechnicianName,
		Issue:          cmd.Issue,
	}

	rec := &domain.Record{
		ID:              domain.ReportID(uuid.New().String()),
		Date:            s.Clock.Now(),
		Unit:            fields.Unit,
		Machine:         fields.Machine,
		TechnicianName:  fields.TechnicianName,
		Issue:           fields.Issue,
		GeneratedReport: s.Generate(ctx, fields),
	}

	if err := s.Log.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append report: %w", err)
	}

	s.snapshot(ctx, rec.Date)

	history, err := s.Log.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload reports: %w", err)
	}
	return &SubmitResult{Record: rec, History: history}, nil
}

// Generate returns the one-line report for the fields. One attempt, no
// retry; every failure path ends in the fallback string.
func (s *Service) Generate(ctx context.Context, fields domain.IncidentFields) string {
	out, err := s.Generator.Generate(ctx, s.Prompt(fields), s.Params)
	if err != nil {
		log.Printf("report generation failed, using fallback: %v", err)
		return domain.FallbackReport(fields)
	}
	return firstLine(out)
}

// History ambil semua record, urutan file
func (s *Service) History(ctx context.Context) ([]*domain.Record, error) {
	return s.Log.LoadAll(ctx)
}

// ExportPath is where the backing workbook lives for download.
func (s *Service) ExportPath() string {
	return s.Log.Path()
}

// snapshot uploads a copy of the workbook off-box. Failures are logged
// only; the submission already succeeded.
func (s *Service) snapshot(ctx context.Context, at time.Time) {
	if s.Archiver == nil {
		return
	}
	key := path.Join("reports", at.Format("20060102T150405")+".xlsx")
	if _, err := s.Archiver.Archive(ctx, s.Log.Path(), key); err != nil {
		log.Printf("workbook snapshot failed: %v", err)
	}
}

// firstLine collapses multi-line completions down to the report line.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return strings.Trim(s, `"`)
}
