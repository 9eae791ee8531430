package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"maintreport/internal/domain/reports"
)

func TestBuildReportPromptEmbedsAllFields(t *testing.T) {
	p := BuildReportPrompt(reports.IncidentFields{
		Unit:           "Unit 5",
		Machine:        "Compressor A1",
		TechnicianName: "John Doe",
		Issue:          "High temperature issue",
	})

	require.Contains(t, p, "Unit 5")
	require.Contains(t, p, "Compressor A1")
	require.Contains(t, p, "John Doe")
	require.Contains(t, p, "High temperature issue")
	require.Contains(t, p, "one line only")
	require.Contains(t, p, "formal and technical")
}
