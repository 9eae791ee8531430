package reports

import (
	"fmt"
	"time"
)

// ID tipe untuk Record
type ReportID string

// IncidentFields is what the technician submits. All four fields are
// required free text; validation happens at the HTTP boundary.
type IncidentFields struct {
	Unit           string `json:"unit"`
	Machine        string `json:"machine"`
	TechnicianName string `json:"technician_name"`
	Issue          string `json:"issue"`
}

// Aggregate Root: Record
//
// One row of the maintenance log. Records are append-only: never updated,
// never deleted. The ID exists only in API responses; the workbook keeps
// the fixed column set below and nothing else.
type Record struct {
	ID              ReportID  `json:"id,omitempty"`
	Date            time.Time `json:"date"`
	Unit            string    `json:"unit"`
	Machine         string    `json:"machine"`
	TechnicianName  string    `json:"technician_name"`
	Issue           string    `json:"issue"`
	GeneratedReport string    `json:"generated_report"`
}

// Header is the canonical worksheet header, in column order.
var Header = []string{"Date", "Unit", "Machine", "Technician Name", "Issue", "Generated Report"}

// DateLayout is how Date is written into and parsed back from the workbook.
const DateLayout = "2006-01-02 15:04:05"

// FallbackReport builds the deterministic report used when remote text
// generation fails. Callers always get a usable one-liner.
func FallbackReport(f IncidentFields) string {
	return fmt.Sprintf("Issue reported and solved by %s: %s", f.TechnicianName, f.Issue)
}
