package prompt

import (
	"fmt"

	"maintreport/internal/domain/reports"
)

// BuildReportPrompt embeds the four incident fields into the instruction
// prompt sent to every backend. The output contract is a single formal
// line suitable for a maintenance log.
func BuildReportPrompt(f reports.IncidentFields) string {
	return fmt.Sprintf(`You are an expert electrical maintenance engineer. Your task is to generate a concise and professional one-line report based on the details provided by the technician.

Details Provided:
- Unit: %s
- Machine: %s
- Technician Name: %s
- Issue Reported: %s

Instructions:
- Write the report in a clear and professional tone.
- Include key details, such as the unit, machine, and issue.
- Maintain a formal and technical style, suitable for maintenance logs.
- Keep the report concise (one line only).

Example Output:
"Technician %s diagnosed %s on %s in %s, performed necessary maintenance, and restored functionality."

Now, generate a similar report based on the given details. Respond with the report line only, no quotes and no commentary.`,
		f.Unit, f.Machine, f.TechnicianName, f.Issue,
		f.TechnicianName, f.Issue, f.Machine, f.Unit,
	)
}
