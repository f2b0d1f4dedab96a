package analysis

import (
	"strings"

	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// SummaryText assembles the plain-text report rendered into the exported
// PDF: every canonical section in order under its header, with the impact
// sub-groups expanded beneath IMPACT ANALYSIS.
func SummaryText(doc *models.Document, a *models.Analysis) string {
	var sb strings.Builder
	sb.WriteString("PARLIAMENT BILL SUMMARY\n\n")
	sb.WriteString("File: " + doc.Filename + "\n")
	sb.WriteString("Generated: " + a.GeneratedAt.Format("2006-01-02 15:04") + "\n\n")

	for _, header := range models.AnalysisHeaders() {
		sb.WriteString(header + "\n")
		if header == models.SectionImpactAnalysis {
			for _, sub := range models.ImpactHeaders() {
				sb.WriteString(sub + "\n")
				sb.WriteString(a.Section(sub) + "\n\n")
			}
			continue
		}
		sb.WriteString(a.Section(header) + "\n\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
