package models

import "time"

// Section header labels the LLM is instructed to emit verbatim. The extractor
// and the prompt template share these constants so the two can never drift.
const (
	SectionSector          = "SECTOR:"
	SectionObjective       = "OBJECTIVE:"
	SectionDetailedSummary = "DETAILED SUMMARY:"
	SectionImpactAnalysis  = "IMPACT ANALYSIS:"
	SectionBeneficiaries   = "BENEFICIARIES:"
	SectionAffectedGroups  = "AFFECTED GROUPS:"
	SectionPositives       = "POSITIVES:"
	SectionNegativesRisks  = "NEGATIVES / RISKS:"
)

// Impact sub-group labels nested inside the IMPACT ANALYSIS section.
const (
	ImpactCitizens   = "Citizens:"
	ImpactBusinesses = "Businesses:"
	ImpactGovernment = "Government:"
	ImpactIndustries = "Industries / Markets:"
	ImpactCivil      = "NGOs / Civil Society:"
)

// SectionNotAvailable is the sentinel returned when a requested header cannot
// be located in the model's response. A sentinel, not an empty string, so the
// UI can distinguish "not found" from "found and empty".
const SectionNotAvailable = "Not available"

// AnalysisHeaders is the canonical ordered header list. Order must match the
// order the prompt instructs the model to produce; extraction boundaries
// depend on it. No header may be a prefix of another (covered by tests).
func AnalysisHeaders() []string {
	return []string{
		SectionSector,
		SectionObjective,
		SectionDetailedSummary,
		SectionImpactAnalysis,
		SectionBeneficiaries,
		SectionAffectedGroups,
		SectionPositives,
		SectionNegativesRisks,
	}
}

// ImpactHeaders is the ordered sub-header list within IMPACT ANALYSIS.
func ImpactHeaders() []string {
	return []string{
		ImpactCitizens,
		ImpactBusinesses,
		ImpactGovernment,
		ImpactIndustries,
		ImpactCivil,
	}
}

// SectionMap maps each requested header to its extracted content or to the
// SectionNotAvailable sentinel. The mapping is total over the requested
// header list and derived deterministically from the raw response.
type SectionMap map[string]string

// Analysis is the parsed result of one LLM invocation for a document.
// Replaced when a new document is uploaded or a new invocation overwrites it.
type Analysis struct {
	RawText     string     `json:"raw_text"`
	Sections    SectionMap `json:"sections"`
	Impact      SectionMap `json:"impact"`
	Provider    string     `json:"provider"`
	Model       string     `json:"model"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Section returns the extracted content for a header, falling back to the
// sentinel for unknown headers.
func (a *Analysis) Section(header string) string {
	if a == nil || a.Sections == nil {
		return SectionNotAvailable
	}
	if content, ok := a.Sections[header]; ok {
		return content
	}
	if content, ok := a.Impact[header]; ok {
		return content
	}
	return SectionNotAvailable
}
