package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

const sampleResponse = `SECTOR:
Finance and Banking

OBJECTIVE:
To regulate banks and protect depositors.

DETAILED SUMMARY:
The bill establishes a new supervisory framework for banks.
It also creates a depositor protection fund.

IMPACT ANALYSIS:
Citizens:
Deposits up to a limit are insured.
Businesses:
Compliance costs rise for small banks.
Government:
A new supervisory authority is created.
Industries / Markets:
Consolidation among smaller lenders is expected.
NGOs / Civil Society:
Consumer groups gain a formal complaint channel.

BENEFICIARIES:
Ordinary depositors and credit unions.

AFFECTED GROUPS:
Small banks facing higher compliance costs.

POSITIVES:
Greater stability in the banking sector.

NEGATIVES / RISKS:
Higher costs may be passed on to customers.`

func TestExtractSection(t *testing.T) {
	headers := models.AnalysisHeaders()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "first section",
			target: models.SectionSector,
			want:   "Finance and Banking",
		},
		{
			name:   "middle section",
			target: models.SectionObjective,
			want:   "To regulate banks and protect depositors.",
		},
		{
			name:   "multiline section",
			target: models.SectionDetailedSummary,
			want:   "The bill establishes a new supervisory framework for banks.\nIt also creates a depositor protection fund.",
		},
		{
			name:   "last section runs to end",
			target: models.SectionNegativesRisks,
			want:   "Higher costs may be passed on to customers.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSection(sampleResponse, tt.target, headers))
		})
	}
}

func TestExtractSectionMinimalBlob(t *testing.T) {
	headers := models.AnalysisHeaders()
	text := "SECTOR:\nFinance\n\nOBJECTIVE:\nTo regulate banks.\n\nPOSITIVES:\nStability."

	assert.Equal(t, "To regulate banks.", ExtractSection(text, models.SectionObjective, headers))
	assert.Equal(t, "Stability.", ExtractSection(text, models.SectionPositives, headers))
}

func TestExtractSectionMissingHeader(t *testing.T) {
	headers := models.AnalysisHeaders()
	text := "SECTOR:\nFinance\n\nPOSITIVES:\nStability."

	assert.Equal(t, models.SectionNotAvailable, ExtractSection(text, models.SectionObjective, headers))
	assert.Equal(t, "Finance", ExtractSection(text, models.SectionSector, headers))
}

func TestExtractSectionCaseInsensitiveFallback(t *testing.T) {
	headers := models.AnalysisHeaders()
	text := "Sector:\nAgriculture\n\nObjective:\nTo support farmers."

	assert.Equal(t, "Agriculture", ExtractSection(text, models.SectionSector, headers))
	assert.Equal(t, "To support farmers.", ExtractSection(text, models.SectionObjective, headers))
}

func TestExtractSectionColonOptional(t *testing.T) {
	headers := models.AnalysisHeaders()
	text := "SECTOR\nEnergy\n\nOBJECTIVE\nTo expand solar capacity."

	assert.Equal(t, "Energy", ExtractSection(text, models.SectionSector, headers))
}

func TestExtractSectionProseMentioningOtherHeaders(t *testing.T) {
	headers := models.AnalysisHeaders()

	// "sector" inside the POSITIVES prose must not end the section.
	assert.Equal(t, "Greater stability in the banking sector.",
		ExtractSection(sampleResponse, models.SectionPositives, headers))

	impact := models.ImpactHeaders()
	text := "Citizens:\nCitizens will deal less with government offices.\nBusinesses:\nFiling moves online for businesses and citizens alike."

	assert.Equal(t, "Citizens will deal less with government offices.",
		ExtractSection(text, models.ImpactCitizens, impact))
	assert.Equal(t, "Filing moves online for businesses and citizens alike.",
		ExtractSection(text, models.ImpactBusinesses, impact))
}

func TestExtractSectionBareWordInProseIsNotAHeader(t *testing.T) {
	headers := models.AnalysisHeaders()

	// Mid-sentence occurrence of a header word
	text := "The financial sector is growing.\nNothing here is structured."
	assert.Equal(t, models.SectionNotAvailable, ExtractSection(text, models.SectionSector, headers))

	// Header word starting a line but followed by prose
	text = "sector reform remains pending.\nMore unstructured prose."
	assert.Equal(t, models.SectionNotAvailable, ExtractSection(text, models.SectionSector, headers))
}

func TestExtractSectionHeaderMustStartLine(t *testing.T) {
	headers := models.AnalysisHeaders()
	text := "The report covers SECTOR: and more.\nSECTOR:\nFinance"

	// The inline mention is skipped; the line-anchored occurrence wins.
	assert.Equal(t, "Finance", ExtractSection(text, models.SectionSector, headers))
}

func TestExtractSectionDeterministic(t *testing.T) {
	headers := models.AnalysisHeaders()
	first := ExtractSection(sampleResponse, models.SectionImpactAnalysis, headers)
	second := ExtractSection(sampleResponse, models.SectionImpactAnalysis, headers)
	assert.Equal(t, first, second)
}

func TestExtractAllTotalMapping(t *testing.T) {
	headers := models.AnalysisHeaders()
	sections := ExtractAll("SECTOR:\nFinance", headers)

	assert.Len(t, sections, len(headers))
	assert.Equal(t, "Finance", sections[models.SectionSector])
	for _, header := range headers[1:] {
		assert.Equal(t, models.SectionNotAvailable, sections[header])
	}
}

func TestExtractImpactSubsections(t *testing.T) {
	headers := models.AnalysisHeaders()
	impactBody := ExtractSection(sampleResponse, models.SectionImpactAnalysis, headers)
	impact := ExtractAll(impactBody, models.ImpactHeaders())

	assert.Equal(t, "Deposits up to a limit are insured.", impact[models.ImpactCitizens])
	assert.Equal(t, "Consolidation among smaller lenders is expected.", impact[models.ImpactIndustries])
	assert.Equal(t, "Consumer groups gain a formal complaint channel.", impact[models.ImpactCivil])
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bold", in: "**Finance** and __Banking__", want: "Finance and Banking"},
		{name: "headings", in: "## SECTOR\n### detail", want: "SECTOR\n detail"},
		{name: "plain text untouched", in: "Finance and Banking", want: "Finance and Banking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdown(tt.in))
		})
	}
}

func TestCanonicalHeadersPrefixFree(t *testing.T) {
	assert.True(t, HeadersPrefixFree(models.AnalysisHeaders()))
	assert.True(t, HeadersPrefixFree(models.ImpactHeaders()))
}
