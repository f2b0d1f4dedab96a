package models

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("bill.pdf", []string{"first page", "", "third page"})

	assert.Equal(t, "bill.pdf", doc.Filename)
	assert.Equal(t, 3, doc.PageCount)
	assert.Equal(t, "first page\n\nthird page", doc.FullText)
	assert.Equal(t, len(doc.FullText), doc.CharCount)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestDocumentPreview(t *testing.T) {
	doc := NewDocument("bill.pdf", []string{"abcdefghij"})

	assert.Equal(t, "abcde", doc.Preview(5))
	assert.Equal(t, "abcdefghij", doc.Preview(100))
	assert.Equal(t, "abcdefghij", doc.Preview(0))
}

func TestDocumentPreviewRuneBoundary(t *testing.T) {
	// "é" spans bytes 3-4; a cut at 4 backs off rather than splitting it.
	doc := NewDocument("bill.pdf", []string{"café au lait"})

	preview := doc.Preview(4)
	assert.Equal(t, "caf", preview)
	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, "café", doc.Preview(5))
}

func TestAnalysisSectionFallback(t *testing.T) {
	a := &Analysis{
		Sections: SectionMap{SectionSector: "Finance"},
		Impact:   SectionMap{ImpactCitizens: "Deposits insured"},
	}

	assert.Equal(t, "Finance", a.Section(SectionSector))
	assert.Equal(t, "Deposits insured", a.Section(ImpactCitizens))
	assert.Equal(t, SectionNotAvailable, a.Section(SectionObjective))
	assert.Equal(t, SectionNotAvailable, a.Section("UNKNOWN:"))

	var nilAnalysis *Analysis
	assert.Equal(t, SectionNotAvailable, nilAnalysis.Section(SectionSector))
}
