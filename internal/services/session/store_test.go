package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

func testDoc(filename string) *models.Document {
	return models.NewDocument(filename, []string{"page one text"})
}

func testVerdict(accepted bool) *models.ValidationResult {
	return &models.ValidationResult{Accepted: accepted}
}

func testAnalysis() *models.Analysis {
	return &models.Analysis{
		RawText:     "SECTOR:\nFinance",
		Sections:    models.SectionMap{models.SectionSector: "Finance"},
		GeneratedAt: time.Now(),
	}
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore(arbor.NewLogger())

	_, ok := store.Document()
	assert.False(t, ok)
	_, ok = store.Validation()
	assert.False(t, ok)
	_, ok = store.Analysis()
	assert.False(t, ok)
}

func TestStoreSetDocument(t *testing.T) {
	store := NewStore(arbor.NewLogger())
	store.SetDocument(testDoc("bill.pdf"), testVerdict(true))

	doc, ok := store.Document()
	require.True(t, ok)
	assert.Equal(t, "bill.pdf", doc.Filename)

	verdict, ok := store.Validation()
	require.True(t, ok)
	assert.True(t, verdict.Accepted)
}

func TestStoreNewFilenameDropsAnalysis(t *testing.T) {
	store := NewStore(arbor.NewLogger())
	store.SetDocument(testDoc("first.pdf"), testVerdict(true))
	store.SetAnalysis(testAnalysis())

	store.SetDocument(testDoc("second.pdf"), testVerdict(true))

	_, ok := store.Analysis()
	assert.False(t, ok)

	doc, _ := store.Document()
	assert.Equal(t, "second.pdf", doc.Filename)
}

func TestStoreSameFilenameKeepsAnalysis(t *testing.T) {
	store := NewStore(arbor.NewLogger())
	store.SetDocument(testDoc("bill.pdf"), testVerdict(true))
	store.SetAnalysis(testAnalysis())

	store.SetDocument(testDoc("bill.pdf"), testVerdict(true))

	_, ok := store.Analysis()
	assert.True(t, ok)
}

func TestStoreClear(t *testing.T) {
	store := NewStore(arbor.NewLogger())
	store.SetDocument(testDoc("bill.pdf"), testVerdict(true))
	store.SetAnalysis(testAnalysis())

	store.Clear()

	_, ok := store.Document()
	assert.False(t, ok)
	_, ok = store.Analysis()
	assert.False(t, ok)
}
