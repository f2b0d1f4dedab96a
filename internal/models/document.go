package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Document holds the text extracted from one uploaded bill PDF.
// A Document is created per upload, identified by filename, and replaced
// wholesale when a file with a different name is uploaded.
type Document struct {
	Filename   string    `json:"filename"`
	Pages      []string  `json:"-"`         // Per-page text; pages that failed extraction are empty
	FullText   string    `json:"-"`         // Concatenated page text
	PageCount  int       `json:"page_count"`
	CharCount  int       `json:"char_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewDocument builds a Document from per-page extracted text.
// Empty pages are kept in position so PageCount reflects the source PDF.
func NewDocument(filename string, pages []string) *Document {
	var builder strings.Builder
	for _, page := range pages {
		if page == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(page)
	}

	fullText := builder.String()
	return &Document{
		Filename:   filename,
		Pages:      pages,
		FullText:   fullText,
		PageCount:  len(pages),
		CharCount:  len(fullText),
		UploadedAt: time.Now(),
	}
}

// Preview returns a bounded-length prefix of the full text, used to cap the
// cost of validation scoring on very large documents. The cut never splits a
// multi-byte rune.
func (d *Document) Preview(maxChars int) string {
	if maxChars <= 0 || len(d.FullText) <= maxChars {
		return d.FullText
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(d.FullText[cut]) {
		cut--
	}
	return d.FullText[:cut]
}

// Excerpt returns the full text truncated to the given character budget,
// used when interpolating the document into a prompt.
func (d *Document) Excerpt(budget int) string {
	return d.Preview(budget)
}
