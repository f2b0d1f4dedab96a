package interfaces

import "context"

// PDFExtractor extracts per-page text from uploaded PDF bytes.
type PDFExtractor interface {
	// ExtractPages returns one string per page, in document order. Pages that
	// cannot be decoded contribute empty strings rather than errors; only a
	// document that cannot be opened at all returns an error.
	ExtractPages(ctx context.Context, pdfContent []byte) ([]string, error)
}

// PDFWriter renders plain text into a downloadable PDF document.
type PDFWriter interface {
	// WriteText renders the given text line by line with fixed margins and a
	// fixed maximum characters per line, returning the PDF bytes.
	WriteText(text string) ([]byte, error)
}
