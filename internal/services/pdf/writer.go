package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
)

// Writer renders plain analysis text into a downloadable PDF using fpdf.
type Writer struct {
	config *common.ExportConfig
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.PDFWriter = (*Writer)(nil)

// NewWriter creates a new summary PDF writer.
func NewWriter(config *common.ExportConfig, logger arbor.ILogger) *Writer {
	return &Writer{
		config: config,
		logger: logger,
	}
}

// WriteText renders text line by line into an A4 portrait document. Long
// lines are hard-wrapped at the configured character limit and leading "- "
// bullets become bullet glyphs. Page breaks are automatic.
func (w *Writer) WriteText(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	// Core fonts are cp1252; the translator maps the bullet glyph
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range WrapLines(text, w.config.MaxLineChars) {
		if strings.HasPrefix(line, "- ") {
			line = "• " + line[2:]
		}
		if line == "" {
			pdf.Ln(4)
			continue
		}
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	w.logger.Debug().
		Int("text_chars", len(text)).
		Int("pdf_bytes", buf.Len()).
		Msg("Rendered summary PDF")

	return buf.Bytes(), nil
}

// WrapLines splits text into lines of at most max bytes. Wrapping is a hard
// cut backed off to a rune boundary, so joining the pieces of any input line
// reproduces it exactly and no multi-byte rune is split. max <= 0 disables
// wrapping.
func WrapLines(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if max <= 0 || len(line) <= max {
			out = append(out, line)
			continue
		}
		for len(line) > max {
			cut := max
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				// A single rune wider than max; emit it whole
				_, cut = utf8.DecodeRuneInString(line)
			}
			out = append(out, line[:cut])
			line = line[cut:]
		}
		out = append(out, line)
	}
	return out
}
