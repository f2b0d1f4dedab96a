package analysis

import (
	"strings"

	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// ExtractSection returns the text between the first occurrence of target and
// the earliest following occurrence of any other header in headers. Returns
// the SectionNotAvailable sentinel when target does not occur at all.
//
// The model is instructed to emit headers verbatim but does not always
// comply, so matching degrades gracefully: exact match first, then with the
// trailing colon removed, then case-insensitive. Matches only count at line
// starts; section prose that mentions another header's word must not cut the
// section short. Extraction is pure and deterministic; identical inputs
// always produce identical output.
func ExtractSection(text, target string, headers []string) string {
	start, matched := findHeader(text, target)
	if start < 0 {
		return models.SectionNotAvailable
	}

	body := text[start+len(matched):]

	// Cut at the earliest occurrence of any other header after the target.
	end := len(body)
	for _, header := range headers {
		if header == target {
			continue
		}
		if idx, _ := findHeader(body, header); idx >= 0 && idx < end {
			end = idx
		}
	}

	return strings.TrimSpace(body[:end])
}

// ExtractSectionClean is ExtractSection with stray markdown emphasis markers
// stripped. The prompt forbids markdown but models occasionally emit it.
func ExtractSectionClean(text, target string, headers []string) string {
	section := ExtractSection(text, target, headers)
	if section == models.SectionNotAvailable {
		return section
	}
	return StripMarkdown(section)
}

// ExtractAll produces a total mapping over the requested header list: every
// header maps to extracted content or the sentinel.
func ExtractAll(text string, headers []string) models.SectionMap {
	sections := make(models.SectionMap, len(headers))
	for _, header := range headers {
		sections[header] = ExtractSectionClean(text, header, headers)
	}
	return sections
}

// findHeader locates the first occurrence of header in text, trying exact,
// colon-optional and case-insensitive forms in that order. Every form must
// begin a line, and the colon-less forms must occupy their line alone, so
// prose mentions of header words ("the banking sector", "government offices")
// are never mistaken for headers. Returns the match offset and the matched
// string (whose length may differ from header when the colon-optional form
// hit), or (-1, "").
func findHeader(text, header string) (int, string) {
	if idx := indexLineStart(text, header, false); idx >= 0 {
		return idx, header
	}

	bare := strings.TrimSuffix(header, ":")
	if bare != header {
		if idx := indexLineStart(text, bare, true); idx >= 0 {
			return idx, bare
		}
	}

	lower := strings.ToLower(text)
	if idx := indexLineStart(lower, strings.ToLower(header), false); idx >= 0 {
		return idx, text[idx : idx+len(header)]
	}
	if bare != header {
		if idx := indexLineStart(lower, strings.ToLower(bare), true); idx >= 0 {
			return idx, text[idx : idx+len(bare)]
		}
	}

	return -1, ""
}

// indexLineStart returns the offset of the first occurrence of sub that
// begins a line, or -1. With ownLine set the match must also end its line
// (trailing whitespace allowed).
func indexLineStart(text, sub string, ownLine bool) int {
	from := 0
	for {
		idx := strings.Index(text[from:], sub)
		if idx < 0 {
			return -1
		}
		idx += from
		if (idx == 0 || text[idx-1] == '\n') &&
			(!ownLine || restOfLineBlank(text, idx+len(sub))) {
			return idx
		}
		from = idx + 1
	}
}

func restOfLineBlank(text string, from int) bool {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// markdownMarkers are stripped in order; longer markers first so that `**`
// is removed before `*` can split it.
var markdownMarkers = []string{"***", "**", "__", "###", "##", "*"}

// StripMarkdown removes literal markdown emphasis and heading markers.
func StripMarkdown(text string) string {
	for _, marker := range markdownMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}

// HeadersPrefixFree reports whether no header in the list is a prefix of
// another. The extractor's boundary search is undefined when headers overlap
// this way, so the canonical lists must satisfy it.
func HeadersPrefixFree(headers []string) bool {
	for i, a := range headers {
		for j, b := range headers {
			if i == j {
				continue
			}
			if strings.HasPrefix(b, a) {
				return false
			}
		}
	}
	return true
}
