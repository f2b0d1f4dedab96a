// Package validation decides whether uploaded text is plausibly an official
// legislative bill before any model call is made.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// strongIndicators are regex patterns strongly correlated with authentic
// bill phrasing, as opposed to generic keywords.
var strongIndicators = []*regexp.Regexp{
	regexp.MustCompile(`a bill to\s`),
	regexp.MustCompile(`bill no\.\s*\d+`),
	regexp.MustCompile(`(as\s+)?introduced in (the\s+)?(lok|rajya) sabha`),
	regexp.MustCompile(`statement of objects and reasons`),
	regexp.MustCompile(`financial memorandum`),
	regexp.MustCompile(`be it enacted`),
	regexp.MustCompile(`this act may be called`),
	regexp.MustCompile(`arrangement of clauses`),
	regexp.MustCompile(`memorandum regarding delegated legislation`),
	regexp.MustCompile(`short title(,?\s+extent)?(\s+and commencement)?`),
}

// keywords is the broader vocabulary scored as plain substrings.
var keywords = []string{
	"bill",
	"act",
	"parliament",
	"lok sabha",
	"rajya sabha",
	"gazette",
	"legislative",
	"legislature",
	"enacted",
	"enactment",
	"ministry of law",
	"clause",
	"amendment",
	"commencement",
	"extent",
	"central government",
	"official gazette",
	"schedule",
	"provision",
	"notification",
}

// examplePatterns mark instructional or sample content that must be rejected
// even when legislative keywords are present.
var examplePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)question\s*:.*answer\s*:`),
	regexp.MustCompile(`example bill`),
	regexp.MustCompile(`sample bill`),
	regexp.MustCompile(`test document`),
	regexp.MustCompile(`for demonstration purposes`),
	regexp.MustCompile(`dummy text`),
}

// Category tables for strict mode: a real bill names itself, names its
// legislature, and uses enactment language. All three must co-occur.
var (
	identityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`a bill to\s`),
		regexp.MustCompile(`bill no\.\s*\d+`),
		regexp.MustCompile(`this act may be called`),
		regexp.MustCompile(`short title`),
	}
	institutionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`lok sabha`),
		regexp.MustCompile(`rajya sabha`),
		regexp.MustCompile(`parliament`),
		regexp.MustCompile(`legislative assembly`),
	}
	actionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`be it enacted`),
		regexp.MustCompile(`introduced in`),
		regexp.MustCompile(`passed by`),
		regexp.MustCompile(`received the assent`),
	}
)

// Acceptance thresholds. Two strong indicators plus five keywords is a
// confident accept; one strong indicator plus three keywords proceeds with a
// caveat.
const (
	acceptStrong  = 2
	acceptKeyword = 5
	likelyStrong  = 1
	likelyKeyword = 3
)

// Validator scores document text against the fixed pattern tables. It is a
// pure function of its input plus configuration; it never errors.
type Validator struct {
	config *common.ValidationConfig
	logger arbor.ILogger
}

// NewValidator creates a bill validator.
func NewValidator(config *common.ValidationConfig, logger arbor.ILogger) *Validator {
	return &Validator{
		config: config,
		logger: logger,
	}
}

// Validate classifies whether text is plausibly an official legislative bill.
func (v *Validator) Validate(text string) *models.ValidationResult {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) < v.config.MinLength {
		return &models.ValidationResult{
			Accepted:       false,
			Classification: models.ClassificationTooShort,
			Reason: fmt.Sprintf(
				"Document too short: %d characters of text extracted, at least %d required. The PDF may be scanned images rather than text.",
				len(trimmed), v.config.MinLength),
		}
	}

	preview := strings.ToLower(trimmed)
	if v.config.PreviewLength > 0 && len(preview) > v.config.PreviewLength {
		preview = preview[:v.config.PreviewLength]
	}

	for _, pattern := range examplePatterns {
		if pattern.MatchString(preview) {
			return &models.ValidationResult{
				Accepted:       false,
				Classification: models.ClassificationExample,
				Reason:         "Document appears to be example or instructional text, not an actual bill.",
			}
		}
	}

	strong := countPatternMatches(preview, strongIndicators)
	keyword := countKeywordMatches(preview, keywords)

	result := v.decide(preview, strong, keyword)

	v.logger.Debug().
		Int("strong_matches", strong).
		Int("keyword_matches", keyword).
		Str("classification", string(result.Classification)).
		Msg("Bill validation scored")

	return result
}

func (v *Validator) decide(preview string, strong, keyword int) *models.ValidationResult {
	if v.config.Strict && !hasAllCategories(preview) {
		return &models.ValidationResult{
			Accepted:       false,
			Classification: models.ClassificationInvalid,
			StrongMatches:  strong,
			KeywordMatches: keyword,
			Reason:         "Document lacks required bill phrasing: it must identify itself as a bill, name its legislature, and use enactment language.",
		}
	}

	switch {
	case strong >= acceptStrong && keyword >= acceptKeyword:
		return &models.ValidationResult{
			Accepted:       true,
			Classification: models.ClassificationAccepted,
			StrongMatches:  strong,
			KeywordMatches: keyword,
			Reason:         "Valid parliamentary bill.",
		}
	case strong >= likelyStrong && keyword >= likelyKeyword:
		return &models.ValidationResult{
			Accepted:       true,
			Classification: models.ClassificationLikely,
			StrongMatches:  strong,
			KeywordMatches: keyword,
			Reason:         "Possibly a bill: some legislative indicators found, proceeding.",
		}
	default:
		return &models.ValidationResult{
			Accepted:       false,
			Classification: models.ClassificationInvalid,
			StrongMatches:  strong,
			KeywordMatches: keyword,
			Reason:         "This doesn't appear to be a parliamentary bill. A valid bill carries phrases such as \"A Bill to\", \"Bill No.\", \"Statement of Objects and Reasons\" or \"Be it enacted\".",
		}
	}
}

// countPatternMatches counts how many distinct patterns match the text.
func countPatternMatches(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			count++
		}
	}
	return count
}

// countKeywordMatches counts how many distinct keywords occur in the text.
func countKeywordMatches(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}

// hasAllCategories reports whether the text matches at least one pattern in
// each of the identity, institution and action categories.
func hasAllCategories(text string) bool {
	return countPatternMatches(text, identityPatterns) >= 1 &&
		countPatternMatches(text, institutionPatterns) >= 1 &&
		countPatternMatches(text, actionPatterns) >= 1
}
