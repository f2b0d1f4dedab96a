package models

// Classification is the coarse verdict the bill validator attaches to a
// document.
type Classification string

const (
	// ClassificationAccepted means the text matched enough strong indicators
	// and keywords to be treated as an official bill.
	ClassificationAccepted Classification = "accepted"

	// ClassificationLikely means the text matched the lower threshold; the
	// document is accepted with a caveat.
	ClassificationLikely Classification = "likely"

	// ClassificationExample means the text looks like example or
	// instructional content rather than an actual bill.
	ClassificationExample Classification = "example"

	// ClassificationTooShort means the trimmed text fell below the minimum
	// length threshold.
	ClassificationTooShort Classification = "too_short"

	// ClassificationInvalid means the text lacks legislative indicators.
	ClassificationInvalid Classification = "invalid"
)

// ValidationResult is the validator's verdict for one document. Produced once
// per upload and never mutated.
type ValidationResult struct {
	Accepted       bool           `json:"accepted"`
	Reason         string         `json:"reason"`
	Classification Classification `json:"classification"`
	StrongMatches  int            `json:"strong_matches"`
	KeywordMatches int            `json:"keyword_matches"`
}
