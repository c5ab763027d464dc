// Package verdict turns the reviewer's free-text answer into structured fields.
//
// The reviewer is asked to answer with labelled sections:
//
//	Result: Approved
//	Reason: N/A
//	Warnings/Recommendations: Ensure logo visibility
//
// Each label is located independently with a case-insensitive first-match
// scan over the whole text, so a missing section never hides the others.
package verdict

import (
	"regexp"
	"strings"
)

var (
	resultLabel  = regexp.MustCompile(`(?i)result:`)
	reasonLabel  = regexp.MustCompile(`(?i)reason:`)
	warningLabel = regexp.MustCompile(`(?i)warnings?(?:\s*/\s*recommendations?|\s+or\s+recommendations?)?`)
)

// Verdict holds the three sections of a reviewer answer. Missing sections are empty.
type Verdict struct {
	Result  string `json:"result"`
	Reason  string `json:"reason"`
	Warning string `json:"warning"`
}

// Parse extracts the result, reason and warning sections from text.
func Parse(text string) Verdict {
	result := resultLabel.FindStringIndex(text)
	reason := reasonLabel.FindStringIndex(text)
	warning := warningLabel.FindStringIndex(text)

	var v Verdict

	if result != nil {
		v.Result = section(text, result[1], startOf(reason, len(text)))
	}

	if reason != nil {
		v.Reason = section(text, reason[1], startOf(warning, len(text)))
	}

	if warning != nil {
		w := section(text, warning[1], len(text))
		if strings.HasPrefix(w, ":") {
			w = strings.TrimSpace(w[1:])
		}
		v.Warning = w
	}

	return v
}

// HasVerdict reports whether text carries a result label.
func HasVerdict(text string) bool {
	return resultLabel.MatchString(text)
}

// NormalizeStatus lower-cases s and removes quote characters.
func NormalizeStatus(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.ToLower(s)
}

func startOf(loc []int, fallback int) int {
	if loc == nil {
		return fallback
	}
	return loc[0]
}

// section returns the trimmed text in [from, to). Inverted bounds, which occur
// when labels appear out of order, yield an empty section.
func section(text string, from, to int) string {
	if to < from {
		return ""
	}
	return strings.TrimSpace(text[from:to])
}
