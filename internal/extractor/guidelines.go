// Package extractor reads the compliance guidelines document whose text is
// given to new reviewer assistants as part of their instructions.
package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for guideline files that are neither PDF nor plain text.
var ErrUnsupportedFormat = errors.New("unsupported guidelines format")

// MaxGuidelineChars bounds the text appended to assistant instructions.
const MaxGuidelineChars = 24000

// ExtractGuidelines picks an extractor by file extension.
func ExtractGuidelines(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".txt", ".md":
		text, err = extractText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return "", err
	}

	return truncate(text, MaxGuidelineChars), nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
