package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func extractText(data []byte) (string, error) {
	text, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode guidelines: %w", err)
	}

	text = normalizeLines(text)
	if text == "" {
		return "", fmt.Errorf("guidelines file is empty")
	}

	return text, nil
}

// decode honours a UTF-8 or UTF-16 byte order mark and falls back to
// Windows-1252 for bytes that are not valid UTF-8.
func decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}

	if utf8.Valid(decoded) {
		return string(decoded), nil
	}

	decoded, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// normalizeLines unifies line endings, drops NULs and trailing spaces, and
// collapses runs of blank lines to one.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	var b strings.Builder
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank = true
			continue
		}
		if b.Len() > 0 {
			if blank {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		blank = false
		b.WriteString(line)
	}

	return b.String()
}
