// Package weave inserts [[wiki link]] delimiters around keyword phrases in a
// Markdown note.
package weave

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	openDelim  = "[["
	closeDelim = "]]"
)

// Result is the outcome of a single weave pass.
type Result struct {
	Text   string
	Linked int
}

// Weave wraps every unlinked whole-word occurrence of each phrase in link
// delimiters and returns the rewritten text with the number of links added.
//
// Phrases are applied strictly in order and each one sees the text as left by
// the phrases before it. A phrase that already appears as [[phrase]] anywhere
// in the text (case-insensitive) is skipped entirely, including its unlinked
// occurrences. Blank phrases are ignored. When nothing is wrapped the
// returned text is identical to the input.
func Weave(text string, phrases []string) Result {
	res := Result{Text: text}
	for _, phrase := range phrases {
		updated, n := weavePhrase(res.Text, phrase)
		res.Text = updated
		res.Linked += n
	}
	return res
}

func weavePhrase(text, phrase string) (string, int) {
	if strings.TrimSpace(phrase) == "" {
		return text, 0
	}
	quoted := regexp.QuoteMeta(phrase)
	linked := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(openDelim) + quoted + regexp.QuoteMeta(closeDelim))
	if linked.MatchString(text) {
		return text, 0
	}
	spans := findUnlinked(text, regexp.MustCompile(`(?i)`+quoted))
	if len(spans) == 0 {
		return text, 0
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(spans)*(len(openDelim)+len(closeDelim)))
	last := 0
	for _, s := range spans {
		sb.WriteString(text[last:s[0]])
		sb.WriteString(openDelim)
		sb.WriteString(text[s[0]:s[1]])
		sb.WriteString(closeDelim)
		last = s[1]
	}
	sb.WriteString(text[last:])
	return sb.String(), len(spans)
}

// findUnlinked returns the non-overlapping [start, end) byte spans of
// candidates that qualify for wrapping, scanning left to right.
func findUnlinked(text string, re *regexp.Regexp) [][2]int {
	var spans [][2]int
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && qualifies(text, start, end) {
			spans = append(spans, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return spans
}

// qualifies reports whether text[start:end] is a whole word that does not
// sit directly against an existing link delimiter.
func qualifies(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	if strings.HasSuffix(text[:start], openDelim) {
		return false
	}
	if strings.HasPrefix(text[end:], closeDelim) {
		return false
	}
	return true
}

// isWordByte matches the ASCII \w class. Bytes of multi-byte runes are never
// word bytes.
func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
