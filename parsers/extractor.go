package parsers

import (
	"regexp"
	"strings"
	"unicode"
)

// Pattern pulls a single field out of a message body. A body without the field yields "".
type Pattern interface {
	Extract(body string) string
}

// RegexPattern returns the given capture group of the first match.
type RegexPattern struct {
	Regex *regexp.Regexp
	Group int
}

// SplitPattern returns the text after the last occurrence of After, cut at the first
// occurrence of each Until marker in turn. Markers are plain substrings, so "to" also
// splits inside "Auto" and "at" inside "Saturday".
type SplitPattern struct {
	After string
	Until []string
}

// FirstOfPattern returns the first non-empty value of its patterns.
type FirstOfPattern []Pattern

// TrimmedPattern strips surrounding whitespace from what Pattern extracted.
type TrimmedPattern struct {
	Pattern Pattern
}

// Digits and whitespace are the Unicode classes, not just ASCII.
const (
	unicodeDigit = `\p{Nd}`
	unicodeSpace = `[\t\n\v\f\r \x1c-\x1f\x{85}\p{Z}]`
)

var (
	// AmountPattern matches a comma grouped or plain numeral directly followed by RWF.
	AmountPattern = RegexPattern{
		Regex: regexp.MustCompile(`(` + unicodeDigit + `{1,3}(?:,` + unicodeDigit + `{3})*|` + unicodeDigit + `+)` + unicodeSpace + `*RWF`),
		Group: 1,
	}

	RecipientPattern = SplitPattern{
		After: "to",
		Until: []string{"at", "("},
	}
)

func (p RegexPattern) Extract(body string) string {
	match := p.Regex.FindStringSubmatch(body)
	if len(match) <= p.Group {
		return ""
	}
	return match[p.Group]
}

func (p SplitPattern) Extract(body string) string {
	idx := strings.LastIndex(body, p.After)
	if idx < 0 {
		return ""
	}

	value := body[idx+len(p.After):]
	for _, marker := range p.Until {
		if end := strings.Index(value, marker); end >= 0 {
			value = value[:end]
		}
		value = trimSpace(value)
	}
	return trimSpace(value)
}

func (p FirstOfPattern) Extract(body string) string {
	for _, pattern := range p {
		if value := pattern.Extract(body); value != "" {
			return value
		}
	}
	return ""
}

func (p TrimmedPattern) Extract(body string) string {
	return trimSpace(p.Pattern.Extract(body))
}

// trimSpace also strips the ASCII separator controls 0x1c-0x1f.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
	})
}

func ExtractAmount(body string) string {
	return AmountPattern.Extract(body)
}

func ExtractRecipient(body string) string {
	return RecipientPattern.Extract(body)
}

func ExtractFields(body string) ExtractedFields {
	return ExtractedFields{
		Amount:    ExtractAmount(body),
		Recipient: ExtractRecipient(body),
	}
}
