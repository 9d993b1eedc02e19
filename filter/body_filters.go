package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// BodyFilter decides whether a message body is of interest.
type BodyFilter interface {
	BodyMatches(body string) bool
	Valid() (bool, error)
}

// ContainsFilter matches bodies containing Substring anywhere, not necessarily as a whole word.
type ContainsFilter struct {
	Substring  string `json:"substring"`
	IgnoreCase bool   `json:"ignore_case"`
}

// RegexFilter matches bodies in which the regex finds a match.
type RegexFilter struct {
	Pattern string `json:"pattern"`
	regex   *regexp.Regexp
}

// AllOfFilter matches when every one of its filters matches. Each filter is checked
// independently, so their substrings may appear in any order or overlap.
type AllOfFilter struct {
	Filters []BodyFilter
}

func (f ContainsFilter) BodyMatches(body string) bool {
	if f.IgnoreCase {
		return strings.Contains(strings.ToLower(body), strings.ToLower(f.Substring))
	}
	return strings.Contains(body, f.Substring)
}

func (f ContainsFilter) Valid() (bool, error) {
	if f.Substring != "" {
		return true, nil
	}

	return false, errors.New("substring must be set")
}

func (f RegexFilter) BodyMatches(body string) bool {
	return f.regex != nil && f.regex.MatchString(body)
}

func (f RegexFilter) Valid() (bool, error) {
	if f.regex != nil {
		return true, nil
	}

	return false, errors.New("regex filter must be built with NewRegexFilter")
}

// Regex returns the compiled pattern, for extracting what the filter matched.
func (f RegexFilter) Regex() *regexp.Regexp {
	return f.regex
}

func NewRegexFilter(pattern string) (RegexFilter, error) {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return RegexFilter{}, fmt.Errorf("error compiling body regex: %s", err)
	}

	return RegexFilter{
		Pattern: pattern,
		regex:   regex,
	}, nil
}

// MustRegexFilter is NewRegexFilter for patterns known to compile, like package level rules.
func MustRegexFilter(pattern string) RegexFilter {
	f, err := NewRegexFilter(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

func (f AllOfFilter) BodyMatches(body string) bool {
	for _, filter := range f.Filters {
		if !filter.BodyMatches(body) {
			return false
		}
	}
	return true
}

func (f AllOfFilter) Valid() (bool, error) {
	if len(f.Filters) == 0 {
		return false, errors.New("at least one filter must be set")
	}

	for _, filter := range f.Filters {
		if valid, err := filter.Valid(); !valid {
			return false, err
		}
	}

	return true, nil
}

// ContainsAllIgnoreCase builds a filter requiring every substring, compared case-insensitively.
func ContainsAllIgnoreCase(substrings ...string) AllOfFilter {
	filters := make([]BodyFilter, 0, len(substrings))
	for _, substring := range substrings {
		filters = append(filters, ContainsFilter{Substring: substring, IgnoreCase: true})
	}
	return AllOfFilter{Filters: filters}
}
