package valueobject

import "strings"

// SearchFilter selects transactions whose title, description or price text
// contains a term, case-insensitively. The zero value accepts everything.
type SearchFilter struct {
	term string
}

// NewSearchFilter normalizes a free-text term into a SearchFilter.
func NewSearchFilter(term string) SearchFilter {
	return SearchFilter{term: strings.ToLower(strings.TrimSpace(term))}
}

// IsEmpty reports whether the filter accepts every transaction.
func (f SearchFilter) IsEmpty() bool {
	return f.term == ""
}

// Term returns the normalized (trimmed, lowercased) search term.
func (f SearchFilter) Term() string {
	return f.term
}

// Matches applies three independent substring tests joined by OR.
func (f SearchFilter) Matches(title, description, priceText string) bool {
	if f.term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), f.term) ||
		strings.Contains(strings.ToLower(description), f.term) ||
		strings.Contains(strings.ToLower(priceText), f.term)
}
