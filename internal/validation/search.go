package validation

import "strings"

// SearchField is the field path search errors are keyed by
const SearchField = "searchQuery"

// NormalizeSearch trims surrounding whitespace from raw search input
func NormalizeSearch(text string) string {
	return strings.TrimSpace(text)
}

// ValidateSearch checks raw search input before it is used to query.
// The search is required: it must be non-empty after normalization.
func ValidateSearch(text string) Errors {
	if NormalizeSearch(text) == "" {
		return Errors{SearchField: `"searchQuery" is not allowed to be empty`}
	}
	return nil
}
