package store

import (
	"regexp"
	"strings"

	"mentora/backend/internal/models"
)

// SearchPattern turns a free-text term into a regular expression that matches
// the term literally anywhere in a field.
func SearchPattern(term string) string {
	return regexp.QuoteMeta(term)
}

// MatchesTerm reports whether value contains term, ignoring case.
func MatchesTerm(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

// TeacherOrder is the primary sort key for teacher listings: pending
// applications come first.
func TeacherOrder(s models.Status) int {
	if s == models.StatusPending {
		return 0
	}
	return 1
}
