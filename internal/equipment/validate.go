package equipment

import (
	"fmt"
	"regexp"
	"strings"
)

// Categories and Locations are the closed enumerations a record must
// draw from. Matching is exact and case-sensitive; out-of-set values are
// rejected, never coerced.
var Categories = []string{"wheelchair", "walker", "furniture", "air-mattress", "other"}

var Locations = []string{"office", "1F", "2F", "3F", "common-room"}

const (
	maxNameLength   = 200
	maxItemIDLength = 50
)

// unsafeChars are rejected in names: any consumer rendering the value
// unescaped would otherwise be open to markup injection.
const unsafeChars = `<>"'`

var itemIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateItemID(id string, problems []string) []string {
	if strings.TrimSpace(id) == "" {
		return append(problems, "id is required")
	}
	if len(id) > maxItemIDLength {
		problems = append(problems, fmt.Sprintf("id must be %d characters or fewer", maxItemIDLength))
	}
	if !itemIDPattern.MatchString(id) {
		problems = append(problems, "id may only contain letters, digits, hyphens and underscores")
	}
	return problems
}

func validateName(name string, problems []string) []string {
	if strings.TrimSpace(name) == "" {
		return append(problems, "name is required")
	}
	if len(name) > maxNameLength {
		problems = append(problems, fmt.Sprintf("name must be %d characters or fewer", maxNameLength))
	}
	if strings.ContainsAny(name, unsafeChars) {
		problems = append(problems, `name must not contain the characters < > " '`)
	}
	return problems
}

func validateCategory(category string, problems []string) []string {
	if !inSet(category, Categories) {
		problems = append(problems, "category must be one of: "+strings.Join(Categories, ", "))
	}
	return problems
}

func validateLocation(location string, problems []string) []string {
	if !inSet(location, Locations) {
		problems = append(problems, "location must be one of: "+strings.Join(Locations, ", "))
	}
	return problems
}

func inSet(value string, set []string) bool {
	for _, s := range set {
		if value == s {
			return true
		}
	}
	return false
}

var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Sanitize entity-encodes HTML-special characters. It runs on name and
// id before storage even though validation already rejects them there,
// so a validation gap can never become a stored-injection vector.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
