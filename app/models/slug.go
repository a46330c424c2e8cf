package models

import "strings"

// TitleToSlug derives the canonical URL slug for a post title. It is a
// pure function: the same title always yields the same slug. Letters and
// digits are lowered, every other run of characters collapses to a
// single hyphen.
func TitleToSlug(title string) string {
	slug := make([]rune, 0, len(title))
	pendingDash := false
	for _, ch := range strings.ToLower(title) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			if pendingDash && len(slug) > 0 {
				slug = append(slug, '-')
			}
			pendingDash = false
			slug = append(slug, ch)
		} else {
			pendingDash = true
		}
	}
	return string(slug)
}
