// internal/matching/completeness.go
package matching

import (
	"unicode/utf8"

	"cofound-workers/internal/models"
)

const (
	completenessChecks = 8

	// A bio must be strictly longer than this to count as present.
	bioMinLength = 20
)

// Completeness reports how filled-in a profile is, as an integer percentage.
// Eight equally weighted checks, each worth 1/8 of 100. Odd check counts land
// on exact .5 fractions (12.5, 37.5, 62.5, 87.5) and round half away from
// zero, so the possible outputs are 0, 13, 25, 38, 50, 63, 75, 88, 100.
func Completeness(p *models.Profile) int {
	if p == nil {
		return 0
	}

	checks := []bool{
		hasText(p.FullName),
		hasText(p.University),
		utf8.RuneCountInString(p.Bio) > bioMinLength,
		len(p.Skills) > 0,
		len(p.Interests) > 0,
		hasText(p.Role),
		hasText(p.LinkedinURL) || hasText(p.TwitterURL) || hasText(p.WebsiteURL),
		hasText(p.AvatarURL),
	}

	completed := 0
	for _, ok := range checks {
		if ok {
			completed++
		}
	}

	return round(float64(completed) / completenessChecks * 100)
}

// hasText is the presence predicate for optional string fields: an empty
// string and an absent field are both "not present".
func hasText(s string) bool {
	return s != ""
}
