// internal/matching/rank.go
package matching

import (
	"sort"

	"cofound-workers/internal/models"
)

// DefaultLimit is the number of ranked matches returned when the caller does
// not ask for a specific count.
const DefaultLimit = 10

// Rank scores every candidate against the viewer and returns the top matches
// by descending score. Equal scores keep the candidates' pool order, so the
// upstream query's ordering is the tie-break. A limit of zero or less means
// DefaultLimit. The result is never nil.
func Rank(viewer *models.Profile, candidates []*models.Profile, limit int) []Score {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scores := make([]Score, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		scores = append(scores, MatchScore(viewer, c))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}
