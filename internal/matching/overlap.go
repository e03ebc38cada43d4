// internal/matching/overlap.go
package matching

import "cofound-workers/internal/models"

// SharedInterests returns the candidate's interests that also appear in the
// viewer's interest list. Membership is exact, case-sensitive string
// equality. Every candidate occurrence is kept, in the candidate's original
// order, and the result is never nil.
func SharedInterests(viewer, candidate *models.Profile) []string {
	if viewer == nil || candidate == nil {
		return []string{}
	}
	return intersect(candidate.Interests, viewer.Interests)
}

// ComplementarySkills returns the candidate's skills that the viewer does not
// list, same membership and ordering rules as SharedInterests. These are the
// skills the candidate would bring to the pairing.
func ComplementarySkills(viewer, candidate *models.Profile) []string {
	if viewer == nil || candidate == nil {
		return []string{}
	}
	return subtract(candidate.Skills, viewer.Skills)
}

// intersect keeps the items present in against, preserving order and
// duplicates from items. Label hygiene (deduplication, trimming, casing) is
// the profile owner's concern, not the scorer's.
func intersect(items, against []string) []string {
	out := []string{}
	lookup := toSet(against)
	for _, item := range items {
		if lookup[item] {
			out = append(out, item)
		}
	}
	return out
}

// subtract keeps the items absent from against.
func subtract(items, against []string) []string {
	out := []string{}
	lookup := toSet(against)
	for _, item := range items {
		if !lookup[item] {
			out = append(out, item)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
