// internal/matching/score.go
package matching

import (
	"math"
	"strings"

	"cofound-workers/internal/models"
)

// Criterion caps. Every cap is always part of the denominator whether or not
// the criterion could fire for this pair, so scores from different candidate
// pairs stay directly comparable.
const (
	capSkillComplementarity = 25
	capSharedInterests      = 30
	capUniversity           = 15
	capRoleCompatibility    = 20
	capCompletenessBonus    = 10

	universityPartialPoints = 5
	roleComplementaryPoints = 20
	roleBothSearchingPoints = 12
)

// Breakdown carries the per-criterion points that went into a match score.
type Breakdown struct {
	SkillComplementarity int `json:"skillComplementarity"`
	SharedInterests      int `json:"sharedInterests"`
	University           int `json:"university"`
	RoleCompatibility    int `json:"roleCompatibility"`
	CompletenessBonus    int `json:"completenessBonus"`
}

// Score is a single scored candidate: the candidate profile, the 0-100 match
// score with its breakdown, and the human-readable overlap lists used to
// explain the match. Carrying the profile spares ranked-match consumers a
// second lookup per candidate.
type Score struct {
	CandidateID         string          `json:"candidateId"`
	Profile             *models.Profile `json:"profile,omitempty"`
	Score               int             `json:"score"`
	Breakdown           Breakdown       `json:"breakdown"`
	SharedInterests     []string        `json:"sharedInterests"`
	ComplementarySkills []string        `json:"complementarySkills"`
	Completeness        int             `json:"completeness"`
}

// MatchScore scores candidate against viewer on five weighted criteria and
// normalizes to 0-100. The score is directional: viewer-to-candidate and
// candidate-to-viewer generally differ because shared interests are weighed
// against the viewer's interest count and the completeness bonus rewards only
// the candidate's profile.
func MatchScore(viewer, candidate *models.Profile) Score {
	s := Score{
		SharedInterests:     []string{},
		ComplementarySkills: []string{},
	}
	if candidate != nil {
		s.CandidateID = candidate.ID
		s.Profile = candidate
		s.Completeness = Completeness(candidate)
	}
	if viewer == nil || candidate == nil {
		return s
	}

	s.ComplementarySkills = ComplementarySkills(viewer, candidate)
	if len(candidate.Skills) > 0 && len(viewer.Skills) > 0 {
		ratio := float64(len(s.ComplementarySkills)) / float64(len(candidate.Skills))
		s.Breakdown.SkillComplementarity = round(ratio * capSkillComplementarity)
	}

	s.SharedInterests = SharedInterests(viewer, candidate)
	if len(viewer.Interests) > 0 {
		ratio := float64(len(s.SharedInterests)) / float64(len(viewer.Interests))
		s.Breakdown.SharedInterests = round(ratio * capSharedInterests)
	}

	s.Breakdown.University = universityPoints(viewer.University, candidate.University)
	s.Breakdown.RoleCompatibility = rolePoints(viewer.Role, candidate.Role)
	s.Breakdown.CompletenessBonus = round(float64(s.Completeness) * 0.1)

	earned := s.Breakdown.SkillComplementarity +
		s.Breakdown.SharedInterests +
		s.Breakdown.University +
		s.Breakdown.RoleCompatibility +
		s.Breakdown.CompletenessBonus

	maxScore := capSkillComplementarity + capSharedInterests + capUniversity +
		capRoleCompatibility + capCompletenessBonus

	s.Score = round(float64(earned) / float64(maxScore) * 100)
	return s
}

func universityPoints(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if strings.EqualFold(a, b) {
		return capUniversity
	}
	return universityPartialPoints
}

// rolePoints implements the role compatibility matrix. A searcher paired with
// someone ready to join scores highest, two searchers still score, and every
// other combination (including two ready-to-join profiles) scores nothing.
func rolePoints(viewer, candidate string) int {
	searching := func(r string) bool {
		return r == models.RoleLookingForCofounder || r == models.RoleLookingForTeam
	}
	switch {
	case searching(viewer) && candidate == models.RoleReadyToJoin:
		return roleComplementaryPoints
	case viewer == models.RoleReadyToJoin && searching(candidate):
		return roleComplementaryPoints
	case searching(viewer) && searching(candidate):
		return roleBothSearchingPoints
	default:
		return 0
	}
}

// round rounds half away from zero, matching math.Round rather than banker's
// rounding. Inputs here are never negative but the helper keeps math.Round's
// full contract.
func round(v float64) int {
	return int(math.Round(v))
}
