// internal/matching/score_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cofound-workers/internal/models"
)

func TestMatchScoreFullPair(t *testing.T) {
	viewer := fullProfile()
	viewer.Skills = []string{"Go", "Design"}
	viewer.Interests = []string{"AI", "Climbing"}
	viewer.University = "MIT"
	viewer.Role = models.RoleLookingForCofounder

	candidate := fullProfile()
	candidate.ID = "cand-1"
	candidate.Skills = []string{"Marketing", "Design"}
	candidate.Interests = []string{"AI", "Music"}
	candidate.University = "MIT"
	candidate.Role = models.RoleReadyToJoin

	got := MatchScore(viewer, candidate)

	assert.Equal(t, "cand-1", got.CandidateID)
	assert.Equal(t, 100, got.Completeness)
	// 1 of 2 candidate skills is new to the viewer: 12.5 rounds to 13.
	assert.Equal(t, 13, got.Breakdown.SkillComplementarity)
	// 1 of the viewer's 2 interests is shared: 15.
	assert.Equal(t, 15, got.Breakdown.SharedInterests)
	assert.Equal(t, 15, got.Breakdown.University)
	assert.Equal(t, 20, got.Breakdown.RoleCompatibility)
	assert.Equal(t, 10, got.Breakdown.CompletenessBonus)
	assert.Equal(t, 73, got.Score)
	assert.Equal(t, []string{"AI"}, got.SharedInterests)
	assert.Equal(t, []string{"Marketing"}, got.ComplementarySkills)
}

func TestMatchScorePerfect(t *testing.T) {
	viewer := fullProfile()
	viewer.Skills = []string{"Go"}
	viewer.Interests = []string{"AI", "Climate"}
	viewer.University = "MIT"
	viewer.Role = models.RoleLookingForTeam

	candidate := fullProfile()
	candidate.Skills = []string{"Design", "Sales"}
	candidate.Interests = []string{"AI", "Climate"}
	candidate.University = "MIT"
	candidate.Role = models.RoleReadyToJoin

	got := MatchScore(viewer, candidate)
	assert.Equal(t, 100, got.Score)
}

func TestMatchScoreEmptyViewer(t *testing.T) {
	// A viewer with a blank profile gates off every pairwise criterion; the
	// candidate still earns the completeness bonus.
	candidate := &models.Profile{
		ID:          "cand-2",
		FullName:    "Ravi Nair",
		Bio:         "shipping consumer apps since high school",
		Skills:      []string{"Flutter"},
		LinkedinURL: "https://linkedin.com/in/ravi",
		AvatarURL:   "https://cdn.example.com/ravi.png",
	}

	got := MatchScore(&models.Profile{}, candidate)

	assert.Equal(t, 63, got.Completeness)
	assert.Equal(t, Breakdown{CompletenessBonus: 6}, got.Breakdown)
	assert.Equal(t, 6, got.Score)
	assert.Equal(t, []string{}, got.SharedInterests)
	assert.Equal(t, []string{"Flutter"}, got.ComplementarySkills)
}

func TestMatchScoreSkillCriterionGating(t *testing.T) {
	viewer := &models.Profile{Skills: []string{"Go"}}

	// Candidate without skills earns nothing on the skill criterion.
	got := MatchScore(viewer, &models.Profile{ID: "a"})
	assert.Equal(t, 0, got.Breakdown.SkillComplementarity)

	// Viewer without skills also gates the criterion off, even when the
	// candidate brings plenty.
	got = MatchScore(&models.Profile{}, &models.Profile{ID: "b", Skills: []string{"Design", "Sales"}})
	assert.Equal(t, 0, got.Breakdown.SkillComplementarity)
}

func TestMatchScoreSharedInterestsAsymmetry(t *testing.T) {
	a := &models.Profile{ID: "a", Interests: []string{"AI"}}
	b := &models.Profile{ID: "b", Interests: []string{"AI", "Music", "Art"}}

	// Shared interests are weighed against the viewer's list, so the
	// narrow-interest viewer sees a full 30 while the reverse sees 10.
	assert.Equal(t, 30, MatchScore(a, b).Breakdown.SharedInterests)
	assert.Equal(t, 10, MatchScore(b, a).Breakdown.SharedInterests)
}

func TestMatchScoreExactStringMembership(t *testing.T) {
	viewer := &models.Profile{Skills: []string{"Python"}, Interests: []string{"FinTech"}}
	candidate := &models.Profile{ID: "cand-4", Skills: []string{"python "}, Interests: []string{"fintech"}}

	got := MatchScore(viewer, candidate)

	// Label comparison is exact: a case or whitespace difference is a
	// different label.
	assert.Equal(t, []string{}, got.SharedInterests)
	assert.Equal(t, 0, got.Breakdown.SharedInterests)
	assert.Equal(t, []string{"python "}, got.ComplementarySkills)
	assert.Equal(t, 25, got.Breakdown.SkillComplementarity)
}

func TestMatchScoreDuplicateSkillsCountEachOccurrence(t *testing.T) {
	viewer := &models.Profile{Skills: []string{"Go"}}
	candidate := &models.Profile{ID: "cand-5", Skills: []string{"Design", "Design", "Go"}}

	got := MatchScore(viewer, candidate)

	// 2 of the candidate's 3 skill entries are new to the viewer; duplicate
	// entries are the profile owner's to clean up, not the scorer's.
	assert.Equal(t, []string{"Design", "Design"}, got.ComplementarySkills)
	assert.Equal(t, 17, got.Breakdown.SkillComplementarity)
}

func TestMatchScoreUniversity(t *testing.T) {
	tests := []struct {
		name      string
		viewer    string
		candidate string
		expected  int
	}{
		{"exact match is case-insensitive", "mit", "MIT", 15},
		{"different universities earn partial credit", "MIT", "Stanford", 5},
		{"viewer unset", "", "MIT", 0},
		{"candidate unset", "MIT", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &models.Profile{University: tt.viewer}
			candidate := &models.Profile{University: tt.candidate}
			got := MatchScore(viewer, candidate)
			assert.Equal(t, tt.expected, got.Breakdown.University)
		})
	}
}

func TestMatchScoreRoleCompatibility(t *testing.T) {
	tests := []struct {
		name      string
		viewer    string
		candidate string
		expected  int
	}{
		{"searcher meets joiner", models.RoleLookingForCofounder, models.RoleReadyToJoin, 20},
		{"joiner meets searcher", models.RoleReadyToJoin, models.RoleLookingForTeam, 20},
		{"two searchers", models.RoleLookingForCofounder, models.RoleLookingForTeam, 12},
		{"same searching role", models.RoleLookingForTeam, models.RoleLookingForTeam, 12},
		{"two joiners", models.RoleReadyToJoin, models.RoleReadyToJoin, 0},
		{"viewer unset", "", models.RoleReadyToJoin, 0},
		{"unknown role", "Exploring", models.RoleReadyToJoin, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &models.Profile{Role: tt.viewer}
			candidate := &models.Profile{Role: tt.candidate}
			got := MatchScore(viewer, candidate)
			assert.Equal(t, tt.expected, got.Breakdown.RoleCompatibility)
		})
	}
}

func TestMatchScoreNilProfiles(t *testing.T) {
	got := MatchScore(nil, nil)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, []string{}, got.SharedInterests)
	assert.Equal(t, []string{}, got.ComplementarySkills)

	got = MatchScore(nil, &models.Profile{ID: "cand-3", FullName: "Maya"})
	assert.Equal(t, "cand-3", got.CandidateID)
	assert.Equal(t, 13, got.Completeness)
	assert.Equal(t, 0, got.Score)
}
