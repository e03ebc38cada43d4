// internal/matching/rank_test.go
package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofound-workers/internal/models"
)

// candidateWithBonus builds a profile whose only score contribution against a
// blank viewer is the completeness bonus, which makes ranked order easy to
// control per test.
func candidateWithBonus(id string, checks int) *models.Profile {
	p := &models.Profile{ID: id}
	fields := []func(){
		func() { p.FullName = "Someone" },
		func() { p.University = "IIT Delhi" },
		func() { p.Bio = "twenty-one characters" },
		func() { p.Skills = []string{"Design"} },
		func() { p.Interests = []string{"Gaming"} },
		func() { p.Role = models.RoleReadyToJoin },
		func() { p.WebsiteURL = "https://example.com" },
		func() { p.AvatarURL = "https://cdn.example.com/a.png" },
	}
	for i := 0; i < checks && i < len(fields); i++ {
		fields[i]()
	}
	return p
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	viewer := &models.Profile{}
	pool := []*models.Profile{
		candidateWithBonus("low", 2),  // completeness 25, score 3
		candidateWithBonus("high", 8), // completeness 100, score 10
		candidateWithBonus("mid", 4),  // completeness 50, score 5
	}

	got := Rank(viewer, pool, 10)

	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].CandidateID)
	assert.Equal(t, "mid", got[1].CandidateID)
	assert.Equal(t, "low", got[2].CandidateID)
	assert.Equal(t, 10, got[0].Score)
	assert.Equal(t, 5, got[1].Score)
	assert.Equal(t, 3, got[2].Score)
}

func TestRankStableTieBreak(t *testing.T) {
	viewer := &models.Profile{}
	pool := []*models.Profile{
		candidateWithBonus("first", 4),
		candidateWithBonus("second", 4),
		candidateWithBonus("third", 4),
	}

	got := Rank(viewer, pool, 10)

	require.Len(t, got, 3)
	// Equal scores keep pool order.
	assert.Equal(t, "first", got[0].CandidateID)
	assert.Equal(t, "second", got[1].CandidateID)
	assert.Equal(t, "third", got[2].CandidateID)
}

func TestRankTruncatesAfterSorting(t *testing.T) {
	viewer := &models.Profile{}
	pool := []*models.Profile{
		candidateWithBonus("weak-1", 1),
		candidateWithBonus("weak-2", 1),
		candidateWithBonus("strong", 8),
	}

	got := Rank(viewer, pool, 2)

	require.Len(t, got, 2)
	// The strong candidate placed last in the pool still makes the cut.
	assert.Equal(t, "strong", got[0].CandidateID)
	assert.Equal(t, "weak-1", got[1].CandidateID)
}

func TestRankDefaultLimit(t *testing.T) {
	viewer := &models.Profile{}
	pool := make([]*models.Profile, 0, 12)
	for i := 0; i < 12; i++ {
		pool = append(pool, candidateWithBonus(fmt.Sprintf("cand-%d", i), 8))
	}

	assert.Len(t, Rank(viewer, pool, 0), DefaultLimit)
	assert.Len(t, Rank(viewer, pool, -5), DefaultLimit)
}

func TestRankCarriesCandidateProfile(t *testing.T) {
	pool := []*models.Profile{candidateWithBonus("only", 8)}

	got := Rank(&models.Profile{}, pool, 10)

	require.Len(t, got, 1)
	require.NotNil(t, got[0].Profile)
	assert.Equal(t, "only", got[0].Profile.ID)
	assert.Equal(t, "IIT Delhi", got[0].Profile.University)
}

func TestRankEmptyPool(t *testing.T) {
	got := Rank(&models.Profile{}, nil, 10)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankSkipsNilCandidates(t *testing.T) {
	pool := []*models.Profile{nil, candidateWithBonus("only", 8), nil}
	got := Rank(&models.Profile{}, pool, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].CandidateID)
}
