// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import (
	"cofound-workers/internal/matching"
	"cofound-workers/internal/models"
)

type Input struct {
	ViewerID         string          `json:"viewerId"`
	CandidateID      string          `json:"candidateId"`
	ViewerProfile    *models.Profile `json:"viewerProfile,omitempty"`
	CandidateProfile *models.Profile `json:"candidateProfile,omitempty"`
}

type Output struct {
	CandidateID         string             `json:"candidateId"`
	MatchScore          int                `json:"matchScore"`
	Breakdown           matching.Breakdown `json:"breakdown"`
	SharedInterests     []string           `json:"sharedInterests"`
	ComplementarySkills []string           `json:"complementarySkills"`
	ProfileCompleteness int                `json:"profileCompleteness"`
}
