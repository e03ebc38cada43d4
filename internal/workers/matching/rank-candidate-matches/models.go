// internal/workers/matching/rank-candidate-matches/models.go
package rankcandidatematches

import (
	"cofound-workers/internal/matching"
	"cofound-workers/internal/models"
)

type Input struct {
	UserID        string            `json:"userId"`
	Limit         int               `json:"limit"`
	ForceRefresh  bool              `json:"forceRefresh"`
	ViewerProfile *models.Profile   `json:"viewerProfile,omitempty"`
	CandidatePool []*models.Profile `json:"candidatePool,omitempty"`
}

type Output struct {
	UserID          string           `json:"userId"`
	Matches         []matching.Score `json:"matches"`
	TotalCandidates int              `json:"totalCandidates"`
	FromCache       bool             `json:"fromCache"`
}
