// internal/workers/dashboard/compute-dashboard-stats/models.go
package computedashboardstats

import "cofound-workers/internal/models"

type Input struct {
	UserID  string          `json:"userId"`
	Profile *models.Profile `json:"profile,omitempty"`
}

type Output struct {
	ProfileCompleteness int `json:"profileCompleteness"`
	CandidateCount      int `json:"candidateCount"`
	ActiveGoals         int `json:"activeGoals"`
	AcceptedConnections int `json:"acceptedConnections"`
}
