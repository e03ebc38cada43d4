// internal/workers/profiles/search-profiles/models.go
package searchprofiles

import "cofound-workers/internal/models"

type Filters struct {
	University string   `json:"university,omitempty"`
	Role       string   `json:"role,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

type Input struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters,omitempty"`
	Size    int     `json:"size,omitempty"`
	From    int     `json:"from,omitempty"`
}

type Hit struct {
	Profile models.Profile `json:"profile"`
	Score   float64        `json:"score"`
}

type Output struct {
	Hits     []Hit   `json:"hits"`
	Total    int     `json:"total"`
	MaxScore float64 `json:"maxScore"`
	Took     int     `json:"tookMs"`
}
