// internal/workers/profiles/validate-profile-data/models.go
package validateprofiledata

import "cofound-workers/internal/models"

type Input struct {
	Profile *models.Profile `json:"profile"`
}

type Output struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
