// internal/workers/data-access/query-postgresql/queries/user.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"cofound-workers/internal/models"
)

// UserProfile fetches a single profile by id. Requires the userId
// parameter.
func UserProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, error) {
	userID, err := stringParam(params, "userId")
	if err != nil {
		return nil, 0, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, full_name, COALESCE(university, ''), COALESCE(bio, ''),
		       COALESCE(skills, '[]'), COALESCE(interests, '[]'), COALESCE(role, ''),
		       COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, ''),
		       COALESCE(avatar_url, ''), is_onboarded
		FROM profiles WHERE id = $1`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, 0, err
	}
	return profile, 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	var skills, interests []byte
	err := row.Scan(
		&profile.ID, &profile.FullName, &profile.University, &profile.Bio,
		&skills, &interests, &profile.Role,
		&profile.LinkedinURL, &profile.TwitterURL, &profile.WebsiteURL,
		&profile.AvatarURL, &profile.IsOnboarded,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		profile.Skills = []string{}
	}
	if err := json.Unmarshal(interests, &profile.Interests); err != nil {
		profile.Interests = []string{}
	}
	return &profile, nil
}
