// internal/workers/data-access/query-postgresql/queries/candidates.go
package queries

import (
	"context"
	"database/sql"

	"cofound-workers/internal/models"
)

const defaultPoolLimit = 100

// CandidatePool lists onboarded profiles other than the requesting user,
// newest first. Requires userId; limit is optional.
func CandidatePool(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, error) {
	userID, err := stringParam(params, "userId")
	if err != nil {
		return nil, 0, err
	}
	limit := intParam(params, "limit", defaultPoolLimit)

	rows, err := db.QueryContext(ctx, `
		SELECT id, full_name, COALESCE(university, ''), COALESCE(bio, ''),
		       COALESCE(skills, '[]'), COALESCE(interests, '[]'), COALESCE(role, ''),
		       COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, ''),
		       COALESCE(avatar_url, ''), is_onboarded
		FROM profiles
		WHERE is_onboarded = true AND id <> $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, len(profiles), nil
}
