// internal/workers/data-access/query-postgresql/queries/dashboard.go
package queries

import (
	"context"
	"database/sql"
)

// DashboardCounts returns the raw counts the dashboard widgets show.
// Requires userId.
func DashboardCounts(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, error) {
	userID, err := stringParam(params, "userId")
	if err != nil {
		return nil, 0, err
	}

	var candidates, activeGoals, acceptedConnections int

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM profiles
		WHERE is_onboarded = true AND id <> $1`, userID).Scan(&candidates)
	if err != nil {
		return nil, 0, err
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE user_id = $1 AND status = 'active'`, userID).Scan(&activeGoals)
	if err != nil {
		return nil, 0, err
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM connections
		WHERE (requester_id = $1 OR recipient_id = $1) AND status = 'accepted'`, userID).Scan(&acceptedConnections)
	if err != nil {
		return nil, 0, err
	}

	counts := map[string]int{
		"candidateCount":      candidates,
		"activeGoals":         activeGoals,
		"acceptedConnections": acceptedConnections,
	}
	return counts, 1, nil
}
