// internal/workers/data-access/query-postgresql/queries/groups.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

// GroupIdea is a startup idea pitched inside a group.
type GroupIdea struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    string    `json:"authorId"`
	Votes       int       `json:"votes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GroupIdeas lists the ideas of a group, most voted first. Requires
// groupId; limit is optional.
func GroupIdeas(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, error) {
	groupID, err := stringParam(params, "groupId")
	if err != nil {
		return nil, 0, err
	}
	limit := intParam(params, "limit", 50)

	rows, err := db.QueryContext(ctx, `
		SELECT id, group_id, title, COALESCE(description, ''), author_id, votes, created_at
		FROM group_ideas
		WHERE group_id = $1
		ORDER BY votes DESC, created_at DESC
		LIMIT $2`, groupID, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	ideas := make([]GroupIdea, 0)
	for rows.Next() {
		var idea GroupIdea
		err := rows.Scan(
			&idea.ID, &idea.GroupID, &idea.Title, &idea.Description,
			&idea.AuthorID, &idea.Votes, &idea.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return ideas, len(ideas), nil
}
