// internal/workers/data-access/query-postgresql/queries/registry.go

// Package queries holds the named read queries the query-postgresql
// worker can run. Each query is a function registered under a
// models.QueryType; workflows pick one by name and pass parameters as a
// map.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cofound-workers/internal/models"
)

var (
	ErrUnknownQueryType = errors.New("INVALID_QUERY_TYPE")
	ErrMissingParam     = errors.New("missing required parameter")
)

// QueryFunc runs one named query and returns the result data and the
// number of rows it covers.
type QueryFunc func(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, error)

// Result is what the worker hands back to the workflow.
type Result struct {
	Data            interface{} `json:"data"`
	RowCount        int         `json:"rowCount"`
	ExecutionTimeMs int64       `json:"executionTimeMs"`
}

var registry = map[models.QueryType]QueryFunc{
	models.QueryTypeUserProfile:     UserProfile,
	models.QueryTypeCandidatePool:   CandidatePool,
	models.QueryTypeDashboardCounts: DashboardCounts,
	models.QueryTypeGroupIdeas:      GroupIdeas,
}

// Types lists the registered query types.
func Types() []models.QueryType {
	types := make([]models.QueryType, 0, len(registry))
	for queryType := range registry {
		types = append(types, queryType)
	}
	return types
}

// Execute dispatches to the registered query and measures its execution
// time.
func Execute(ctx context.Context, db *sql.DB, queryType models.QueryType, params map[string]interface{}) (*Result, error) {
	queryFunc, ok := registry[queryType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}

	start := time.Now()
	data, rowCount, err := queryFunc(ctx, db, params)
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:            data,
		RowCount:        rowCount,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	value, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", ErrMissingParam, key)
	}
	return s, nil
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	value, ok := params[key]
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		// JSON numbers arrive as float64.
		return int(v)
	default:
		return fallback
	}
}
