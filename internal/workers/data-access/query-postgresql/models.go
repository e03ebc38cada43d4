// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "cofound-workers/internal/models"

type Input struct {
	QueryType models.QueryType       `json:"queryType"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

type Output struct {
	QueryType       models.QueryType `json:"queryType"`
	Data            interface{}      `json:"data"`
	RowCount        int              `json:"rowCount"`
	ExecutionTimeMs int64            `json:"executionTimeMs"`
}
