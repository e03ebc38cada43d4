// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeUserProfile     QueryType = "user-profile"
	QueryTypeCandidatePool   QueryType = "candidate-pool"
	QueryTypeDashboardCounts QueryType = "dashboard-counts"
	QueryTypeGroupIdeas      QueryType = "group-ideas"
)
