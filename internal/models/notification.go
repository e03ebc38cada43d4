// internal/models/notification.go
package models

// Notification types produced by the connection and matching workflows.
const (
	NotificationConnectionRequest  = "connection-request"
	NotificationConnectionAccepted = "connection-accepted"
	NotificationNewMatch           = "new-match"
	NotificationGroupInvite        = "group-invite"
)

// Notification delivery priorities. SMS is only attempted for high priority.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)
