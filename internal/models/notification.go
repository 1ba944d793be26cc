package models

import "time"

// Notification is an in-app alert row. Gifts holds the JSON-encoded affected gift summaries.
type Notification struct {
	NotificationID string    `json:"notificationId"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ActorID        string    `json:"actorId"`
	TargetRoles    []string  `json:"targetRoles"`
	TargetUserIDs  []string  `json:"targetUserIds"`
	Gifts          []byte    `json:"gifts"`
	CreatedAt      time.Time `json:"createdAt"`
}
