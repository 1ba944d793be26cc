package domain

import "time"

// NotificationKind is the notification contract an event falls under.
type NotificationKind string

const (
	NotificationNone      NotificationKind = ""
	NotificationRejection NotificationKind = "gift_rejected"
	NotificationRevert    NotificationKind = "gift_reverted_to_mktops"
	NotificationDelivered NotificationKind = "gift_delivered"
)

// NotifiedGift is the per-gift data carried by a notification.
type NotifiedGift struct {
	GiftID       int64   `json:"giftId"`
	VIPID        string  `json:"vipId"`
	GiftItem     string  `json:"giftItem"`
	Cost         string  `json:"cost"`
	RequestedBy  string  `json:"requestedBy"`
	TrackingCode *string `json:"trackingCode,omitempty"`
}

// Notification is one best-effort message to a set of roles or users.
type Notification struct {
	ID            string           `json:"id"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	ActorID       string           `json:"actorId"`
	TargetRoles   []Role           `json:"targetRoles,omitempty"`
	TargetUserIDs []string         `json:"targetUserIds,omitempty"`
	Gifts         []NotifiedGift   `json:"gifts"`
	CreatedAt     time.Time        `json:"createdAt"`
}
