package models

import "time"

// TimelineEntry is the row shape of the append-only gift_timeline table.
type TimelineEntry struct {
	TimelineID int64     `json:"timelineId"`
	GiftID     int64     `json:"giftId"`
	FromStatus *string   `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ChangedBy  string    `json:"changedBy"`
	Remark     string    `json:"remark"`
	CreatedAt  time.Time `json:"createdAt"`
}
