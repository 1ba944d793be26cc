package domain

import "time"

// TimelineEntry is an immutable audit record of a workflow status change or notable event.
type TimelineEntry struct {
	ID         int64           `json:"id"`
	GiftID     int64           `json:"giftId"`
	FromStatus *WorkflowStatus `json:"fromStatus,omitempty"`
	ToStatus   WorkflowStatus  `json:"toStatus"`
	ChangedBy  string          `json:"changedBy"`
	Remark     string          `json:"remark"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// TimelineDraft is a timeline entry that has not been written yet.
type TimelineDraft struct {
	GiftID     int64
	FromStatus *WorkflowStatus
	ToStatus   WorkflowStatus
	ChangedBy  string
	Remark     string
}
