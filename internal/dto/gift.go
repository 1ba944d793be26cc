package dto

import (
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// GiftResponse defines the data returned for a gift. Mirrors domain.GiftRecord.
type GiftResponse struct {
	domain.GiftRecord
}

// ToGiftResponse converts a domain.GiftRecord to GiftResponse DTO
func ToGiftResponse(g *domain.GiftRecord) GiftResponse {
	return GiftResponse{GiftRecord: *g}
}

// ListTimelineParams defines query parameters for listing a gift's timeline.
type ListTimelineParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// TimelineEntryResponse is one history row.
type TimelineEntryResponse struct {
	ID         int64                  `json:"id"`
	FromStatus *domain.WorkflowStatus `json:"fromStatus"`
	ToStatus   domain.WorkflowStatus  `json:"toStatus"`
	ChangedBy  string                 `json:"changedBy"`
	Remark     string                 `json:"remark"`
	Timestamp  time.Time              `json:"timestamp"`
}

// ListTimelineResponse wraps a page of timeline entries.
type ListTimelineResponse struct {
	GiftID    int64                   `json:"giftId"`
	Entries   []TimelineEntryResponse `json:"entries"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToListTimelineResponse converts a page of domain entries.
func ToListTimelineResponse(giftID int64, entries []domain.TimelineEntry, nextToken *string) ListTimelineResponse {
	out := make([]TimelineEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = TimelineEntryResponse{
			ID:         e.ID,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ChangedBy:  e.ChangedBy,
			Remark:     e.Remark,
			Timestamp:  e.CreatedAt,
		}
	}
	return ListTimelineResponse{GiftID: giftID, Entries: out, NextToken: nextToken}
}
