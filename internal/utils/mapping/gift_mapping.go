package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/SscSPs/vip_gift_workflow/internal/models"
)

// ToDomainGift converts a model Gift to a domain GiftRecord
func ToDomainGift(m models.Gift) domain.GiftRecord {
	var tracking *domain.TrackingStatus
	if m.TrackingStatus != nil {
		t := domain.TrackingStatus(*m.TrackingStatus)
		tracking = &t
	}
	return domain.GiftRecord{
		GiftID:             m.GiftID,
		VIPID:              m.VIPID,
		GiftItem:           m.GiftItem,
		Cost:               m.Cost,
		RequestedBy:        m.RequestedBy,
		WorkflowStatus:     domain.WorkflowStatus(m.WorkflowStatus),
		TrackingStatus:     tracking,
		ApprovalReviewedBy: m.ApprovalReviewedBy,
		RejectReason:       m.RejectReason,
		Dispatcher:         m.Dispatcher,
		TrackingCode:       m.TrackingCode,
		UploadedBO:         m.UploadedBO,
		PurchasedBy:        m.PurchasedBy,
		MKTPurchaseDate:    m.MKTPurchaseDate,
		MKTDeliveredDate:   m.MKTDeliveredDate,
		GiftFeedback:       m.GiftFeedback,
		KAMProofBy:         m.KAMProofBy,
		AuditedBy:          m.AuditedBy,
		AuditDate:          m.AuditDate,
		AuditRemark:        m.AuditRemark,
		CreatedDate:        m.CreatedDate,
		LastModifiedDate:   m.LastModifiedDate,
	}
}

// ToDomainTimelineEntry converts a model TimelineEntry to a domain TimelineEntry
func ToDomainTimelineEntry(m models.TimelineEntry) domain.TimelineEntry {
	var from *domain.WorkflowStatus
	if m.FromStatus != nil {
		s := domain.WorkflowStatus(*m.FromStatus)
		from = &s
	}
	return domain.TimelineEntry{
		ID:         m.TimelineID,
		GiftID:     m.GiftID,
		FromStatus: from,
		ToStatus:   domain.WorkflowStatus(m.ToStatus),
		ChangedBy:  m.ChangedBy,
		Remark:     m.Remark,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainTimelineSlice converts a slice of model timeline entries to domain entries
func ToDomainTimelineSlice(ms []models.TimelineEntry) []domain.TimelineEntry {
	out := make([]domain.TimelineEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTimelineEntry(m)
	}
	return out
}

// ToModelTimelineEntry converts a draft into its row shape. CreatedAt is set by the writer.
func ToModelTimelineEntry(d domain.TimelineDraft) models.TimelineEntry {
	var from *string
	if d.FromStatus != nil {
		s := string(*d.FromStatus)
		from = &s
	}
	return models.TimelineEntry{
		GiftID:     d.GiftID,
		FromStatus: from,
		ToStatus:   string(d.ToStatus),
		ChangedBy:  d.ChangedBy,
		Remark:     d.Remark,
	}
}

// ToModelNotification converts a domain Notification to its row shape.
func ToModelNotification(n domain.Notification) (models.Notification, error) {
	gifts, err := json.Marshal(n.Gifts)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to encode notified gifts: %w", err)
	}
	roles := make([]string, len(n.TargetRoles))
	for i, r := range n.TargetRoles {
		roles[i] = string(r)
	}
	users := n.TargetUserIDs
	if users == nil {
		users = []string{}
	}
	return models.Notification{
		NotificationID: n.ID,
		Kind:           string(n.Kind),
		Title:          n.Title,
		Message:        n.Message,
		ActorID:        n.ActorID,
		TargetRoles:    roles,
		TargetUserIDs:  users,
		Gifts:          gifts,
		CreatedAt:      n.CreatedAt,
	}, nil
}
