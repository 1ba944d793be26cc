package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// BatchMutator turns a validated action into a mutation plan.
type BatchMutator struct{}

// NewBatchMutator creates a BatchMutator.
func NewBatchMutator() *BatchMutator {
	return &BatchMutator{}
}

// Plan builds the write set for every gift of giftIDs present in snapshot.
//
// Gifts whose derived updates are identical share one MutationGroup, so a uniform action
// yields a single group and a derived one (delivery status) yields one group per distinct outcome.
// Every group also sets the workflow status (when the action changes it) and lastModifiedDate.
func (m *BatchMutator) Plan(spec *ActionSpec, req domain.BulkActionRequest, giftIDs []int64, snapshot map[int64]domain.GiftRecord, now time.Time) *domain.MutationPlan {
	in := BuildInput{ActorID: req.ActorID, Payload: req.Payload, Now: now}
	plan := &domain.MutationPlan{
		Action:  spec.Action,
		ActorID: req.ActorID,
		Payload: req.Payload,
		Now:     now,
	}

	groupIndex := make(map[string]int)
	for _, id := range giftIDs {
		gift, ok := snapshot[id]
		if !ok {
			continue
		}

		updates := m.updatesFor(spec, in, gift)
		key := groupKey(updates)
		idx, seen := groupIndex[key]
		if !seen {
			idx = len(plan.Groups)
			groupIndex[key] = idx
			plan.Groups = append(plan.Groups, domain.MutationGroup{
				ExpectedStatuses: spec.Transition.From,
				Updates:          updates,
			})
		}
		plan.Groups[idx].GiftIDs = append(plan.Groups[idx].GiftIDs, id)

		change := domain.GiftChange{Before: gift, ToStatus: gift.WorkflowStatus, ToTracking: gift.TrackingStatus}
		if spec.Transition.ChangesStatus() {
			change.ToStatus = *spec.Transition.To
		}
		if spec.Action == domain.ActionUpdateDeliveryStatus {
			next := *req.Payload.TrackingStatus
			change.ToTracking = &next
		}
		plan.Changes = append(plan.Changes, change)

		if draft, ok := timelineDraft(spec, in, change); ok {
			plan.Timeline = append(plan.Timeline, draft)
		}
	}

	return plan
}

func (m *BatchMutator) updatesFor(spec *ActionSpec, in BuildInput, gift domain.GiftRecord) []domain.FieldUpdate {
	var updates []domain.FieldUpdate
	if spec.Transition.ChangesStatus() {
		updates = append(updates, set(domain.FieldWorkflowStatus, *spec.Transition.To))
	}
	if spec.Updates != nil {
		updates = append(updates, spec.Updates(in, gift)...)
	}
	return append(updates, set(domain.FieldLastModifiedDate, in.Now))
}

func timelineDraft(spec *ActionSpec, in BuildInput, change domain.GiftChange) (domain.TimelineDraft, bool) {
	from := change.Before.WorkflowStatus
	draft := domain.TimelineDraft{
		GiftID:     change.Before.GiftID,
		FromStatus: &from,
		ToStatus:   change.ToStatus,
		ChangedBy:  in.ActorID,
	}

	switch spec.Timeline {
	case TimelineStatusChange:
		if !change.StatusChanged() {
			return domain.TimelineDraft{}, false
		}
	default:
		return domain.TimelineDraft{}, false
	}

	if spec.Remark != nil {
		draft.Remark = spec.Remark(in, change.Before)
	}
	return draft, true
}

// groupKey renders an update list so that identical lists produce identical keys.
// Values are plain strings, bools, times, enums or nil.
func groupKey(updates []domain.FieldUpdate) string {
	var b strings.Builder
	for _, u := range updates {
		b.WriteString(string(u.Field))
		b.WriteByte('=')
		switch v := u.Value.(type) {
		case nil:
			b.WriteString("<null>")
		case time.Time:
			b.WriteString(v.Format(time.RFC3339Nano))
		default:
			fmt.Fprintf(&b, "%v", v)
		}
		b.WriteByte(';')
	}
	return b.String()
}
