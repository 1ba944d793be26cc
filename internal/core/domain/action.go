package domain

import (
	"strings"
	"time"
)

// PayloadField names an action-specific input field.
type PayloadField string

const (
	PayloadReason         PayloadField = "reason"
	PayloadTrackingStatus PayloadField = "trackingStatus"
	PayloadCheckerName    PayloadField = "checkerName"
	PayloadAuditRemark    PayloadField = "auditRemark"
	PayloadFeedback       PayloadField = "feedback"
	PayloadUploadedBO     PayloadField = "uploadedBo"
	PayloadDispatcher     PayloadField = "dispatcher"
	PayloadTrackingCode   PayloadField = "trackingCode"
)

// ActionPayload carries the action-specific inputs of a bulk request.
// Unused fields are nil.
type ActionPayload struct {
	Reason         *string         `json:"reason,omitempty"`
	TrackingStatus *TrackingStatus `json:"trackingStatus,omitempty"`
	CheckerName    *string         `json:"checkerName,omitempty"`
	AuditRemark    *string         `json:"auditRemark,omitempty"`
	Feedback       *string         `json:"feedback,omitempty"`
	UploadedBO     *bool           `json:"uploadedBo,omitempty"`
	Dispatcher     *string         `json:"dispatcher,omitempty"`
	TrackingCode   *string         `json:"trackingCode,omitempty"`
}

// Value returns the raw value of a payload field, or nil when it was not supplied.
// Blank strings count as not supplied.
func (p ActionPayload) Value(field PayloadField) any {
	str := func(s *string) any {
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		return strings.TrimSpace(*s)
	}
	switch field {
	case PayloadReason:
		return str(p.Reason)
	case PayloadCheckerName:
		return str(p.CheckerName)
	case PayloadAuditRemark:
		return str(p.AuditRemark)
	case PayloadFeedback:
		return str(p.Feedback)
	case PayloadDispatcher:
		return str(p.Dispatcher)
	case PayloadTrackingCode:
		return str(p.TrackingCode)
	case PayloadTrackingStatus:
		if p.TrackingStatus == nil {
			return nil
		}
		return string(*p.TrackingStatus)
	case PayloadUploadedBO:
		if p.UploadedBO == nil {
			return nil
		}
		return *p.UploadedBO
	}
	return nil
}

// Text returns the trimmed value of a string payload field, or "" when absent.
func (p ActionPayload) Text(field PayloadField) string {
	if s, ok := p.Value(field).(string); ok {
		return s
	}
	return ""
}

// BulkActionRequest is the validated input of one bulk action.
type BulkActionRequest struct {
	Action  Action
	GiftIDs []int64
	ActorID string
	Payload ActionPayload
}

// GiftField names a mutable column of a gift record.
type GiftField string

const (
	FieldWorkflowStatus     GiftField = "workflowStatus"
	FieldTrackingStatus     GiftField = "trackingStatus"
	FieldApprovalReviewedBy GiftField = "approvalReviewedBy"
	FieldRejectReason       GiftField = "rejectReason"
	FieldDispatcher         GiftField = "dispatcher"
	FieldTrackingCode       GiftField = "trackingCode"
	FieldUploadedBO         GiftField = "uploadedBo"
	FieldPurchasedBy        GiftField = "purchasedBy"
	FieldMKTPurchaseDate    GiftField = "mktPurchaseDate"
	FieldMKTDeliveredDate   GiftField = "mktDeliveredDate"
	FieldGiftFeedback       GiftField = "giftFeedback"
	FieldKAMProofBy         GiftField = "kamProofBy"
	FieldAuditedBy          GiftField = "auditedBy"
	FieldAuditDate          GiftField = "auditDate"
	FieldAuditRemark        GiftField = "auditRemark"
	FieldLastModifiedDate   GiftField = "lastModifiedDate"
)

// FieldUpdate sets one column. A nil Value clears the column.
type FieldUpdate struct {
	Field GiftField
	Value any
}

// MutationGroup is a set of gifts that receive identical field updates.
type MutationGroup struct {
	GiftIDs []int64
	// ExpectedStatuses restricts the update to rows still in one of these statuses.
	// Empty means no status restriction.
	ExpectedStatuses []WorkflowStatus
	Updates          []FieldUpdate
}

// GiftChange describes what an action does to one gift.
type GiftChange struct {
	Before     GiftRecord
	ToStatus   WorkflowStatus
	ToTracking *TrackingStatus
}

// StatusChanged reports whether the change moves the gift to another workflow status.
func (c GiftChange) StatusChanged() bool {
	return c.Before.WorkflowStatus != c.ToStatus
}

// MutationPlan is the full write set of one bulk action.
type MutationPlan struct {
	Action   Action
	ActorID  string
	Payload  ActionPayload
	Now      time.Time
	Groups   []MutationGroup
	Timeline []TimelineDraft
	Changes  []GiftChange
}

// TargetCount is the number of rows the plan expects to update.
func (p *MutationPlan) TargetCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.GiftIDs)
	}
	return n
}

// TxState is the lifecycle state of a batch transaction.
type TxState string

const (
	TxIdle       TxState = "IDLE"
	TxBegin      TxState = "BEGIN"
	TxApplying   TxState = "APPLYING"
	TxCommitted  TxState = "COMMITTED"
	TxRolledBack TxState = "ROLLED_BACK"
)

// CommitResult is what the transaction coordinator reports after a commit.
type CommitResult struct {
	AffectedRows          int64
	TimelineEntriesLogged int
	State                 TxState
}

// CommittedEvent is emitted after a batch transaction commits.
type CommittedEvent struct {
	Action       Action
	Notification NotificationKind
	ActorID      string
	Payload      ActionPayload
	CommittedAt  time.Time
	Changes      []GiftChange
}

// BulkActionResult summarizes a committed bulk action.
type BulkActionResult struct {
	Action                Action
	TotalRequested        int
	AffectedRows          int64
	TimelineEntriesLogged int
	Changes               []GiftChange
	SkippedGiftIDs        []int64
}
