package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
)

// TimelinePolicy decides which gifts of a batch get a timeline entry.
type TimelinePolicy int

const (
	// TimelineNone never writes entries (metadata-only actions).
	TimelineNone TimelinePolicy = iota
	// TimelineStatusChange writes one entry per gift whose workflow status changes.
	TimelineStatusChange
)

// PayloadRule checks one payload field. Tag is a go-playground/validator tag applied to present values.
type PayloadRule struct {
	Field    domain.PayloadField
	Required bool
	Tag      string
}

// GuardResult is what a snapshot guard found wrong with one gift.
type GuardResult struct {
	Issues []string
	// Remediable signals that the caller can fix the issue inline (e.g. by supplying feedback).
	Remediable bool
}

// BuildInput is what an action needs to compute the field updates for one gift.
type BuildInput struct {
	ActorID string
	Payload domain.ActionPayload
	Now     time.Time
}

// ActionSpec is the declarative description of one canonical action.
type ActionSpec struct {
	Action       domain.Action
	Transition   domain.Transition
	Payload      []PayloadRule
	Guard        func(g domain.GiftRecord, p domain.ActionPayload) GuardResult
	Updates      func(in BuildInput, g domain.GiftRecord) []domain.FieldUpdate
	Timeline     TimelinePolicy
	Remark       func(in BuildInput, g domain.GiftRecord) string
	Notification domain.NotificationKind
}

// RequiredFields lists the payload fields the action cannot run without.
func (s *ActionSpec) RequiredFields() []domain.PayloadField {
	fields := make([]domain.PayloadField, 0, len(s.Payload))
	for _, r := range s.Payload {
		if r.Required {
			fields = append(fields, r.Field)
		}
	}
	return fields
}

// ActionRegistry maps every canonical action to its spec. It is built once at startup.
type ActionRegistry struct {
	workflow *domain.WorkflowModel
	specs    map[domain.Action]*ActionSpec
}

// NewActionRegistry builds the registry for wf and fails if any canonical action is left unbound.
func NewActionRegistry(wf *domain.WorkflowModel) (*ActionRegistry, error) {
	r := &ActionRegistry{workflow: wf, specs: make(map[domain.Action]*ActionSpec)}
	for _, spec := range defaultActionSpecs() {
		t, ok := wf.Transition(spec.Action)
		if !ok {
			return nil, fmt.Errorf("action %q has no transition in the workflow model", spec.Action)
		}
		if _, dup := r.specs[spec.Action]; dup {
			return nil, fmt.Errorf("action %q registered twice", spec.Action)
		}
		spec.Transition = t
		if spec.Timeline == TimelineStatusChange && !t.ChangesStatus() {
			return nil, fmt.Errorf("action %q logs status changes but does not change status", spec.Action)
		}
		r.specs[spec.Action] = spec
	}
	for _, a := range domain.AllActions {
		if _, ok := r.specs[a]; !ok {
			return nil, fmt.Errorf("action %q has no registered spec", a)
		}
	}
	return r, nil
}

// Workflow returns the workflow model the registry was built for.
func (r *ActionRegistry) Workflow() *domain.WorkflowModel {
	return r.workflow
}

// Lookup returns the spec of a canonical action.
func (r *ActionRegistry) Lookup(action domain.Action) (*ActionSpec, bool) {
	spec, ok := r.specs[action]
	return spec, ok
}

// Descriptors lists every action in declaration order.
func (r *ActionRegistry) Descriptors() []portssvc.ActionDescriptor {
	out := make([]portssvc.ActionDescriptor, 0, len(domain.AllActions))
	for _, a := range domain.AllActions {
		spec := r.specs[a]
		out = append(out, portssvc.ActionDescriptor{
			Action:          a,
			RequiredPayload: spec.RequiredFields(),
			LegalFrom:       spec.Transition.From,
			ToStatus:        spec.Transition.To,
			WritesTimeline:  spec.Timeline != TimelineNone,
		})
	}
	return out
}

func set(field domain.GiftField, value any) domain.FieldUpdate {
	return domain.FieldUpdate{Field: field, Value: value}
}

func unset(field domain.GiftField) domain.FieldUpdate {
	return domain.FieldUpdate{Field: field, Value: nil}
}

func trackingLabel(t *domain.TrackingStatus) string {
	if t == nil {
		return "none"
	}
	return string(*t)
}

func withReason(base string, p domain.ActionPayload) string {
	if reason := p.Text(domain.PayloadReason); reason != "" {
		return base + ": " + reason
	}
	return base
}

func defaultActionSpecs() []*ActionSpec {
	return []*ActionSpec{
		{
			Action: domain.ActionApproveToProcessing,
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldApprovalReviewedBy, in.ActorID),
					unset(domain.FieldRejectReason),
				}
			},
			Timeline: TimelineStatusChange,
			Remark: func(BuildInput, domain.GiftRecord) string {
				return "Approved, moved to MKTOps processing"
			},
		},
		{
			Action:  domain.ActionRejectFromReview,
			Payload: []PayloadRule{{Field: domain.PayloadReason, Required: true, Tag: "max=500"}},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldRejectReason, in.Payload.Text(domain.PayloadReason)),
					set(domain.FieldApprovalReviewedBy, in.ActorID),
				}
			},
			Timeline: TimelineStatusChange,
			Remark: func(in BuildInput, _ domain.GiftRecord) string {
				return withReason("Rejected during review", in.Payload)
			},
			Notification: domain.NotificationRejection,
		},
		{
			Action:  domain.ActionRejectFromProcessing,
			Payload: []PayloadRule{{Field: domain.PayloadReason, Required: true, Tag: "max=500"}},
			Guard: func(g domain.GiftRecord, _ domain.ActionPayload) GuardResult {
				switch {
				case g.HasTrackingStatus(domain.TrackingPending),
					g.HasTrackingStatus(domain.TrackingInTransit),
					g.HasTrackingStatus(domain.TrackingDelivered):
					return GuardResult{Issues: []string{fmt.Sprintf(
						"Cannot reject gift with tracking status %q. Gift is already in the delivery process.",
						string(*g.TrackingStatus))}}
				}
				return GuardResult{}
			},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{set(domain.FieldRejectReason, in.Payload.Text(domain.PayloadReason))}
			},
			Timeline: TimelineStatusChange,
			Remark: func(in BuildInput, _ domain.GiftRecord) string {
				return withReason("Rejected during MKTOps processing", in.Payload)
			},
			Notification: domain.NotificationRejection,
		},
		{
			Action: domain.ActionProceedToKAMProof,
			Guard: func(g domain.GiftRecord, _ domain.ActionPayload) GuardResult {
				var issues []string
				if g.Dispatcher == nil || strings.TrimSpace(*g.Dispatcher) == "" {
					issues = append(issues, "Missing DISPATCHER")
				}
				if g.TrackingCode == nil || strings.TrimSpace(*g.TrackingCode) == "" {
					issues = append(issues, "Missing TRACKING_CODE")
				}
				if !g.HasTrackingStatus(domain.TrackingDelivered) {
					issues = append(issues, fmt.Sprintf("Tracking status must be %q (current: %q)",
						string(domain.TrackingDelivered), trackingLabel(g.TrackingStatus)))
				}
				return GuardResult{Issues: issues}
			},
			Updates: func(in BuildInput, g domain.GiftRecord) []domain.FieldUpdate {
				if g.PurchasedBy != nil && *g.PurchasedBy != "" {
					return nil
				}
				return []domain.FieldUpdate{set(domain.FieldPurchasedBy, in.ActorID)}
			},
			Timeline: TimelineStatusChange,
			Remark: func(BuildInput, domain.GiftRecord) string {
				return "Delivered, awaiting KAM proof"
			},
		},
		{
			Action:  domain.ActionFillFeedbackAndProceed,
			Payload: []PayloadRule{{Field: domain.PayloadFeedback, Required: true, Tag: "max=2000"}},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldGiftFeedback, in.Payload.Text(domain.PayloadFeedback)),
					set(domain.FieldKAMProofBy, in.ActorID),
				}
			},
			Timeline: TimelineStatusChange,
			Remark: func(BuildInput, domain.GiftRecord) string {
				return "Feedback submitted, moved to SalesOps audit"
			},
		},
		{
			Action: domain.ActionProceedToAudit,
			Guard: func(g domain.GiftRecord, _ domain.ActionPayload) GuardResult {
				if g.GiftFeedback == nil || strings.TrimSpace(*g.GiftFeedback) == "" {
					return GuardResult{Issues: []string{"Missing GIFT_FEEDBACK"}, Remediable: true}
				}
				return GuardResult{}
			},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{set(domain.FieldKAMProofBy, in.ActorID)}
			},
			Timeline: TimelineStatusChange,
			Remark: func(BuildInput, domain.GiftRecord) string {
				return "Proof confirmed, moved to SalesOps audit"
			},
		},
		{
			Action:  domain.ActionRevertToMKTOps,
			Payload: []PayloadRule{{Field: domain.PayloadReason, Tag: "max=500"}},
			Updates: func(BuildInput, domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{unset(domain.FieldKAMProofBy)}
			},
			Timeline: TimelineStatusChange,
			Remark: func(in BuildInput, _ domain.GiftRecord) string {
				return withReason("Reverted to MKTOps processing", in.Payload)
			},
			Notification: domain.NotificationRevert,
		},
		{
			Action: domain.ActionMarkCompleted,
			Payload: []PayloadRule{
				{Field: domain.PayloadCheckerName, Required: true, Tag: "max=100"},
				{Field: domain.PayloadAuditRemark, Tag: "max=1000"},
			},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				updates := []domain.FieldUpdate{
					set(domain.FieldAuditedBy, in.Payload.Text(domain.PayloadCheckerName)),
					set(domain.FieldAuditDate, in.Now),
				}
				if remark := in.Payload.Text(domain.PayloadAuditRemark); remark != "" {
					updates = append(updates, set(domain.FieldAuditRemark, remark))
				}
				return updates
			},
			Timeline: TimelineStatusChange,
			Remark: func(in BuildInput, _ domain.GiftRecord) string {
				return "Audit completed by " + in.Payload.Text(domain.PayloadCheckerName)
			},
		},
		{
			Action:  domain.ActionMarkAsIssue,
			Payload: []PayloadRule{{Field: domain.PayloadAuditRemark, Required: true, Tag: "max=1000"}},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldAuditRemark, in.Payload.Text(domain.PayloadAuditRemark)),
					set(domain.FieldAuditedBy, in.ActorID),
					set(domain.FieldAuditDate, in.Now),
				}
			},
			Timeline: TimelineStatusChange,
			Remark: func(in BuildInput, _ domain.GiftRecord) string {
				return "Audit issue raised: " + in.Payload.Text(domain.PayloadAuditRemark)
			},
		},
		{
			Action:  domain.ActionToggleBOUploaded,
			Payload: []PayloadRule{{Field: domain.PayloadUploadedBO, Required: true}},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{set(domain.FieldUploadedBO, *in.Payload.UploadedBO)}
			},
			Timeline: TimelineNone,
		},
		{
			Action:  domain.ActionUpdateDeliveryStatus,
			Payload: []PayloadRule{{Field: domain.PayloadTrackingStatus, Required: true, Tag: "tracking_status"}},
			Updates: func(in BuildInput, g domain.GiftRecord) []domain.FieldUpdate {
				next := *in.Payload.TrackingStatus
				updates := []domain.FieldUpdate{set(domain.FieldTrackingStatus, next)}
				wasDelivered := g.HasTrackingStatus(domain.TrackingDelivered)
				switch {
				case next == domain.TrackingDelivered && !wasDelivered:
					updates = append(updates, set(domain.FieldMKTDeliveredDate, in.Now))
				case next != domain.TrackingDelivered && wasDelivered:
					updates = append(updates, unset(domain.FieldMKTDeliveredDate))
				}
				return updates
			},
			// Tracking is shipment metadata; the workflow history stays untouched.
			Timeline:     TimelineNone,
			Notification: domain.NotificationDelivered,
		},
		{
			Action: domain.ActionUpdateTrackingInfo,
			Payload: []PayloadRule{
				{Field: domain.PayloadDispatcher, Required: true, Tag: "max=100"},
				{Field: domain.PayloadTrackingCode, Required: true, Tag: "max=100"},
			},
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldDispatcher, in.Payload.Text(domain.PayloadDispatcher)),
					set(domain.FieldTrackingCode, in.Payload.Text(domain.PayloadTrackingCode)),
				}
			},
			Timeline: TimelineNone,
		},
		{
			Action: domain.ActionMarkPurchased,
			Updates: func(in BuildInput, _ domain.GiftRecord) []domain.FieldUpdate {
				return []domain.FieldUpdate{
					set(domain.FieldPurchasedBy, in.ActorID),
					set(domain.FieldMKTPurchaseDate, in.Now),
				}
			},
			Timeline: TimelineNone,
		},
	}
}
