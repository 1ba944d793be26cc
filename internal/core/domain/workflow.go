package domain

import "fmt"

// Action is a canonical bulk workflow action. The set is closed: every value
// must appear in AllActions and have a transition in the workflow model.
type Action string

const (
	ActionApproveToProcessing    Action = "approve_to_processing"
	ActionRejectFromReview       Action = "reject_from_review"
	ActionRejectFromProcessing   Action = "reject_from_processing"
	ActionProceedToKAMProof      Action = "proceed_to_kam_proof"
	ActionFillFeedbackAndProceed Action = "fill_feedback_and_proceed"
	ActionProceedToAudit         Action = "proceed_to_audit"
	ActionRevertToMKTOps         Action = "revert_to_mktops"
	ActionMarkCompleted          Action = "mark_completed"
	ActionMarkAsIssue            Action = "mark_as_issue"
	ActionToggleBOUploaded       Action = "toggle_bo_uploaded"
	ActionUpdateDeliveryStatus   Action = "update_delivery_status"
	ActionUpdateTrackingInfo     Action = "update_tracking_info"
	ActionMarkPurchased          Action = "mark_purchased"
)

// AllActions lists every canonical action.
var AllActions = []Action{
	ActionApproveToProcessing,
	ActionRejectFromReview,
	ActionRejectFromProcessing,
	ActionProceedToKAMProof,
	ActionFillFeedbackAndProceed,
	ActionProceedToAudit,
	ActionRevertToMKTOps,
	ActionMarkCompleted,
	ActionMarkAsIssue,
	ActionToggleBOUploaded,
	ActionUpdateDeliveryStatus,
	ActionUpdateTrackingInfo,
	ActionMarkPurchased,
}

// Transition describes where an action may start and where it leaves a gift.
// A nil To means the action does not change the workflow status.
type Transition struct {
	Action Action
	From   []WorkflowStatus // empty means any status
	To     *WorkflowStatus
}

// ChangesStatus reports whether the transition moves the gift to another workflow status.
func (t Transition) ChangesStatus() bool {
	return t.To != nil
}

// AllowsAny reports whether the transition is legal from every status.
func (t Transition) AllowsAny() bool {
	return len(t.From) == 0
}

// WorkflowModel is the constructed-once table of legal action transitions.
type WorkflowModel struct {
	transitions map[Action]Transition
}

func statusPtr(s WorkflowStatus) *WorkflowStatus {
	return &s
}

// DefaultWorkflow returns the gift approval workflow.
func DefaultWorkflow() *WorkflowModel {
	review := []WorkflowStatus{StatusKAMRequest, StatusManagerReview}
	processing := []WorkflowStatus{StatusMKTOpsProcessing}
	proof := []WorkflowStatus{StatusKAMProof}
	audit := []WorkflowStatus{StatusSalesOpsAudit}

	m, err := NewWorkflowModel([]Transition{
		{Action: ActionApproveToProcessing, From: review, To: statusPtr(StatusMKTOpsProcessing)},
		{Action: ActionRejectFromReview, From: review, To: statusPtr(StatusRejected)},
		{Action: ActionRejectFromProcessing, From: processing, To: statusPtr(StatusRejected)},
		{Action: ActionProceedToKAMProof, From: processing, To: statusPtr(StatusKAMProof)},
		{Action: ActionFillFeedbackAndProceed, From: proof, To: statusPtr(StatusSalesOpsAudit)},
		{Action: ActionProceedToAudit, From: proof, To: statusPtr(StatusSalesOpsAudit)},
		{Action: ActionRevertToMKTOps, From: proof, To: statusPtr(StatusMKTOpsProcessing)},
		{Action: ActionMarkCompleted, From: audit, To: statusPtr(StatusCompleted)},
		{Action: ActionMarkAsIssue, From: audit, To: statusPtr(StatusKAMProof)},
		{Action: ActionToggleBOUploaded},
		{Action: ActionUpdateDeliveryStatus},
		{Action: ActionUpdateTrackingInfo, From: processing},
		{Action: ActionMarkPurchased, From: processing},
	})
	if err != nil {
		panic(err)
	}
	return m
}

// NewWorkflowModel builds a model and checks that every canonical action has exactly one transition.
func NewWorkflowModel(transitions []Transition) (*WorkflowModel, error) {
	m := &WorkflowModel{transitions: make(map[Action]Transition, len(transitions))}
	for _, t := range transitions {
		if _, dup := m.transitions[t.Action]; dup {
			return nil, fmt.Errorf("duplicate transition for action %q", t.Action)
		}
		m.transitions[t.Action] = t
	}
	for _, a := range AllActions {
		if _, ok := m.transitions[a]; !ok {
			return nil, fmt.Errorf("no transition declared for action %q", a)
		}
	}
	return m, nil
}

// Transition returns the declared transition for an action.
func (m *WorkflowModel) Transition(action Action) (Transition, bool) {
	t, ok := m.transitions[action]
	return t, ok
}

// IsLegal reports whether action may be applied to a gift currently in status.
func (m *WorkflowModel) IsLegal(status WorkflowStatus, action Action) bool {
	t, ok := m.transitions[action]
	if !ok {
		return false
	}
	if t.AllowsAny() {
		return true
	}
	for _, from := range t.From {
		if from == status {
			return true
		}
	}
	return false
}
