package domain_test

import (
	"testing"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWorkflow_IsLegal(t *testing.T) {
	wf := domain.DefaultWorkflow()

	tests := []struct {
		name   string
		status domain.WorkflowStatus
		action domain.Action
		want   bool
	}{
		{"approve from KAM request", domain.StatusKAMRequest, domain.ActionApproveToProcessing, true},
		{"approve from manager review", domain.StatusManagerReview, domain.ActionApproveToProcessing, true},
		{"approve from processing", domain.StatusMKTOpsProcessing, domain.ActionApproveToProcessing, false},
		{"reject from review", domain.StatusManagerReview, domain.ActionRejectFromReview, true},
		{"reject from review when processing", domain.StatusMKTOpsProcessing, domain.ActionRejectFromReview, false},
		{"reject from processing", domain.StatusMKTOpsProcessing, domain.ActionRejectFromProcessing, true},
		{"proceed to kam proof", domain.StatusMKTOpsProcessing, domain.ActionProceedToKAMProof, true},
		{"fill feedback", domain.StatusKAMProof, domain.ActionFillFeedbackAndProceed, true},
		{"proceed to audit", domain.StatusKAMProof, domain.ActionProceedToAudit, true},
		{"revert to mktops", domain.StatusKAMProof, domain.ActionRevertToMKTOps, true},
		{"revert from audit", domain.StatusSalesOpsAudit, domain.ActionRevertToMKTOps, false},
		{"mark completed", domain.StatusSalesOpsAudit, domain.ActionMarkCompleted, true},
		{"mark completed twice", domain.StatusCompleted, domain.ActionMarkCompleted, false},
		{"mark as issue", domain.StatusSalesOpsAudit, domain.ActionMarkAsIssue, true},
		{"toggle bo on rejected", domain.StatusRejected, domain.ActionToggleBOUploaded, true},
		{"delivery status on completed", domain.StatusCompleted, domain.ActionUpdateDeliveryStatus, true},
		{"tracking info outside processing", domain.StatusKAMProof, domain.ActionUpdateTrackingInfo, false},
		{"unknown action", domain.StatusKAMRequest, domain.Action("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wf.IsLegal(tt.status, tt.action))
		})
	}
}

func TestDefaultWorkflow_Targets(t *testing.T) {
	wf := domain.DefaultWorkflow()

	tr, ok := wf.Transition(domain.ActionMarkAsIssue)
	require.True(t, ok)
	require.True(t, tr.ChangesStatus())
	assert.Equal(t, domain.StatusKAMProof, *tr.To)

	tr, ok = wf.Transition(domain.ActionToggleBOUploaded)
	require.True(t, ok)
	assert.False(t, tr.ChangesStatus())
	assert.True(t, tr.AllowsAny())
}

func TestNewWorkflowModel_RequiresEveryAction(t *testing.T) {
	_, err := domain.NewWorkflowModel([]domain.Transition{
		{Action: domain.ActionToggleBOUploaded},
	})
	assert.Error(t, err)

	_, err = domain.NewWorkflowModel([]domain.Transition{
		{Action: domain.ActionToggleBOUploaded},
		{Action: domain.ActionToggleBOUploaded},
	})
	assert.ErrorContains(t, err, "duplicate")
}

func TestActionPayload_Value(t *testing.T) {
	blank := "   "
	reason := " damaged "
	delivered := domain.TrackingDelivered
	uploaded := false

	p := domain.ActionPayload{Reason: &reason, Feedback: &blank, TrackingStatus: &delivered, UploadedBO: &uploaded}

	assert.Equal(t, "damaged", p.Value(domain.PayloadReason))
	assert.Nil(t, p.Value(domain.PayloadFeedback))
	assert.Nil(t, p.Value(domain.PayloadCheckerName))
	assert.Equal(t, "Delivered", p.Value(domain.PayloadTrackingStatus))
	assert.Equal(t, false, p.Value(domain.PayloadUploadedBO))
	assert.Equal(t, "damaged", p.Text(domain.PayloadReason))
	assert.Equal(t, "", p.Text(domain.PayloadUploadedBO))
}
