package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkflowStatus is the approval stage a gift request is in.
type WorkflowStatus string

const (
	StatusKAMRequest       WorkflowStatus = "KAM_Request"
	StatusManagerReview    WorkflowStatus = "Manager_Review"
	StatusMKTOpsProcessing WorkflowStatus = "MKTOps_Processing"
	StatusKAMProof         WorkflowStatus = "KAM_Proof"
	StatusSalesOpsAudit    WorkflowStatus = "SalesOps_Audit"
	StatusCompleted        WorkflowStatus = "Completed"
	StatusRejected         WorkflowStatus = "Rejected"
)

// AllWorkflowStatuses lists every workflow status in pipeline order.
var AllWorkflowStatuses = []WorkflowStatus{
	StatusKAMRequest,
	StatusManagerReview,
	StatusMKTOpsProcessing,
	StatusKAMProof,
	StatusSalesOpsAudit,
	StatusCompleted,
	StatusRejected,
}

// IsValid reports whether s is one of the known workflow statuses.
func (s WorkflowStatus) IsValid() bool {
	for _, known := range AllWorkflowStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TrackingStatus is the physical shipment state. It is independent of WorkflowStatus.
type TrackingStatus string

const (
	TrackingPending   TrackingStatus = "Pending"
	TrackingInTransit TrackingStatus = "In Transit"
	TrackingDelivered TrackingStatus = "Delivered"
	TrackingFailed    TrackingStatus = "Failed"
)

// IsValid reports whether t is one of the known tracking statuses.
func (t TrackingStatus) IsValid() bool {
	switch t {
	case TrackingPending, TrackingInTransit, TrackingDelivered, TrackingFailed:
		return true
	}
	return false
}

// GiftRecord is a VIP gift request moving through the approval workflow.
type GiftRecord struct {
	GiftID         int64           `json:"giftId"`
	VIPID          string          `json:"vipId"`
	GiftItem       string          `json:"giftItem"`
	Cost           decimal.Decimal `json:"cost"`
	RequestedBy    string          `json:"requestedBy"` // KAM user id
	WorkflowStatus WorkflowStatus  `json:"workflowStatus"`
	TrackingStatus *TrackingStatus `json:"trackingStatus,omitempty"`

	// Manager review
	ApprovalReviewedBy *string `json:"approvalReviewedBy,omitempty"`
	RejectReason       *string `json:"rejectReason,omitempty"`

	// MKTOps fulfillment
	Dispatcher       *string    `json:"dispatcher,omitempty"`
	TrackingCode     *string    `json:"trackingCode,omitempty"`
	UploadedBO       bool       `json:"uploadedBo"`
	PurchasedBy      *string    `json:"purchasedBy,omitempty"`
	MKTPurchaseDate  *time.Time `json:"mktPurchaseDate,omitempty"`
	MKTDeliveredDate *time.Time `json:"mktDeliveredDate,omitempty"`

	// KAM proof
	GiftFeedback *string `json:"giftFeedback,omitempty"`
	KAMProofBy   *string `json:"kamProofBy,omitempty"`

	// SalesOps audit
	AuditedBy   *string    `json:"auditedBy,omitempty"`
	AuditDate   *time.Time `json:"auditDate,omitempty"`
	AuditRemark *string    `json:"auditRemark,omitempty"`

	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// HasTrackingStatus reports whether the gift currently has the given tracking status.
func (g GiftRecord) HasTrackingStatus(t TrackingStatus) bool {
	return g.TrackingStatus != nil && *g.TrackingStatus == t
}
