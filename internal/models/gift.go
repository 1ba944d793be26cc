package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gift is the row shape of the gifts table.
type Gift struct {
	GiftID             int64           `json:"giftId"`
	VIPID              string          `json:"vipId"`
	GiftItem           string          `json:"giftItem"`
	Cost               decimal.Decimal `json:"cost"`
	RequestedBy        string          `json:"requestedBy"`
	WorkflowStatus     string          `json:"workflowStatus"`
	TrackingStatus     *string         `json:"trackingStatus"` // NULL until MKTOps starts shipping
	ApprovalReviewedBy *string         `json:"approvalReviewedBy"`
	RejectReason       *string         `json:"rejectReason"`
	Dispatcher         *string         `json:"dispatcher"`
	TrackingCode       *string         `json:"trackingCode"`
	UploadedBO         bool            `json:"uploadedBo"`
	PurchasedBy        *string         `json:"purchasedBy"`
	MKTPurchaseDate    *time.Time      `json:"mktPurchaseDate"`
	MKTDeliveredDate   *time.Time      `json:"mktDeliveredDate"`
	GiftFeedback       *string         `json:"giftFeedback"`
	KAMProofBy         *string         `json:"kamProofBy"`
	AuditedBy          *string         `json:"auditedBy"`
	AuditDate          *time.Time      `json:"auditDate"`
	AuditRemark        *string         `json:"auditRemark"`
	CreatedDate        time.Time       `json:"createdDate"`
	LastModifiedDate   time.Time       `json:"lastModifiedDate"`
}
