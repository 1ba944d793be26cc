package dto

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// BulkActionRequest is the body of POST /gifts/bulk-actions.
// ActorID is optional: the authenticated user is the actor, and a mismatching value is rejected.
type BulkActionRequest struct {
	Action  string               `json:"action" binding:"required"`
	GiftIDs []int64              `json:"giftIds" binding:"required,min=1,dive,gt=0"`
	ActorID string               `json:"actorId"`
	Payload domain.ActionPayload `json:"payload"`
}

// actionAliases maps every accepted identifier to its canonical action.
// Stage-named identifiers are bulk_<canonical>; the rest are kept for older clients.
var actionAliases = func() map[string]domain.Action {
	m := make(map[string]domain.Action, 3*len(domain.AllActions))
	for _, a := range domain.AllActions {
		m[string(a)] = a
		m["bulk_"+string(a)] = a
	}
	legacy := map[string]domain.Action{
		"bulk_approve":                            domain.ActionApproveToProcessing,
		"bulk_reject":                             domain.ActionRejectFromReview,
		"bulk_reject_with_reason":                 domain.ActionRejectFromReview,
		"bulk_reject_with_reason_from_processing": domain.ActionRejectFromProcessing,
		"bulk_move_to_kam_proof":                  domain.ActionProceedToKAMProof,
		"bulk_submit_feedback":                    domain.ActionFillFeedbackAndProceed,
		"bulk_move_to_audit":                      domain.ActionProceedToAudit,
		"bulk_revert":                             domain.ActionRevertToMKTOps,
		"bulk_complete":                           domain.ActionMarkCompleted,
		"bulk_audit_issue":                        domain.ActionMarkAsIssue,
		"bulk_set_bo_uploaded":                    domain.ActionToggleBOUploaded,
		"bulk_update_tracking_status":             domain.ActionUpdateDeliveryStatus,
	}
	for k, v := range legacy {
		m[k] = v
	}
	return m
}()

// ResolveAction maps an API identifier to its canonical action.
func ResolveAction(identifier string) (domain.Action, error) {
	a, ok := actionAliases[strings.ToLower(strings.TrimSpace(identifier))]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, identifier)
	}
	return a, nil
}

// AliasesOf lists the accepted identifiers of a canonical action, canonical name first.
func AliasesOf(action domain.Action) []string {
	out := []string{string(action), "bulk_" + string(action)}
	for k, v := range actionAliases {
		if v == action && k != string(action) && k != "bulk_"+string(action) {
			out = append(out, k)
		}
	}
	sort.Strings(out[2:])
	return out
}

// ToDomainBulkActionRequest resolves the action and settles the actor against the authenticated user.
func (r BulkActionRequest) ToDomainBulkActionRequest(authUserID string) (domain.BulkActionRequest, error) {
	action, err := ResolveAction(r.Action)
	if err != nil {
		return domain.BulkActionRequest{}, err
	}
	actor := strings.TrimSpace(r.ActorID)
	if actor != "" && actor != authUserID {
		return domain.BulkActionRequest{}, fmt.Errorf("%w: actorId does not match the authenticated user", apperrors.ErrValidation)
	}
	return domain.BulkActionRequest{
		Action:  action,
		GiftIDs: r.GiftIDs,
		ActorID: authUserID,
		Payload: r.Payload,
	}, nil
}

// UpdatedEntity describes one gift changed by a committed bulk action.
type UpdatedEntity struct {
	GiftID         int64                  `json:"giftId"`
	FromStatus     domain.WorkflowStatus  `json:"fromStatus"`
	ToStatus       domain.WorkflowStatus  `json:"toStatus"`
	TrackingStatus *domain.TrackingStatus `json:"trackingStatus,omitempty"`
}

// BulkActionData is the data member of a successful bulk action response.
type BulkActionData struct {
	Action                domain.Action   `json:"action"`
	TotalRequested        int             `json:"totalRequested"`
	AffectedRows          int64           `json:"affectedRows"`
	TimelineEntriesLogged int             `json:"timelineEntriesLogged"`
	UpdatedEntities       []UpdatedEntity `json:"updatedEntities"`
	SkippedGiftIDs        []int64         `json:"skippedGiftIds"`
}

// BulkActionResponse is the 200 envelope.
type BulkActionResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    BulkActionData `json:"data"`
}

// ErrorResponse is the envelope of every failed request. Optional members are only set where they apply.
type ErrorResponse struct {
	Success       bool                      `json:"success"`
	Message       string                    `json:"message"`
	InvalidGifts  []apperrors.GiftViolation `json:"invalidGifts,omitempty"`
	RequiresModal *bool                     `json:"requiresModal,omitempty"`
	Error         string                    `json:"error,omitempty"`
}

// ToBulkActionResponse builds the success envelope of a committed bulk action.
func ToBulkActionResponse(result *domain.BulkActionResult) BulkActionResponse {
	entities := make([]UpdatedEntity, len(result.Changes))
	for i, c := range result.Changes {
		entities[i] = UpdatedEntity{
			GiftID:         c.Before.GiftID,
			FromStatus:     c.Before.WorkflowStatus,
			ToStatus:       c.ToStatus,
			TrackingStatus: c.ToTracking,
		}
	}
	skipped := result.SkippedGiftIDs
	if skipped == nil {
		skipped = []int64{}
	}

	msg := fmt.Sprintf("%s applied to %d gift(s)", result.Action, result.AffectedRows)
	if len(skipped) > 0 {
		msg += fmt.Sprintf(", %d not found", len(skipped))
	}
	return BulkActionResponse{
		Success: true,
		Message: msg,
		Data: BulkActionData{
			Action:                result.Action,
			TotalRequested:        result.TotalRequested,
			AffectedRows:          result.AffectedRows,
			TimelineEntriesLogged: result.TimelineEntriesLogged,
			UpdatedEntities:       entities,
			SkippedGiftIDs:        skipped,
		},
	}
}

// ActionDescriptorResponse describes one accepted action.
type ActionDescriptorResponse struct {
	Action          domain.Action           `json:"action"`
	Aliases         []string                `json:"aliases"`
	RequiredPayload []domain.PayloadField   `json:"requiredPayload"`
	LegalFrom       []domain.WorkflowStatus `json:"legalFrom"`
	ToStatus        *domain.WorkflowStatus  `json:"toStatus,omitempty"`
	WritesTimeline  bool                    `json:"writesTimeline"`
}
