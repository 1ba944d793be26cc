package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// ActionValidator checks a bulk request against the action's payload rules and snapshot guards.
type ActionValidator struct {
	workflow *domain.WorkflowModel
	validate *validator.Validate
}

// NewActionValidator creates a validator bound to wf.
func NewActionValidator(wf *domain.WorkflowModel) *ActionValidator {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("tracking_status", func(fl validator.FieldLevel) bool {
		return domain.TrackingStatus(fl.Field().String()).IsValid()
	})
	return &ActionValidator{workflow: wf, validate: v}
}

// ValidatePayload performs the stateless check that runs before any datastore access.
// Every problem is reported in one error wrapping apperrors.ErrValidation.
func (v *ActionValidator) ValidatePayload(spec *ActionSpec, payload domain.ActionPayload) error {
	var problems []string
	for _, rule := range spec.Payload {
		value := payload.Value(rule.Field)
		if value == nil {
			if rule.Required {
				problems = append(problems, fmt.Sprintf("missing required payload field %q", rule.Field))
			}
			continue
		}
		if rule.Tag == "" {
			continue
		}
		if err := v.validate.Var(value, rule.Tag); err != nil {
			problems = append(problems, fmt.Sprintf("invalid payload field %q: failed %q check", rule.Field, rule.Tag))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: action %s: %s", apperrors.ErrValidation, spec.Action, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateSnapshots applies the status check and the action guard to every gift in snapshot.
// It never stops at the first failure. giftIDs fixes the order of the returned violations;
// ids missing from snapshot are skipped.
func (v *ActionValidator) ValidateSnapshots(spec *ActionSpec, payload domain.ActionPayload, giftIDs []int64, snapshot map[int64]domain.GiftRecord) ([]apperrors.GiftViolation, bool) {
	var violations []apperrors.GiftViolation
	requiresModal := false

	for _, id := range giftIDs {
		gift, ok := snapshot[id]
		if !ok {
			continue
		}

		if !v.workflow.IsLegal(gift.WorkflowStatus, spec.Action) {
			violations = append(violations, apperrors.GiftViolation{
				GiftID: id,
				Issues: []string{illegalStatusIssue(spec, gift.WorkflowStatus)},
			})
			continue
		}

		if spec.Guard == nil {
			continue
		}
		res := spec.Guard(gift, payload)
		if len(res.Issues) == 0 {
			continue
		}
		if res.Remediable {
			requiresModal = true
		}
		violations = append(violations, apperrors.GiftViolation{GiftID: id, Issues: res.Issues})
	}

	return violations, requiresModal
}

func illegalStatusIssue(spec *ActionSpec, current domain.WorkflowStatus) string {
	allowed := make([]string, 0, len(spec.Transition.From))
	for _, s := range spec.Transition.From {
		allowed = append(allowed, string(s))
	}
	return fmt.Sprintf("Gift is in status %q; %s requires %s", string(current), spec.Action, strings.Join(allowed, " or "))
}
