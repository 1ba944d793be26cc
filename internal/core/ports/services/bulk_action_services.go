package services

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// ActionDescriptor describes an accepted action for API clients.
type ActionDescriptor struct {
	Action          domain.Action           `json:"action"`
	RequiredPayload []domain.PayloadField   `json:"requiredPayload"`
	LegalFrom       []domain.WorkflowStatus `json:"legalFrom,omitempty"`
	ToStatus        *domain.WorkflowStatus  `json:"toStatus,omitempty"`
	WritesTimeline  bool                    `json:"writesTimeline"`
}

// BulkActionExecutor runs a bulk workflow action end to end.
type BulkActionExecutor interface {
	// ExecuteBulkAction validates and applies req atomically. Errors:
	//   apperrors.ErrValidation, *apperrors.PreconditionError, apperrors.ErrNoChange,
	//   apperrors.ErrConcurrentModification, *apperrors.TransactionError.
	ExecuteBulkAction(ctx context.Context, req domain.BulkActionRequest) (*domain.BulkActionResult, error)
}

// BulkActionCatalog lists the actions the engine accepts.
type BulkActionCatalog interface {
	ListActions() []ActionDescriptor
}

// BulkActionSvcFacade combines all bulk action service interfaces
type BulkActionSvcFacade interface {
	BulkActionExecutor
	BulkActionCatalog
}
