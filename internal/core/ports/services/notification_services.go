package services

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// NotificationDispatcher delivers a notification. Callers treat every error as non-fatal.
type NotificationDispatcher interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// PostCommitPublisher receives events for batches that have already committed.
// Publish must not block on delivery.
type PostCommitPublisher interface {
	Publish(ctx context.Context, event domain.CommittedEvent)
}
