package repositories

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
)

// NotificationWriter stores in-app notifications. It never participates in a batch transaction.
type NotificationWriter interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
}
