package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
)

// EventEnqueuer is the subset of the PostHog client the notifier needs.
type EventEnqueuer interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any) error
}

// PosthogNotifier emits one PostHog event per targeted user, or one per role when no user is targeted.
// Email and push workflows subscribe to these events on the PostHog side.
type PosthogNotifier struct {
	client EventEnqueuer
}

// NewPosthogNotifier creates a PosthogNotifier.
func NewPosthogNotifier(client EventEnqueuer) *PosthogNotifier {
	return &PosthogNotifier{client: client}
}

var _ portssvc.NotificationDispatcher = (*PosthogNotifier)(nil)

// Notify implements portssvc.NotificationDispatcher. An unconfigured client is a no-op.
func (n *PosthogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if n.client == nil || !n.client.IsInitialized() {
		return nil
	}

	giftIDs := make([]int64, len(notification.Gifts))
	for i, g := range notification.Gifts {
		giftIDs[i] = g.GiftID
	}
	roles := make([]string, len(notification.TargetRoles))
	for i, r := range notification.TargetRoles {
		roles[i] = string(r)
	}
	props := map[string]any{
		"notification_id": notification.ID,
		"title":           notification.Title,
		"message":         notification.Message,
		"actor_id":        notification.ActorID,
		"target_roles":    roles,
		"gift_ids":        giftIDs,
		"gifts":           notification.Gifts,
	}

	recipients := notification.TargetUserIDs
	if len(recipients) == 0 {
		for _, r := range roles {
			recipients = append(recipients, "role:"+r)
		}
	}

	var errs []error
	for _, distinctID := range recipients {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := n.client.Enqueue(distinctID, string(notification.Kind), props); err != nil {
			errs = append(errs, fmt.Errorf("enqueue for %s: %w", distinctID, err))
		}
	}
	return errors.Join(errs...)
}
