// Package notify holds the NotificationDispatcher sinks used after a batch commits.
package notify

import (
	"context"
	"fmt"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
)

// InAppNotifier stores notifications for the in-app inbox.
type InAppNotifier struct {
	repo portsrepo.NotificationWriter
}

// NewInAppNotifier creates an InAppNotifier backed by repo.
func NewInAppNotifier(repo portsrepo.NotificationWriter) *InAppNotifier {
	return &InAppNotifier{repo: repo}
}

var _ portssvc.NotificationDispatcher = (*InAppNotifier)(nil)

// Notify implements portssvc.NotificationDispatcher.
func (n *InAppNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := n.repo.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("in-app notification %s: %w", notification.ID, err)
	}
	return nil
}
