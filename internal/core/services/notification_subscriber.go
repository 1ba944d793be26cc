package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/google/uuid"
)

// DefaultNotificationTimeout bounds one post-commit delivery.
const DefaultNotificationTimeout = 10 * time.Second

// NotificationSubscriber consumes committed events and delivers their notifications in the background.
// Delivery failures and panics are logged and counted, never returned.
type NotificationSubscriber struct {
	dispatcher portssvc.NotificationDispatcher
	logger     *slog.Logger
	metrics    *BulkActionMetrics
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewNotificationSubscriber creates a subscriber. A non-positive timeout selects DefaultNotificationTimeout.
func NewNotificationSubscriber(dispatcher portssvc.NotificationDispatcher, logger *slog.Logger, metrics *BulkActionMetrics, timeout time.Duration) *NotificationSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultNotificationTimeout
	}
	return &NotificationSubscriber{dispatcher: dispatcher, logger: logger, metrics: metrics, timeout: timeout}
}

// Ensure NotificationSubscriber implements the portssvc.PostCommitPublisher interface
var _ portssvc.PostCommitPublisher = (*NotificationSubscriber)(nil)

// Publish implements portssvc.PostCommitPublisher. It returns immediately.
func (s *NotificationSubscriber) Publish(ctx context.Context, event domain.CommittedEvent) {
	notifications := BuildNotifications(event)
	if len(notifications) == 0 {
		return
	}
	// The request context ends with the response; delivery must outlive it.
	base := context.WithoutCancel(ctx)
	for _, n := range notifications {
		s.wg.Add(1)
		go s.deliver(base, n)
	}
}

// Drain blocks until in-flight deliveries finish or ctx is done.
func (s *NotificationSubscriber) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *NotificationSubscriber) deliver(ctx context.Context, n domain.Notification) {
	defer s.wg.Done()
	logger := s.logger.With(slog.String("notification_id", n.ID), slog.String("kind", string(n.Kind)), slog.Int("gifts", len(n.Gifts)))
	defer func() {
		if r := recover(); r != nil {
			s.metrics.observeNotificationFailure(string(n.Kind))
			logger.Error("Notification dispatcher panicked (non-fatal)", slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.dispatcher.Notify(ctx, n); err != nil {
		s.metrics.observeNotificationFailure(string(n.Kind))
		logger.Warn("Failed to dispatch notification (non-fatal)", slog.String("error", err.Error()))
		return
	}
	logger.Debug("Notification dispatched")
}

// BuildNotifications maps a committed event to the notifications its contract requires.
// Events without a contract, and delivery updates that move no gift into Delivered, produce none.
func BuildNotifications(event domain.CommittedEvent) []domain.Notification {
	var changes []domain.GiftChange
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      event.Notification,
		ActorID:   event.ActorID,
		CreatedAt: event.CommittedAt,
	}

	switch event.Notification {
	case domain.NotificationRejection:
		changes = event.Changes
		n.Title = "Gift request rejected"
		n.Message = fmt.Sprintf("%d gift request(s) were rejected", len(changes))
		if reason := event.Payload.Text(domain.PayloadReason); reason != "" {
			n.Message += ": " + reason
		}
		n.TargetRoles = []domain.Role{domain.RoleKAM}
	case domain.NotificationRevert:
		changes = event.Changes
		n.Title = "Gift reverted to MKTOps processing"
		n.Message = fmt.Sprintf("%d gift(s) were sent back to MKTOps processing", len(changes))
		if reason := event.Payload.Text(domain.PayloadReason); reason != "" {
			n.Message += ": " + reason
		}
		n.TargetRoles = []domain.Role{domain.RoleMKTOps}
	case domain.NotificationDelivered:
		for _, c := range event.Changes {
			movedIn := c.ToTracking != nil && *c.ToTracking == domain.TrackingDelivered &&
				!c.Before.HasTrackingStatus(domain.TrackingDelivered)
			if movedIn {
				changes = append(changes, c)
			}
		}
		n.Title = "Gift delivered"
		n.Message = fmt.Sprintf("%d gift(s) were delivered and await proof of receipt", len(changes))
		n.TargetRoles = []domain.Role{domain.RoleKAM}
	default:
		return nil
	}

	if len(changes) == 0 {
		return nil
	}

	requesters := make(map[string]struct{})
	for _, c := range changes {
		g := c.Before
		n.Gifts = append(n.Gifts, domain.NotifiedGift{
			GiftID:       g.GiftID,
			VIPID:        g.VIPID,
			GiftItem:     g.GiftItem,
			Cost:         g.Cost.StringFixed(2),
			RequestedBy:  g.RequestedBy,
			TrackingCode: g.TrackingCode,
		})
		if strings.TrimSpace(g.RequestedBy) != "" {
			requesters[g.RequestedBy] = struct{}{}
		}
	}
	if n.Kind != domain.NotificationRevert {
		for id := range requesters {
			n.TargetUserIDs = append(n.TargetUserIDs, id)
		}
		sort.Strings(n.TargetUserIDs)
	}

	return []domain.Notification{n}
}
