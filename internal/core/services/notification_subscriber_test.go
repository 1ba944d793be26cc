package services

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingDispatcher struct{}

func (panickingDispatcher) Notify(context.Context, domain.Notification) error {
	panic("template missing")
}

type blockingDispatcher struct {
	release chan struct{}
}

func (d blockingDispatcher) Notify(ctx context.Context, _ domain.Notification) error {
	select {
	case <-d.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func change(g domain.GiftRecord, to domain.WorkflowStatus, tracking *domain.TrackingStatus) domain.GiftChange {
	return domain.GiftChange{Before: g, ToStatus: to, ToTracking: tracking}
}

func TestBuildNotifications_Rejection(t *testing.T) {
	a := newGift(1, domain.StatusManagerReview)
	a.RequestedBy = "kam-b"
	a.Cost = decimal.NewFromInt(300)
	b := newGift(2, domain.StatusKAMRequest)
	b.RequestedBy = "kam-a"
	c := newGift(3, domain.StatusManagerReview)
	c.RequestedBy = "kam-b"

	out := BuildNotifications(domain.CommittedEvent{
		Action:       domain.ActionRejectFromReview,
		Notification: domain.NotificationRejection,
		ActorID:      "mgr-1",
		Payload:      domain.ActionPayload{Reason: strPtr("over budget")},
		CommittedAt:  testNow,
		Changes: []domain.GiftChange{
			change(a, domain.StatusRejected, nil),
			change(b, domain.StatusRejected, nil),
			change(c, domain.StatusRejected, nil),
		},
	})

	require.Len(t, out, 1)
	n := out[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, domain.NotificationRejection, n.Kind)
	assert.Equal(t, "3 gift request(s) were rejected: over budget", n.Message)
	assert.Equal(t, []domain.Role{domain.RoleKAM}, n.TargetRoles)
	assert.Equal(t, []string{"kam-a", "kam-b"}, n.TargetUserIDs)
	assert.Equal(t, "mgr-1", n.ActorID)
	assert.Equal(t, testNow, n.CreatedAt)
	require.Len(t, n.Gifts, 3)
	assert.Equal(t, "300.00", n.Gifts[0].Cost)
}

func TestBuildNotifications_RevertTargetsRoleOnly(t *testing.T) {
	out := BuildNotifications(domain.CommittedEvent{
		Notification: domain.NotificationRevert,
		Changes:      []domain.GiftChange{change(newGift(1, domain.StatusKAMProof), domain.StatusMKTOpsProcessing, nil)},
	})

	require.Len(t, out, 1)
	assert.Equal(t, []domain.Role{domain.RoleMKTOps}, out[0].TargetRoles)
	assert.Empty(t, out[0].TargetUserIDs)
	assert.Equal(t, "1 gift(s) were sent back to MKTOps processing", out[0].Message)
}

func TestBuildNotifications_DeliveredOnlyCountsNewDeliveries(t *testing.T) {
	delivered := trackingPtr(domain.TrackingDelivered)
	moving := newGift(1, domain.StatusMKTOpsProcessing)
	moving.TrackingStatus = trackingPtr(domain.TrackingInTransit)
	moving.TrackingCode = strPtr("TRK-1")
	already := newGift(2, domain.StatusMKTOpsProcessing)
	already.TrackingStatus = trackingPtr(domain.TrackingDelivered)

	out := BuildNotifications(domain.CommittedEvent{
		Notification: domain.NotificationDelivered,
		Changes: []domain.GiftChange{
			change(moving, domain.StatusMKTOpsProcessing, delivered),
			change(already, domain.StatusMKTOpsProcessing, delivered),
		},
	})
	require.Len(t, out, 1)
	require.Len(t, out[0].Gifts, 1)
	assert.Equal(t, int64(1), out[0].Gifts[0].GiftID)
	assert.Equal(t, "TRK-1", *out[0].Gifts[0].TrackingCode)

	failed := trackingPtr(domain.TrackingFailed)
	assert.Nil(t, BuildNotifications(domain.CommittedEvent{
		Notification: domain.NotificationDelivered,
		Changes:      []domain.GiftChange{change(moving, domain.StatusMKTOpsProcessing, failed)},
	}))
}

func TestBuildNotifications_NoContract(t *testing.T) {
	assert.Nil(t, BuildNotifications(domain.CommittedEvent{
		Notification: domain.NotificationNone,
		Changes:      []domain.GiftChange{change(newGift(1, domain.StatusManagerReview), domain.StatusMKTOpsProcessing, nil)},
	}))
	assert.Nil(t, BuildNotifications(domain.CommittedEvent{Notification: domain.NotificationRejection}))
}

func TestNotificationSubscriber_RecoversPanics(t *testing.T) {
	metrics := NewBulkActionMetrics(prometheus.NewRegistry())
	sub := NewNotificationSubscriber(panickingDispatcher{}, nil, metrics, time.Second)

	sub.Publish(context.Background(), domain.CommittedEvent{
		Notification: domain.NotificationRevert,
		Changes:      []domain.GiftChange{change(newGift(1, domain.StatusKAMProof), domain.StatusMKTOpsProcessing, nil)},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sub.Drain(ctx))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.notificationFailures.WithLabelValues(string(domain.NotificationRevert))))
}

func TestNotificationSubscriber_OutlivesRequestContext(t *testing.T) {
	release := make(chan struct{})
	sub := NewNotificationSubscriber(blockingDispatcher{release: release}, nil, nil, time.Second)

	reqCtx, cancelReq := context.WithCancel(context.Background())
	sub.Publish(reqCtx, domain.CommittedEvent{
		Notification: domain.NotificationRevert,
		Changes:      []domain.GiftChange{change(newGift(1, domain.StatusKAMProof), domain.StatusMKTOpsProcessing, nil)},
	})
	cancelReq()

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	assert.ErrorIs(t, sub.Drain(short), context.DeadlineExceeded)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, sub.Drain(ctx))
}

func TestNewNotificationSubscriber_DefaultTimeout(t *testing.T) {
	sub := NewNotificationSubscriber(panickingDispatcher{}, nil, nil, 0)
	assert.Equal(t, DefaultNotificationTimeout, sub.timeout)
}
