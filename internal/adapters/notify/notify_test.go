package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationWriter struct {
	mock.Mock
}

func (m *mockNotificationWriter) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Notify(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type recordingEnqueuer struct {
	initialized bool
	failFor     string
	events      []string
	recipients  []string
}

func (r *recordingEnqueuer) IsInitialized() bool { return r.initialized }

func (r *recordingEnqueuer) Enqueue(distinctID string, event string, _ map[string]any) error {
	if distinctID == r.failFor {
		return errors.New("queue full")
	}
	r.recipients = append(r.recipients, distinctID)
	r.events = append(r.events, event)
	return nil
}

func sampleNotification() domain.Notification {
	return domain.Notification{
		ID:            "n-1",
		Kind:          domain.NotificationRejection,
		Title:         "Gift request rejected",
		TargetRoles:   []domain.Role{domain.RoleKAM},
		TargetUserIDs: []string{"kam-1", "kam-2"},
		Gifts:         []domain.NotifiedGift{{GiftID: 7}},
	}
}

func TestInAppNotifier(t *testing.T) {
	repo := new(mockNotificationWriter)
	n := sampleNotification()
	repo.On("SaveNotification", mock.Anything, n).Return(nil).Once()

	require.NoError(t, NewInAppNotifier(repo).Notify(context.Background(), n))
	repo.AssertExpectations(t)

	repo.On("SaveNotification", mock.Anything, n).Return(errors.New("db down")).Once()
	err := NewInAppNotifier(repo).Notify(context.Background(), n)
	assert.ErrorContains(t, err, "db down")
}

func TestPosthogNotifier(t *testing.T) {
	t.Run("one event per targeted user", func(t *testing.T) {
		client := &recordingEnqueuer{initialized: true}
		require.NoError(t, NewPosthogNotifier(client).Notify(context.Background(), sampleNotification()))
		assert.Equal(t, []string{"kam-1", "kam-2"}, client.recipients)
		assert.Equal(t, []string{"gift_rejected", "gift_rejected"}, client.events)
	})

	t.Run("roles when no user is targeted", func(t *testing.T) {
		client := &recordingEnqueuer{initialized: true}
		n := sampleNotification()
		n.TargetUserIDs = nil
		require.NoError(t, NewPosthogNotifier(client).Notify(context.Background(), n))
		assert.Equal(t, []string{"role:KAM"}, client.recipients)
	})

	t.Run("uninitialized client is a no-op", func(t *testing.T) {
		client := &recordingEnqueuer{}
		require.NoError(t, NewPosthogNotifier(client).Notify(context.Background(), sampleNotification()))
		assert.Empty(t, client.recipients)
	})

	t.Run("failures are joined and delivery continues", func(t *testing.T) {
		client := &recordingEnqueuer{initialized: true, failFor: "kam-1"}
		err := NewPosthogNotifier(client).Notify(context.Background(), sampleNotification())
		assert.ErrorContains(t, err, "kam-1")
		assert.Equal(t, []string{"kam-2"}, client.recipients)
	})
}

func TestFanoutDispatcher(t *testing.T) {
	n := sampleNotification()
	first, second := new(mockDispatcher), new(mockDispatcher)
	first.On("Notify", mock.Anything, n).Return(errors.New("boom"))
	second.On("Notify", mock.Anything, n).Return(nil)

	err := NewFanoutDispatcher(first, nil, second).Notify(context.Background(), n)
	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
