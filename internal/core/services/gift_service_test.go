package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/SscSPs/vip_gift_workflow/internal/dto"
	"github.com/SscSPs/vip_gift_workflow/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock TimelineReader ---
type MockTimelineReader struct {
	mock.Mock
}

var _ portsrepo.TimelineReader = (*MockTimelineReader)(nil)

func (m *MockTimelineReader) ListTimelineByGift(ctx context.Context, giftID int64, limit int, nextToken *string) ([]domain.TimelineEntry, *string, error) {
	args := m.Called(ctx, giftID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TimelineEntry), returnedNextToken, args.Error(2)
}

func TestGiftService_GetGiftByID(t *testing.T) {
	store := newMemStore(newGift(7, domain.StatusKAMProof))
	svc := NewGiftService(store, new(MockTimelineReader))
	ctx := context.Background()

	gift, err := svc.GetGiftByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusKAMProof, gift.WorkflowStatus)

	_, err = svc.GetGiftByID(ctx, 8)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetGiftByID(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGiftService_ListGiftTimeline(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(newGift(7, domain.StatusKAMProof))

	t.Run("returns page with token", func(t *testing.T) {
		timeline := new(MockTimelineReader)
		entries := []domain.TimelineEntry{{ID: 1, GiftID: 7, ToStatus: domain.StatusManagerReview, CreatedAt: testEpoch}}
		timeline.On("ListTimelineByGift", ctx, int64(7), 1, (*string)(nil)).Return(entries, "Mg", nil).Once()

		resp, err := NewGiftService(store, timeline).ListGiftTimeline(ctx, 7, dto.ListTimelineParams{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.GiftID)
		assert.Len(t, resp.Entries, 1)
		require.NotNil(t, resp.NextToken)
		assert.Equal(t, "Mg", *resp.NextToken)
		timeline.AssertExpectations(t)
	})

	t.Run("unknown gift never reads timeline", func(t *testing.T) {
		timeline := new(MockTimelineReader)
		_, err := NewGiftService(store, timeline).ListGiftTimeline(ctx, 99, dto.ListTimelineParams{Limit: 10})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		timeline.AssertNotCalled(t, "ListTimelineByGift", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		timeline := new(MockTimelineReader)
		timeline.On("ListTimelineByGift", ctx, int64(7), 10, (*string)(nil)).Return(nil, nil, errors.New("db down")).Once()
		_, err := NewGiftService(store, timeline).ListGiftTimeline(ctx, 7, dto.ListTimelineParams{Limit: 10})
		assert.EqualError(t, err, "db down")
	})
}

// memTimelineRepo lets memStore stand in for the full timeline facade.
type memTimelineRepo struct {
	*memStore
	*MockTimelineReader
}

func TestNewServiceContainer(t *testing.T) {
	store := newMemStore()
	cfg := &config.Config{BulkActionMaxGifts: 1}
	container, err := NewServiceContainer(cfg, portsrepo.RepositoryProvider{
		GiftRepo:     store,
		TimelineRepo: memTimelineRepo{memStore: store, MockTimelineReader: new(MockTimelineReader)},
	}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, container.BulkAction)
	require.NotNil(t, container.Gift)

	_, err = container.BulkAction.ExecuteBulkAction(context.Background(), domain.BulkActionRequest{
		Action:  domain.ActionApproveToProcessing,
		GiftIDs: []int64{1, 2},
		ActorID: "a",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "configured batch limit applies")
}
