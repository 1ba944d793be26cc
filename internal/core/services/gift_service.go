package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/SscSPs/vip_gift_workflow/internal/dto"
)

// giftService implements the GiftSvcFacade interface
type giftService struct {
	BaseService
	giftRepo     portsrepo.GiftReader
	timelineRepo portsrepo.TimelineReader
}

// NewGiftService creates the read side of the gift workflow.
func NewGiftService(giftRepo portsrepo.GiftReader, timelineRepo portsrepo.TimelineReader) portssvc.GiftSvcFacade {
	return &giftService{giftRepo: giftRepo, timelineRepo: timelineRepo}
}

// Ensure giftService implements the portssvc.GiftSvcFacade interface
var _ portssvc.GiftSvcFacade = (*giftService)(nil)

// GetGiftByID implements portssvc.GiftReaderSvc
func (s *giftService) GetGiftByID(ctx context.Context, giftID int64) (*domain.GiftRecord, error) {
	if giftID <= 0 {
		return nil, fmt.Errorf("%w: invalid gift id %d", apperrors.ErrValidation, giftID)
	}
	gift, err := s.giftRepo.FindGiftByID(ctx, giftID)
	if err != nil {
		// Not found is an expected outcome.
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find gift by ID in repository", slog.Int64("gift_id", giftID))
		}
		return nil, err
	}
	return gift, nil
}

// ListGiftTimeline implements portssvc.GiftReaderSvc
func (s *giftService) ListGiftTimeline(ctx context.Context, giftID int64, params dto.ListTimelineParams) (*dto.ListTimelineResponse, error) {
	// The gift must exist; an empty history is otherwise indistinguishable from an unknown id.
	if _, err := s.GetGiftByID(ctx, giftID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.timelineRepo.ListTimelineByGift(ctx, giftID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list gift timeline", slog.Int64("gift_id", giftID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Gift timeline retrieved", slog.Int64("gift_id", giftID), slog.Int("entries", len(entries)))
	resp := dto.ToListTimelineResponse(giftID, entries, nextToken)
	return &resp, nil
}
