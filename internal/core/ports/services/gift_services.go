package services

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/SscSPs/vip_gift_workflow/internal/dto"
)

// GiftReaderSvc defines read-only gift operations
type GiftReaderSvc interface {
	GetGiftByID(ctx context.Context, giftID int64) (*domain.GiftRecord, error)
	ListGiftTimeline(ctx context.Context, giftID int64, params dto.ListTimelineParams) (*dto.ListTimelineResponse, error)
}

// GiftSvcFacade combines all gift service interfaces
type GiftSvcFacade interface {
	GiftReaderSvc
}
