package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TimelineWriter appends audit entries. Entries are never updated or deleted.
type TimelineWriter interface {
	// AppendBatch writes every draft inside tx, stamped with at. An empty batch is a no-op.
	AppendBatch(ctx context.Context, tx pgx.Tx, drafts []domain.TimelineDraft, at time.Time) (int, error)
}

// TimelineReader reads the history of a gift.
type TimelineReader interface {
	// ListTimelineByGift returns entries oldest-first using token-based pagination.
	ListTimelineByGift(ctx context.Context, giftID int64, limit int, nextToken *string) ([]domain.TimelineEntry, *string, error)
}

// TimelineRepositoryFacade combines timeline read and write operations
type TimelineRepositoryFacade interface {
	TimelineWriter
	TimelineReader
}
