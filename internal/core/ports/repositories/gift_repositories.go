package repositories

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// GiftReader defines read operations for gift data
type GiftReader interface {
	// FindGiftByID retrieves a single gift. Returns apperrors.ErrNotFound when absent.
	FindGiftByID(ctx context.Context, giftID int64) (*domain.GiftRecord, error)

	// FindGiftsByIDs loads a snapshot of the given gifts in one read.
	// Ids that do not exist are simply absent from the returned map.
	FindGiftsByIDs(ctx context.Context, giftIDs []int64) (map[int64]domain.GiftRecord, error)
}

// GiftWriter defines write operations for gift data
type GiftWriter interface {
	// ApplyMutations executes every mutation group inside tx and returns the total affected row count.
	ApplyMutations(ctx context.Context, tx pgx.Tx, groups []domain.MutationGroup) (int64, error)
}

// GiftRepositoryFacade combines all gift-related repository interfaces
type GiftRepositoryFacade interface {
	GiftReader
	GiftWriter
}

// GiftRepositoryWithTx extends GiftRepositoryFacade with transaction capabilities
type GiftRepositoryWithTx interface {
	GiftRepositoryFacade
	TransactionManager
}
