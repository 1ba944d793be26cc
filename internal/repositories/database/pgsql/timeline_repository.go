package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/SscSPs/vip_gift_workflow/internal/models"
	"github.com/SscSPs/vip_gift_workflow/internal/utils/mapping"
	"github.com/SscSPs/vip_gift_workflow/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimelinePageSize = 50

type PgxTimelineRepository struct {
	BaseRepository
}

// newPgxTimelineRepository creates a new repository for the gift timeline.
func newPgxTimelineRepository(pool *pgxpool.Pool) portsrepo.TimelineRepositoryFacade {
	return &PgxTimelineRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTimelineRepository implements portsrepo.TimelineRepositoryFacade
var _ portsrepo.TimelineRepositoryFacade = (*PgxTimelineRepository)(nil)

// AppendBatch inserts one timeline row per draft inside tx, all stamped at.
func (r *PgxTimelineRepository) AppendBatch(ctx context.Context, tx pgx.Tx, drafts []domain.TimelineDraft, at time.Time) (int, error) {
	if len(drafts) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO gift_timeline (gift_id, from_status, to_status, changed_by, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, d := range drafts {
		m := mapping.ToModelTimelineEntry(d)
		batch.Queue(query, m.GiftID, m.FromStatus, m.ToStatus, m.ChangedBy, m.Remark, at)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range drafts {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to insert timeline entry for gift %d", drafts[i].GiftID), err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to close timeline batch", err)
	}
	return len(drafts), nil
}

// ListTimelineByGift returns the history of one gift, oldest first, using token-based pagination.
func (r *PgxTimelineRepository) ListTimelineByGift(ctx context.Context, giftID int64, limit int, nextToken *string) ([]domain.TimelineEntry, *string, error) {
	if limit <= 0 {
		limit = defaultTimelinePageSize
	}

	query := `
		SELECT timeline_id, gift_id, from_status, to_status, changed_by, remark, created_at
		FROM gift_timeline
		WHERE gift_id = $1
	`
	args := []any{giftID}

	if nextToken != nil && *nextToken != "" {
		lastID, err := pagination.DecodeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastID)
		query += fmt.Sprintf(" AND timeline_id > $%d", len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY timeline_id ASC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query timeline for gift %d: %w", giftID, err)
	}
	defer rows.Close()

	var entries []models.TimelineEntry
	for rows.Next() {
		var m models.TimelineEntry
		if err := rows.Scan(&m.TimelineID, &m.GiftID, &m.FromStatus, &m.ToStatus, &m.ChangedBy, &m.Remark, &m.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan timeline row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating timeline rows: %w", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeIDToken(entries[limit-1].TimelineID)
		nextTokenVal = &token
	}
	return mapping.ToDomainTimelineSlice(entries), nextTokenVal, nil
}
