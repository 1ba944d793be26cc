package pgsql

import (
	"context"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/SscSPs/vip_gift_workflow/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for in-app notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationWriter {
	return &PgxNotificationRepository{pool: pool}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationWriter
var _ portsrepo.NotificationWriter = (*PgxNotificationRepository)(nil)

// SaveNotification stores one in-app notification outside of any batch transaction.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m, err := mapping.ToModelNotification(n)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map notification", err)
	}

	query := `
		INSERT INTO notifications (notification_id, kind, title, message, actor_id, target_roles, target_user_ids, gifts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.pool.Exec(ctx, query,
		m.NotificationID,
		m.Kind,
		m.Title,
		m.Message,
		m.ActorID,
		m.TargetRoles,
		m.TargetUserIDs,
		m.Gifts,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}
