package pgsql

import (
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GiftRepo:         newPgxGiftRepository(dbPool),
		TimelineRepo:     newPgxTimelineRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
