package services

import (
	"fmt"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/SscSPs/vip_gift_workflow/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case committed batches notify nobody.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.PostCommitPublisher, metrics *BulkActionMetrics) (*portssvc.ServiceContainer, error) {
	// The workflow model and registry are built once and shared by every request.
	registry, err := NewActionRegistry(domain.DefaultWorkflow())
	if err != nil {
		return nil, fmt.Errorf("failed to build action registry: %w", err)
	}

	options := []BulkActionOption{
		WithMaxBatchSize(cfg.BulkActionMaxGifts),
		WithBulkActionMetrics(metrics),
	}
	if publisher != nil {
		options = append(options, WithPostCommitPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		BulkAction: NewBulkActionService(registry, repos.GiftRepo, repos.TimelineRepo, options...),
		Gift:       NewGiftService(repos.GiftRepo, repos.TimelineRepo),
	}, nil
}
