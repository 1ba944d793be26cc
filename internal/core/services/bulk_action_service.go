package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
)

// DefaultMaxBatchSize caps the number of gift ids accepted in one request.
const DefaultMaxBatchSize = 500

// bulkActionService implements the BulkActionSvcFacade interface
type bulkActionService struct {
	BaseService
	registry    *ActionRegistry
	validator   *ActionValidator
	mutator     *BatchMutator
	coordinator *TransactionCoordinator
	giftReader  portsrepo.GiftReader
	publisher   portssvc.PostCommitPublisher
	metrics     *BulkActionMetrics
	maxBatch    int
	now         func() time.Time
}

// BulkActionOption is a functional option for configuring the bulk action service
type BulkActionOption func(*bulkActionService)

// WithPostCommitPublisher sets where committed events are sent.
func WithPostCommitPublisher(p portssvc.PostCommitPublisher) BulkActionOption {
	return func(s *bulkActionService) {
		s.publisher = p
	}
}

// WithBulkActionMetrics enables Prometheus metrics.
func WithBulkActionMetrics(m *BulkActionMetrics) BulkActionOption {
	return func(s *bulkActionService) {
		s.metrics = m
	}
}

// WithMaxBatchSize overrides DefaultMaxBatchSize. Non-positive values are ignored.
func WithMaxBatchSize(n int) BulkActionOption {
	return func(s *bulkActionService) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// WithClock overrides the time source used for lastModifiedDate and timeline stamps.
func WithClock(now func() time.Time) BulkActionOption {
	return func(s *bulkActionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBulkActionService wires the engine. registry is built once by the caller and shared.
func NewBulkActionService(registry *ActionRegistry, giftRepo portsrepo.GiftRepositoryWithTx, timelineRepo portsrepo.TimelineWriter, options ...BulkActionOption) portssvc.BulkActionSvcFacade {
	svc := &bulkActionService{
		registry:    registry,
		validator:   NewActionValidator(registry.Workflow()),
		mutator:     NewBatchMutator(),
		coordinator: NewTransactionCoordinator(giftRepo, giftRepo, timelineRepo),
		giftReader:  giftRepo,
		maxBatch:    DefaultMaxBatchSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure bulkActionService implements the portssvc.BulkActionSvcFacade interface
var _ portssvc.BulkActionSvcFacade = (*bulkActionService)(nil)

// ListActions implements portssvc.BulkActionCatalog
func (s *bulkActionService) ListActions() []portssvc.ActionDescriptor {
	return s.registry.Descriptors()
}

// ExecuteBulkAction implements portssvc.BulkActionExecutor
func (s *bulkActionService) ExecuteBulkAction(ctx context.Context, req domain.BulkActionRequest) (*domain.BulkActionResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("action", string(req.Action)), slog.String("actor_id", req.ActorID))
	s.metrics.observeRequest(string(req.Action), len(req.GiftIDs))

	result, err := s.execute(ctx, logger, req)
	s.metrics.observeOutcome(string(req.Action), outcomeOf(err))
	if err != nil {
		return nil, err
	}
	s.metrics.observeTimeline(string(req.Action), result.TimelineEntriesLogged)
	return result, nil
}

func (s *bulkActionService) execute(ctx context.Context, logger *slog.Logger, req domain.BulkActionRequest) (*domain.BulkActionResult, error) {
	// --- Stateless input checks (no datastore access) ---
	spec, ok := s.registry.Lookup(req.Action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, req.Action)
	}
	if strings.TrimSpace(req.ActorID) == "" {
		return nil, fmt.Errorf("%w: actorId is required", apperrors.ErrValidation)
	}
	giftIDs, err := normalizeGiftIDs(req.GiftIDs, s.maxBatch)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePayload(spec, req.Payload); err != nil {
		logger.Warn("Bulk action payload rejected", slog.String("error", err.Error()))
		return nil, err
	}

	// --- Snapshot and guard validation ---
	snapshot, err := s.giftReader.FindGiftsByIDs(ctx, giftIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load gift snapshot", slog.String("action", string(req.Action)))
		return nil, fmt.Errorf("%w: failed to load gift snapshot: %w", apperrors.ErrInternal, err)
	}

	violations, requiresModal := s.validator.ValidateSnapshots(spec, req.Payload, giftIDs, snapshot)
	if len(violations) > 0 {
		logger.Warn("Bulk action precondition failed",
			slog.Int("invalid_gifts", len(violations)), slog.Int("requested", len(giftIDs)))
		return nil, &apperrors.PreconditionError{
			Message:       fmt.Sprintf("%d of %d gifts cannot be processed by %s", len(violations), len(giftIDs), spec.Action),
			Violations:    violations,
			RequiresModal: requiresModal,
		}
	}

	skipped := make([]int64, 0)
	for _, id := range giftIDs {
		if _, found := snapshot[id]; !found {
			skipped = append(skipped, id)
		}
	}

	// --- Mutation ---
	plan := s.mutator.Plan(spec, domain.BulkActionRequest{
		Action:  req.Action,
		GiftIDs: giftIDs,
		ActorID: req.ActorID,
		Payload: req.Payload,
	}, giftIDs, snapshot, s.now())

	commit, err := s.coordinator.Execute(ctx, plan)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoChange) && !errors.Is(err, apperrors.ErrConcurrentModification) {
			s.LogError(ctx, err, "Bulk action transaction failed", slog.String("action", string(req.Action)))
		}
		return nil, err
	}

	logger.Info("Bulk action committed",
		slog.Int64("affected_rows", commit.AffectedRows),
		slog.Int("timeline_entries", commit.TimelineEntriesLogged),
		slog.Int("skipped", len(skipped)))

	// --- Post-commit side effects ---
	if s.publisher != nil && spec.Notification != domain.NotificationNone {
		s.publisher.Publish(ctx, domain.CommittedEvent{
			Action:       spec.Action,
			Notification: spec.Notification,
			ActorID:      req.ActorID,
			Payload:      req.Payload,
			CommittedAt:  plan.Now,
			Changes:      plan.Changes,
		})
	}

	return &domain.BulkActionResult{
		Action:                spec.Action,
		TotalRequested:        len(giftIDs),
		AffectedRows:          commit.AffectedRows,
		TimelineEntriesLogged: commit.TimelineEntriesLogged,
		Changes:               plan.Changes,
		SkippedGiftIDs:        skipped,
	}, nil
}

// normalizeGiftIDs rejects empty, oversized or non-positive id sets and drops duplicates, keeping first-seen order.
func normalizeGiftIDs(ids []int64, limit int) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: giftIds must not be empty", apperrors.ErrValidation)
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: invalid gift id %d", apperrors.ErrValidation, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if limit > 0 && len(out) > limit {
		return nil, fmt.Errorf("%w: at most %d gifts can be processed per request, got %d", apperrors.ErrValidation, limit, len(out))
	}
	return out, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, apperrors.ErrValidation):
		return OutcomeInvalidInput
	case errors.Is(err, apperrors.ErrPrecondition):
		return OutcomePrecondition
	case errors.Is(err, apperrors.ErrNoChange):
		return OutcomeNoChange
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
