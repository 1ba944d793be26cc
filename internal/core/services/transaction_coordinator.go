package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/SscSPs/vip_gift_workflow/internal/middleware"
)

// TransactionCoordinator applies a mutation plan and its timeline drafts all-or-nothing.
// It exclusively owns the transaction for the duration of one batch.
type TransactionCoordinator struct {
	txm      portsrepo.TransactionManager
	gifts    portsrepo.GiftWriter
	timeline portsrepo.TimelineWriter
}

// NewTransactionCoordinator creates a TransactionCoordinator.
func NewTransactionCoordinator(txm portsrepo.TransactionManager, gifts portsrepo.GiftWriter, timeline portsrepo.TimelineWriter) *TransactionCoordinator {
	return &TransactionCoordinator{txm: txm, gifts: gifts, timeline: timeline}
}

// Execute runs Idle -> Begin -> Applying -> {Committed | RolledBack}.
//
// Zero affected rows rolls back with apperrors.ErrNoChange. Fewer affected rows than planned means
// some gifts left their expected status after validation; that rolls back with
// apperrors.ErrConcurrentModification. Datastore failures roll back and return *apperrors.TransactionError.
func (c *TransactionCoordinator) Execute(ctx context.Context, plan *domain.MutationPlan) (*domain.CommitResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("action", string(plan.Action)))
	state := domain.TxIdle
	transition := func(next domain.TxState) {
		logger.Debug("Batch transaction state change", slog.String("from", string(state)), slog.String("to", string(next)))
		state = next
	}

	transition(domain.TxBegin)
	tx, err := c.txm.Begin(ctx)
	if err != nil {
		transition(domain.TxRolledBack)
		return nil, &apperrors.TransactionError{Stage: "begin", Err: err}
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := c.txm.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to roll back batch transaction", slog.String("error", rbErr.Error()))
		}
		transition(domain.TxRolledBack)
	}()

	transition(domain.TxApplying)
	planned := int64(plan.TargetCount())
	affected, err := c.gifts.ApplyMutations(ctx, tx, plan.Groups)
	if err != nil {
		return nil, &apperrors.TransactionError{Stage: "apply mutations", Err: err}
	}

	if affected == 0 {
		logger.Warn("Batch matched no rows at mutation time", slog.Int64("planned_rows", planned))
		return nil, apperrors.ErrNoChange
	}
	if affected < planned {
		logger.Warn("Batch matched fewer rows than validated",
			slog.Int64("planned_rows", planned), slog.Int64("affected_rows", affected))
		return nil, fmt.Errorf("%w: %d of %d validated gifts no longer match their expected status",
			apperrors.ErrConcurrentModification, planned-affected, planned)
	}

	logged, err := c.timeline.AppendBatch(ctx, tx, plan.Timeline, plan.Now)
	if err != nil {
		return nil, &apperrors.TransactionError{Stage: "append timeline", Err: err}
	}

	if err := c.txm.Commit(ctx, tx); err != nil {
		return nil, &apperrors.TransactionError{Stage: "commit", Err: err}
	}
	committed = true
	transition(domain.TxCommitted)

	return &domain.CommitResult{
		AffectedRows:          affected,
		TimelineEntriesLogged: logged,
		State:                 state,
	}, nil
}
