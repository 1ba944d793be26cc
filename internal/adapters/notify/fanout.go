package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
)

// FanoutDispatcher delivers every notification to all sinks, in order.
// A failing sink does not stop the others; all failures are returned joined.
type FanoutDispatcher struct {
	sinks []portssvc.NotificationDispatcher
}

// NewFanoutDispatcher creates a FanoutDispatcher. Nil sinks are dropped.
func NewFanoutDispatcher(sinks ...portssvc.NotificationDispatcher) *FanoutDispatcher {
	f := &FanoutDispatcher{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

var _ portssvc.NotificationDispatcher = (*FanoutDispatcher)(nil)

// Notify implements portssvc.NotificationDispatcher.
func (f *FanoutDispatcher) Notify(ctx context.Context, notification domain.Notification) error {
	var errs []error
	for i, s := range f.sinks {
		if err := s.Notify(ctx, notification); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
