package notify

import (
	"context"
	"errors"

	"foodshare/internal/core/ports"
)

// Fanout delivers to every sink and joins their errors. One failing sink does
// not stop the others.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, n ports.Notification) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
