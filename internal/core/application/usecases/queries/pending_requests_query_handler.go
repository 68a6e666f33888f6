package queries

import (
	"context"

	"foodshare/internal/core/ports"
)

// PendingRequestsQueryHandler returns unexpired pending requests, most urgent
// first, each with its time remaining.
type PendingRequestsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewPendingRequestsQueryHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) PendingRequestsQueryHandler {
	return PendingRequestsQueryHandler{uowFactory: uowFactory, clock: clock}
}

func (h PendingRequestsQueryHandler) Handle(ctx context.Context, query PendingRequestsQuery) ([]RequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	now := h.clock.Now()

	requests, err := h.uowFactory.Create().RequestRepository().ListPending(ctx, now, query.Limit())
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, RequestView{Request: req, TimeRemaining: req.TimeRemaining(now)})
	}
	return views, nil
}
