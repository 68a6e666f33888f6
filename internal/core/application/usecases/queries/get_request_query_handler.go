package queries

import (
	"context"
	"time"

	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
)

// GetRequestQueryHandler reads one request. A pending request found past its
// deadline is flipped to expired before it is returned, so readers never see
// a pending request with no time remaining.
type GetRequestQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewGetRequestQueryHandler(
	uowFactory ports.UnitOfWorkFactory, clock ports.Clock, notifier ports.Notifier,
) GetRequestQueryHandler {
	return GetRequestQueryHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (RequestView, error) {
	if err := query.Validate(); err != nil {
		return RequestView{}, err
	}
	now := h.clock.Now()

	req, err := h.uowFactory.Create().RequestRepository().Get(ctx, query.RequestID())
	if err != nil {
		return RequestView{}, err
	}
	if req.IsOverdue(now) {
		if req, err = h.expire(ctx, query, now); err != nil {
			return RequestView{}, err
		}
	}

	return RequestView{Request: req, TimeRemaining: req.TimeRemaining(now)}, nil
}

func (h GetRequestQueryHandler) expire(
	ctx context.Context, query GetRequestQuery, now time.Time,
) (*request.Request, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, query.RequestID())
	if err != nil {
		return nil, err
	}
	if !req.IsOverdue(now) {
		return req, nil
	}
	if err = req.Expire(now); err != nil {
		return nil, err
	}
	if err = requests.Update(ctx, req, request.Pending); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			Type:      ports.EventRequestExpired,
			UserID:    req.RequesterID(),
			Payload:   map[string]any{"requestId": req.ID().String()},
			CreatedAt: now,
		})
	}
	return req, nil
}
