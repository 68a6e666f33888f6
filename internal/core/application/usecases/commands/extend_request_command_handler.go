package commands

import (
	"context"
	"errors"

	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/errs"
)

// ExtendRequestCommandHandler adds minutes to a pending request's expiry.
// Only the owner may extend; an already overdue request is expired instead.
type ExtendRequestCommandHandler struct {
	deps Dependencies
}

func NewExtendRequestCommandHandler(deps Dependencies) ExtendRequestCommandHandler {
	return ExtendRequestCommandHandler{deps: deps}
}

func (h ExtendRequestCommandHandler) Handle(ctx context.Context, cmd ExtendRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.deps.Clock.Now()

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = req.Extend(cmd.ActorID(), cmd.Minutes(), now); err != nil {
		if errors.Is(err, errs.ErrExpired) {
			return h.deps.commitExpiry(ctx, uow, now, req, nil, err)
		}
		return err
	}

	if err = requests.Update(ctx, req, request.Pending); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
