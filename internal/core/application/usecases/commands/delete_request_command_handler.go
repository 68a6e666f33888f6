package commands

import (
	"context"

	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
)

// DeleteRequestCommandHandler hard deletes a pending request and decrements
// the owner's totalRequests, never below zero.
type DeleteRequestCommandHandler struct {
	deps Dependencies
}

func NewDeleteRequestCommandHandler(deps Dependencies) DeleteRequestCommandHandler {
	return DeleteRequestCommandHandler{deps: deps}
}

func (h DeleteRequestCommandHandler) Handle(ctx context.Context, cmd DeleteRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

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
	if err = req.EnsureDeletable(cmd.ActorID()); err != nil {
		return err
	}

	if err = requests.Delete(ctx, req.ID(), request.Pending); err != nil {
		return err
	}
	if err = uow.UserRepository().AdjustCounter(ctx, req.RequesterID(), user.TotalRequests, -1); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
