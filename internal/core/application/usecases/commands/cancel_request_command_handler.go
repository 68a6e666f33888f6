package commands

import (
	"context"

	"foodshare/internal/core/ports"
)

// CancelRequestCommandHandler lets the owner cancel a request that is not yet
// delivered, cancelled or expired. A delivery already carrying the request is
// left alone; the acceptor, if any, is told the request is gone.
type CancelRequestCommandHandler struct {
	deps Dependencies
}

func NewCancelRequestCommandHandler(deps Dependencies) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{deps: deps}
}

func (h CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
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

	previous := req.Status()
	if err = req.Cancel(cmd.ActorID(), cmd.Reason(), now); err != nil {
		return err
	}
	if err = requests.Update(ctx, req, previous); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if acceptorID, ok := req.Acceptance().AcceptorID(); ok {
		h.deps.notify(ctx, now, notification(ports.EventRequestCancelled, acceptorID, map[string]any{
			"requestId": req.ID().String(),
			"reason":    req.CancellationReason(),
		}))
	}
	return nil
}
