package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
)

// CreateRequestCommandHandler opens a pending request that expires five
// minutes from now and bumps the requester's totalRequests.
type CreateRequestCommandHandler struct {
	deps Dependencies
}

func NewCreateRequestCommandHandler(deps Dependencies) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{deps: deps}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
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

	users := uow.UserRepository()
	requester, err := loadActor(ctx, users, cmd.RequesterID(), kernel.RoleRequester, "create request")
	if err != nil {
		return err
	}

	req, err := request.NewRequest(
		cmd.RequestID(), requester.ID(), cmd.Details(), cmd.Urgency(), cmd.DeliveryLocation(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return err
	}
	if err = users.AdjustCounter(ctx, requester.ID(), user.TotalRequests, 1); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventNewRequest, requester.ID(), map[string]any{
		"requestId": req.ID().String(),
		"title":     req.Details().Title,
		"urgency":   req.Urgency().String(),
		"expiresAt": req.ExpiresAt(),
	}))
	return nil
}
