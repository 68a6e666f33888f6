package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

// ExpireRequestsCommandHandler flips every pending request whose expiry has
// passed to expired in one conditional batch, then tells each requester.
// Requests accepted concurrently are not touched because the batch only
// matches rows still pending.
type ExpireRequestsCommandHandler struct {
	deps Dependencies
}

func NewExpireRequestsCommandHandler(deps Dependencies) ExpireRequestsCommandHandler {
	return ExpireRequestsCommandHandler{deps: deps}
}

// Handle returns how many requests this sweep expired.
func (h ExpireRequestsCommandHandler) Handle(ctx context.Context, cmd ExpireRequestsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	now := h.deps.Clock.Now()

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.RequestRepository().ExpireOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	notifications := make([]ports.Notification, 0, len(expired))
	for _, e := range expired {
		notifications = append(notifications, requestExpiredNotification(e.ID.String(), e.RequesterID))
	}
	h.deps.notify(ctx, now, notifications...)

	return len(expired), nil
}

func requestExpiredNotification(requestID string, requesterID kernel.UUID) ports.Notification {
	return notification(ports.EventRequestExpired, requesterID, map[string]any{"requestId": requestID})
}
