package commands

import (
	"context"
	"time"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
)

// commitExpiry persists the lazy expiry of an overdue request and/or donation
// found while checking preconditions, commits it, and returns cause. The
// expiry is the one state change a failed precondition is allowed to keep.
func (d Dependencies) commitExpiry(
	ctx context.Context,
	uow ports.UnitOfWork,
	now time.Time,
	req *request.Request,
	don *donation.Donation,
	cause error,
) error {
	var notifications []ports.Notification

	if req != nil && req.IsOverdue(now) {
		if err := req.Expire(now); err != nil {
			return err
		}
		if err := uow.RequestRepository().Update(ctx, req, request.Pending); err != nil {
			return err
		}
		notifications = append(notifications, requestExpiredNotification(req.ID().String(), req.RequesterID()))
	}

	if don != nil && don.Status() == donation.Active && don.IsExpired(now) {
		if err := don.MarkExpired(now); err != nil {
			return err
		}
		if err := uow.DonationRepository().Update(ctx, don, donation.Active); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	d.notify(ctx, now, notifications...)
	return cause
}
