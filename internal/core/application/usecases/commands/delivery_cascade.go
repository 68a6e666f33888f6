package commands

import (
	"context"
	"errors"
	"log/slog"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

// cascade carries a delivery transition over to its donation and request
// inside the same unit of work. Both writes are conditional on the status
// the aggregates had when loaded.
type cascade struct {
	donation func(*donation.Donation) error
	request  func(*request.Request) error
	// lenient skips an aggregate whose current status does not allow the
	// transition instead of failing the whole unit of work. Skips are logged.
	lenient bool
	logger  *slog.Logger
}

func (c cascade) apply(ctx context.Context, uow ports.UnitOfWork, d *delivery.Delivery) error {
	parties := d.Parties()

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, parties.DonationID)
	if err != nil {
		return err
	}
	previousDonation := don.Status()
	if err = c.donation(don); err == nil {
		if err = donations.Update(ctx, don, previousDonation); err != nil {
			return err
		}
	} else if c.skip(err) {
		c.skipped(ctx, d, "donation", don.ID().String(), previousDonation.String(), err)
	} else {
		return err
	}

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, parties.RequestID)
	if err != nil {
		return err
	}
	previousRequest := req.Status()
	if err = c.request(req); err == nil {
		if err = requests.Update(ctx, req, previousRequest); err != nil {
			return err
		}
	} else if c.skip(err) {
		c.skipped(ctx, d, "request", req.ID().String(), previousRequest.String(), err)
	} else {
		return err
	}
	return nil
}

func (c cascade) skip(err error) bool {
	return c.lenient && errors.Is(err, errs.ErrConflict)
}

func (c cascade) skipped(ctx context.Context, d *delivery.Delivery, entity, id, status string, err error) {
	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "delivery cascade skipped",
		"delivery_id", d.ID().String(),
		"delivery_status", d.Status().String(),
		"entity", entity,
		"entity_id", id,
		"entity_status", status,
		"error", err,
	)
}
