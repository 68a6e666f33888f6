package services

import (
	"errors"
	"time"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
)

// DeliveryMatcher binds an active donation and a pending request to an NGO.
//
// Business rules:
//   - the NGO must be approved and active
//   - the donation must be active and unexpired
//   - the request must be pending and unexpired
//   - priority follows the request urgency
//
// On success the donation is assigned_to_ngo (with the requester recorded),
// the request is accepted_by_ngo with the donation linked, and a new assigned
// delivery is returned. On failure none of the arguments is modified.
//
// Example:
//
//	matcher := NewDeliveryMatcher()
//	d, err := matcher.Match(kernel.NewUUID(), ngo, don, req, now)
//	if errors.Is(err, errs.ErrConflict) {
//	    // someone else claimed the donation or request first
//	}
type DeliveryMatcher struct{}

func NewDeliveryMatcher() DeliveryMatcher {
	return DeliveryMatcher{}
}

func (DeliveryMatcher) Match(
	deliveryID kernel.UUID,
	ngo *user.User,
	don *donation.Donation,
	req *request.Request,
	now time.Time,
) (*delivery.Delivery, error) {
	if err := errors.Join(ngo.Validate(), don.Validate(), req.Validate()); err != nil {
		return nil, err
	}
	if err := ngo.EnsureOperatingNGO(); err != nil {
		return nil, err
	}
	if err := don.EnsureClaimable("assign to ngo", now); err != nil {
		return nil, err
	}
	if err := req.EnsureAcceptable("accept", now); err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(
		deliveryID,
		delivery.Parties{
			NGOID:       ngo.ID(),
			DonorID:     don.DonorID(),
			RequesterID: req.RequesterID(),
			DonationID:  don.ID(),
			RequestID:   req.ID(),
		},
		delivery.PriorityFromUrgency(req.Urgency()),
		don.PickupLocation(),
		req.DeliveryLocation(),
		now,
	)
	if err != nil {
		return nil, err
	}

	requesterID := req.RequesterID()
	donationID := don.ID()
	if err = don.AssignToNGO(ngo.ID(), &requesterID, now); err != nil {
		return nil, err
	}
	if err = req.AcceptByNGO(ngo.ID(), &donationID, now); err != nil {
		return nil, err
	}
	return d, nil
}
