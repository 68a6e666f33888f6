package queries

import (
	"context"

	"foodshare/internal/core/ports"
)

type NearbyDonationsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewNearbyDonationsQueryHandler(uowFactory ports.UnitOfWorkFactory) NearbyDonationsQueryHandler {
	return NearbyDonationsQueryHandler{uowFactory: uowFactory}
}

func (h NearbyDonationsQueryHandler) Handle(
	ctx context.Context, query NearbyDonationsQuery,
) ([]ports.NearbyDonation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.uowFactory.Create().DonationRepository().FindNearby(ctx, ports.NearbyFilter{
		Center:   query.Center(),
		RadiusKm: query.RadiusKm(),
		Status:   query.Status(),
		Limit:    query.Limit(),
	})
}
