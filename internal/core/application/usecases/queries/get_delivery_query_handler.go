package queries

import (
	"context"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/ports"
)

type GetDeliveryQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetDeliveryQueryHandler(uowFactory ports.UnitOfWorkFactory) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{uowFactory: uowFactory}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (*delivery.Delivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().DeliveryRepository().Get(ctx, query.DeliveryID())
}
