package queries

import (
	"context"
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery reads a user's profile, points and activity counters.
type GetUserQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserQuery(userID kernel.UUID) (GetUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

func (q GetUserQuery) UserID() kernel.UUID { return q.userID }

type GetUserQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetUserQueryHandler(uowFactory ports.UnitOfWorkFactory) GetUserQueryHandler {
	return GetUserQueryHandler{uowFactory: uowFactory}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().UserRepository().Get(ctx, query.UserID())
}
