package queries

import (
	"errors"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

type GetRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }

// RequestView is a request together with the time it has left to be
// accepted, floored at zero.
type RequestView struct {
	Request       *request.Request
	TimeRemaining time.Duration
}
