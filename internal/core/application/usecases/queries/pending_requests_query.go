package queries

import (
	"errors"

	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var ErrPendingRequestsQueryIsNotConstructed = errors.New(
	"PendingRequestsQuery must be created via NewPendingRequestsQuery constructor",
)

// PendingRequestsQuery lists the requests still open for acceptance.
type PendingRequestsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewPendingRequestsQuery uses DefaultPageSize when limit is zero.
func NewPendingRequestsQuery(limit int) (PendingRequestsQuery, error) {
	limit, err := pageSize(limit)
	if err != nil {
		return PendingRequestsQuery{}, err
	}
	return PendingRequestsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q PendingRequestsQuery) Validate() error {
	return q.guard.Validate(ErrPendingRequestsQueryIsNotConstructed)
}

func (q PendingRequestsQuery) Limit() int { return q.limit }

func pageSize(limit int) (int, error) {
	if limit == 0 {
		return DefaultPageSize, nil
	}
	if limit < 1 || limit > MaxPageSize {
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	return limit, nil
}
