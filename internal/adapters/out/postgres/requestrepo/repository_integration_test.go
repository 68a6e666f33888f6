package requestrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodshare/internal/adapters/out/postgres/pgtest"
	"foodshare/internal/adapters/out/postgres/requestrepo"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *requestrepo.GormRequestRepository
	now        time.Time
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&requestrepo.RequestDTO{})
	})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("requests"))

	suite.repository = requestrepo.NewGormRequestRepository(suite.database.DB)
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *RequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *RequestRepositoryIntegrationTestSuite) newRequest(urgency request.Urgency, createdAt time.Time) *request.Request {
	loc, err := kernel.NewGeoLocation(12.9352, 77.6245, "Koramangala")
	suite.Require().NoError(err)
	quantity, err := kernel.NewQuantity(20, "servings")
	suite.Require().NoError(err)

	r, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), request.Details{
		Title: "Dinner for shelter",
		Requirements: request.Requirements{
			FoodTypes:           []string{"cooked"},
			Quantity:            quantity,
			DietaryRestrictions: []string{"vegetarian"},
		},
	}, urgency, loc, createdAt)
	suite.Require().NoError(err)
	return r
}

func (suite *RequestRepositoryIntegrationTestSuite) add(reqs ...*request.Request) {
	for _, r := range reqs {
		suite.Require().NoError(suite.repository.Add(suite.T().Context(), r))
	}
}

func (suite *RequestRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := suite.T().Context()
	r := suite.newRequest(request.High, suite.now)
	suite.add(r)

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Pending, got.Status())
	suite.Equal(request.High, got.Urgency())
	suite.Equal([]string{"vegetarian"}, got.Details().Requirements.DietaryRestrictions)
	suite.True(suite.now.Add(request.DefaultLifetime).Equal(got.ExpiresAt()))
	suite.False(got.Acceptance().IsAccepted())
	suite.Nil(got.AcceptedAt())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_AcceptanceRoundTrip() {
	ctx := suite.T().Context()
	r := suite.newRequest(request.Medium, suite.now)
	suite.add(r)

	donorID, donationID := kernel.NewUUID(), kernel.NewUUID()
	acceptedAt := suite.now.Add(time.Minute)
	suite.Require().NoError(r.AcceptByDonor(donorID, donationID, acceptedAt))
	suite.Require().NoError(suite.repository.Update(ctx, r, request.Pending))

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.AcceptedByDonor, got.Status())
	suite.Equal(request.ByDonor, got.Acceptance().Kind())
	acceptor, ok := got.Acceptance().AcceptorID()
	suite.Require().True(ok)
	suite.True(donorID.IsEqual(acceptor))
	suite.Require().NotNil(got.AssignedDonation())
	suite.True(donationID.IsEqual(*got.AssignedDonation()))
	suite.Require().NotNil(got.AcceptedAt())
	suite.True(acceptedAt.Equal(*got.AcceptedAt()))

	err = suite.repository.Update(ctx, r, request.Pending)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestDelete_ConditionalOnStatus() {
	ctx := suite.T().Context()
	r := suite.newRequest(request.Low, suite.now)
	suite.add(r)

	suite.Require().ErrorIs(suite.repository.Delete(ctx, r.ID(), request.Expired), errs.ErrConflict)
	suite.Require().NoError(suite.repository.Delete(ctx, r.ID(), request.Pending))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, r.ID(), request.Pending), errs.ErrObjectNotFound)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestExpireOverdue_FlipsOnlyStrictlyOverdue() {
	ctx := suite.T().Context()
	overdue := suite.newRequest(request.High, suite.now.Add(-10*time.Minute))
	boundary := suite.newRequest(request.High, suite.now.Add(-request.DefaultLifetime))
	fresh := suite.newRequest(request.High, suite.now)
	suite.add(overdue, boundary, fresh)

	expired, err := suite.repository.ExpireOverdue(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(overdue.ID().IsEqual(expired[0].ID))
	suite.True(overdue.RequesterID().IsEqual(expired[0].RequesterID))

	got, err := suite.repository.Get(ctx, overdue.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Expired, got.Status())
	suite.True(suite.now.Equal(got.UpdatedAt()))

	got, err = suite.repository.Get(ctx, boundary.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Pending, got.Status())

	again, err := suite.repository.ExpireOverdue(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Empty(again)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestExpireOverdue_ConcurrentSweepsReportOnce() {
	ctx := suite.T().Context()
	for range 10 {
		suite.add(suite.newRequest(request.Medium, suite.now.Add(-time.Hour)))
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			expired, err := suite.repository.ExpireOverdue(ctx, suite.now)
			suite.NoError(err)
			mu.Lock()
			total += len(expired)
			mu.Unlock()
		}()
	}
	wg.Wait()

	suite.Equal(10, total)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestListPending_MostUrgentThenSoonest() {
	ctx := suite.T().Context()
	low := suite.newRequest(request.Low, suite.now)
	criticalLate := suite.newRequest(request.Critical, suite.now)
	criticalSoon := suite.newRequest(request.Critical, suite.now.Add(-2*time.Minute))
	high := suite.newRequest(request.High, suite.now.Add(-time.Minute))
	overdue := suite.newRequest(request.Critical, suite.now.Add(-time.Hour))
	suite.add(low, criticalLate, criticalSoon, high, overdue)

	list, err := suite.repository.ListPending(ctx, suite.now, 0)
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID())
	}
	suite.Equal([]kernel.UUID{criticalSoon.ID(), criticalLate.ID(), high.ID(), low.ID()}, ids)

	limited, err := suite.repository.ListPending(ctx, suite.now, 2)
	suite.Require().NoError(err)
	suite.Len(limited, 2)
}

func TestRequestRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(RequestRepositoryIntegrationTestSuite))
}

var _ ports.RequestRepository = (*requestrepo.GormRequestRepository)(nil)
