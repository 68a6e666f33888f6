package queries_test

import (
	"testing"
	"time"

	"foodshare/internal/adapters/out/memory"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/clock"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var epoch = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	clock     *clock.Manual
	factory   ports.UnitOfWorkFactory
	requester *user.User
	donor     *user.User
}

func (s *QueriesTestSuite) SetupTest() {
	s.clock = clock.NewManual(epoch)
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore())

	var err error
	s.requester, err = user.NewUser(kernel.NewUUID(), "Shelter", "shelter@example.org", kernel.RoleRequester, nil, epoch)
	s.Require().NoError(err)
	s.donor, err = user.NewUser(kernel.NewUUID(), "Grocer", "grocer@example.org", kernel.RoleDonor, nil, epoch)
	s.Require().NoError(err)

	users := s.factory.Create().UserRepository()
	s.Require().NoError(users.Add(s.T().Context(), s.requester))
	s.Require().NoError(users.Add(s.T().Context(), s.donor))
}

func (s *QueriesTestSuite) location(lat, lon float64) kernel.GeoLocation {
	loc, err := kernel.NewGeoLocation(lat, lon, "")
	s.Require().NoError(err)
	return loc
}

func (s *QueriesTestSuite) quantity() kernel.Quantity {
	q, err := kernel.NewQuantity(2, "crates")
	s.Require().NoError(err)
	return q
}

func (s *QueriesTestSuite) addRequest(urgency request.Urgency) *request.Request {
	req, err := request.NewRequest(
		kernel.NewUUID(), s.requester.ID(),
		request.Details{Title: "Lunch", Requirements: request.Requirements{Quantity: s.quantity()}},
		urgency, s.location(48.85, 2.35), s.clock.Now(),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.factory.Create().RequestRepository().Add(s.T().Context(), req))
	return req
}

func (s *QueriesTestSuite) addDonation(lat, lon float64) *donation.Donation {
	don, err := donation.NewDonation(
		kernel.NewUUID(), s.donor.ID(), donation.Details{Title: "Apples"},
		s.quantity(), s.clock.Now().Add(time.Hour), s.location(lat, lon), s.clock.Now(),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.factory.Create().DonationRepository().Add(s.T().Context(), don))
	return don
}

func (s *QueriesTestSuite) TestGetRequest_ReportsTimeRemaining() {
	req := s.addRequest(request.Medium)
	s.clock.Advance(90 * time.Second)

	query, err := queries.NewGetRequestQuery(req.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetRequestQueryHandler(s.factory, s.clock, nil).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Equal(request.Pending, view.Request.Status())
	s.Equal(210*time.Second, view.TimeRemaining)
}

func (s *QueriesTestSuite) TestGetRequest_ExpiresOverdueRequest() {
	req := s.addRequest(request.Medium)
	s.clock.Advance(6 * time.Minute)

	query, err := queries.NewGetRequestQuery(req.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetRequestQueryHandler(s.factory, s.clock, nil).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Equal(request.Expired, view.Request.Status())
	s.Zero(view.TimeRemaining)

	stored, err := s.factory.Create().RequestRepository().Get(s.T().Context(), req.ID())
	s.Require().NoError(err)
	s.Equal(request.Expired, stored.Status())
}

func (s *QueriesTestSuite) TestGetRequest_NotFound() {
	query, err := queries.NewGetRequestQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = queries.NewGetRequestQueryHandler(s.factory, s.clock, nil).Handle(s.T().Context(), query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestPendingRequests_MostUrgentFirst() {
	s.addRequest(request.Low)
	s.clock.Advance(time.Minute)
	critical := s.addRequest(request.Critical)
	high := s.addRequest(request.High)
	s.clock.Advance(4*time.Minute + time.Second)

	query, err := queries.NewPendingRequestsQuery(0)
	s.Require().NoError(err)
	views, err := queries.NewPendingRequestsQueryHandler(s.factory, s.clock).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Require().Len(views, 2, "the low request is past its deadline")
	s.True(views[0].Request.ID().IsEqual(critical.ID()))
	s.True(views[1].Request.ID().IsEqual(high.ID()))
	s.Equal(59*time.Second, views[0].TimeRemaining)
}

func (s *QueriesTestSuite) TestNearbyDonations_NearestFirstWithinRadius() {
	far := s.addDonation(48.80, 2.35)    // ~5.6 km
	near := s.addDonation(48.851, 2.351) // ~0.1 km
	s.addDonation(45.76, 4.83)           // Lyon

	query, err := queries.NewNearbyDonationsQuery(s.location(48.85, 2.35), 10, donation.Active, 0)
	s.Require().NoError(err)
	found, err := queries.NewNearbyDonationsQueryHandler(s.factory).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Require().Len(found, 2)
	s.True(found[0].Donation.ID().IsEqual(near.ID()))
	s.True(found[1].Donation.ID().IsEqual(far.ID()))
	s.Less(found[0].DistanceKm, found[1].DistanceKm)
	s.InDelta(5.56, found[1].DistanceKm, 0.05)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetRequestQuery{}.Validate(), queries.ErrGetRequestQueryIsNotConstructed)
	assert.ErrorIs(t, queries.PendingRequestsQuery{}.Validate(), queries.ErrPendingRequestsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.NearbyDonationsQuery{}.Validate(), queries.ErrNearbyDonationsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetDeliveryQuery{}.Validate(), queries.ErrGetDeliveryQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetUserQuery{}.Validate(), queries.ErrGetUserQueryIsNotConstructed)
}

func TestNewNearbyDonationsQuery_Defaults(t *testing.T) {
	center, err := kernel.NewGeoLocation(0, 0, "")
	require.NoError(t, err)

	query, err := queries.NewNearbyDonationsQuery(center, 0, donation.Active, 0)
	require.NoError(t, err)
	assert.InDelta(t, queries.DefaultRadiusKm, query.RadiusKm(), 1e-9)
	assert.Equal(t, queries.DefaultPageSize, query.Limit())

	_, err = queries.NewNearbyDonationsQuery(center, -1, donation.Active, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = queries.NewNearbyDonationsQuery(center, 5, donation.Active, queries.MaxPageSize+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
