package services_test

import (
	"testing"
	"time"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/domain/services"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ngo *user.User
	don *donation.Donation
	req *request.Request
}

func newFixture(t *testing.T, urgency request.Urgency) fixture {
	t.Helper()

	ngo, err := user.NewUser(kernel.NewUUID(), "Food Rescue", "ngo@example.com", kernel.RoleNGO, nil, now)
	require.NoError(t, err)
	require.NoError(t, ngo.Approve())

	qty, _ := kernel.NewQuantity(5, "kg")
	pickup, _ := kernel.NewGeoLocation(10, 10, "pickup")
	dropoff, _ := kernel.NewGeoLocation(10.1, 10.1, "dropoff")

	don, err := donation.NewDonation(kernel.NewUUID(), kernel.NewUUID(), donation.Details{Title: "Rice"},
		qty, now.Add(time.Hour), pickup, now)
	require.NoError(t, err)

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(),
		request.Details{Title: "Rice please", Requirements: request.Requirements{Quantity: qty}},
		urgency, dropoff, now)
	require.NoError(t, err)

	return fixture{ngo: ngo, don: don, req: req}
}

func TestDeliveryMatcher_Match(t *testing.T) {
	matcher := services.NewDeliveryMatcher()

	t.Run("binds donation, request and ngo", func(t *testing.T) {
		f := newFixture(t, request.Critical)

		d, err := matcher.Match(kernel.NewUUID(), f.ngo, f.don, f.req, now)

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Equal(t, delivery.Urgent, d.Priority())
		assert.Equal(t, f.don.PickupLocation(), d.PickupLocation())
		assert.Equal(t, f.req.DeliveryLocation(), d.DeliveryLocation())

		assert.Equal(t, donation.AssignedToNGO, f.don.Status())
		assert.True(t, f.don.AssignedNGO().IsEqual(f.ngo.ID()))
		assert.True(t, f.don.AssignedRequester().IsEqual(f.req.RequesterID()))

		assert.Equal(t, request.AcceptedByNGO, f.req.Status())
		assert.True(t, f.req.AssignedDonation().IsEqual(f.don.ID()))
	})

	t.Run("unapproved ngo", func(t *testing.T) {
		f := newFixture(t, request.Low)
		pending, _ := user.NewUser(kernel.NewUUID(), "New NGO", "new@example.com", kernel.RoleNGO, nil, now)

		_, err := matcher.Match(kernel.NewUUID(), pending, f.don, f.req, now)

		require.ErrorIs(t, err, errs.ErrNotApproved)
		assert.Equal(t, donation.Active, f.don.Status())
		assert.Equal(t, request.Pending, f.req.Status())
	})

	t.Run("already claimed request leaves donation untouched", func(t *testing.T) {
		f := newFixture(t, request.Low)
		require.NoError(t, f.req.AcceptByNGO(kernel.NewUUID(), nil, now))

		_, err := matcher.Match(kernel.NewUUID(), f.ngo, f.don, f.req, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, donation.Active, f.don.Status())
	})

	t.Run("overdue request", func(t *testing.T) {
		f := newFixture(t, request.Low)

		_, err := matcher.Match(kernel.NewUUID(), f.ngo, f.don, f.req, now.Add(10*time.Minute))

		require.ErrorIs(t, err, errs.ErrExpired)
	})
}

func TestRatingAwards(t *testing.T) {
	parties := delivery.Parties{
		NGOID: kernel.NewUUID(), DonorID: kernel.NewUUID(), RequesterID: kernel.NewUUID(),
		DonationID: kernel.NewUUID(), RequestID: kernel.NewUUID(),
	}

	credits := services.RatingAwards(parties, delivery.Rating{DonorRating: 4, NGORating: 5})

	assert.Equal(t, []services.PointsCredit{
		{UserID: parties.DonorID, Points: 4},
		{UserID: parties.NGOID, Points: 5},
		{UserID: parties.RequesterID, Points: 2},
	}, credits)
}
