package donationrepo_test

import (
	"context"
	"testing"
	"time"

	"foodshare/internal/adapters/out/postgres/donationrepo"
	"foodshare/internal/adapters/out/postgres/pgtest"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type DonationRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *donationrepo.GormDonationRepository
	now        time.Time
}

func (suite *DonationRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&donationrepo.DonationDTO{})
	})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DonationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("donations"))

	suite.repository = donationrepo.NewGormDonationRepository(suite.database.DB)
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *DonationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *DonationRepositoryIntegrationTestSuite) newDonation(lat, lon float64) *donation.Donation {
	pickup, err := kernel.NewGeoLocation(lat, lon, "")
	suite.Require().NoError(err)
	quantity, err := kernel.NewQuantity(12.5, "kg")
	suite.Require().NoError(err)

	d, err := donation.NewDonation(
		kernel.NewUUID(), kernel.NewUUID(),
		donation.Details{Title: "Rice and dal", Category: "cooked", FoodTypes: []string{"rice", "dal"}},
		quantity, suite.now.Add(6*time.Hour), pickup, suite.now,
	)
	suite.Require().NoError(err)
	return d
}

func (suite *DonationRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := suite.T().Context()
	d := suite.newDonation(12.9716, 77.5946)

	suite.Require().NoError(suite.repository.Add(ctx, d))

	got, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.Details(), got.Details())
	suite.Equal(d.Quantity().Amount(), got.Quantity().Amount())
	suite.Equal("kg", got.Quantity().Unit())
	suite.Equal(donation.Active, got.Status())
	suite.True(d.ExpiryTime().Equal(got.ExpiryTime()))
	suite.Nil(got.AssignedNGO())
}

func (suite *DonationRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestUpdate_ConditionalOnStatus() {
	ctx := suite.T().Context()
	d := suite.newDonation(12.9716, 77.5946)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	first, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	ngoID := kernel.NewUUID()
	suite.Require().NoError(first.AssignToNGO(ngoID, nil, suite.now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, first, donation.Active))

	suite.Require().NoError(second.AssignToNGO(kernel.NewUUID(), nil, suite.now.Add(time.Minute)))
	err = suite.repository.Update(ctx, second, donation.Active)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(donation.AssignedToNGO, got.Status())
	suite.Require().NotNil(got.AssignedNGO())
	suite.True(ngoID.IsEqual(*got.AssignedNGO()))
}

func (suite *DonationRepositoryIntegrationTestSuite) TestUpdate_Missing_NotFound() {
	d := suite.newDonation(12.9716, 77.5946)
	err := suite.repository.Update(suite.T().Context(), d, donation.Active)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestDelete_ConditionalOnStatus() {
	ctx := suite.T().Context()
	d := suite.newDonation(12.9716, 77.5946)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	err := suite.repository.Delete(ctx, d.ID(), donation.AssignedToNGO)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	suite.Require().NoError(suite.repository.Delete(ctx, d.ID(), donation.Active))
	_, err = suite.repository.Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, d.ID(), donation.Active)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestFindNearby_OrdersByDistance() {
	ctx := suite.T().Context()
	// 0.05 degrees of latitude is about 5.56 km
	far := suite.newDonation(12.05, 77.0)
	near := suite.newDonation(12.01, 77.0)
	outside := suite.newDonation(13.0, 77.0)
	taken := suite.newDonation(12.0, 77.0)
	for _, d := range []*donation.Donation{far, near, outside, taken} {
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}
	suite.Require().NoError(taken.AssignToNGO(kernel.NewUUID(), nil, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, taken, donation.Active))

	center, err := kernel.NewGeoLocation(12.0, 77.0, "")
	suite.Require().NoError(err)

	matches, err := suite.repository.FindNearby(ctx, ports.NearbyFilter{
		Center: center, RadiusKm: 10, Status: donation.Active, Limit: 10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(matches, 2)
	suite.True(near.ID().IsEqual(matches[0].Donation.ID()))
	suite.True(far.ID().IsEqual(matches[1].Donation.ID()))
	suite.InDelta(1.11, matches[0].DistanceKm, 0.01)
	suite.InDelta(5.56, matches[1].DistanceKm, 0.01)

	all, err := suite.repository.FindNearby(ctx, ports.NearbyFilter{Center: center, RadiusKm: 10, Limit: 1})
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.True(taken.ID().IsEqual(all[0].Donation.ID()))
	suite.InDelta(0, all[0].DistanceKm, 1e-9)
}

func TestDonationRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(DonationRepositoryIntegrationTestSuite))
}
