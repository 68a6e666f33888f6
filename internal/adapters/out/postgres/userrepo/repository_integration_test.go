package userrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodshare/internal/adapters/out/postgres/pgtest"
	"foodshare/internal/adapters/out/postgres/userrepo"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *userrepo.GormUserRepository
	now        time.Time
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&userrepo.UserDTO{})
	})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("users"))

	suite.repository = userrepo.NewGormUserRepository(suite.database.DB)
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) newUser(email string, role kernel.Role, withLocation bool) *user.User {
	var loc *kernel.GeoLocation
	if withLocation {
		l, err := kernel.NewGeoLocation(12.9716, 77.5946, "MG Road")
		suite.Require().NoError(err)
		loc = &l
	}
	u, err := user.NewUser(kernel.NewUUID(), "Asha", email, role, loc, suite.now)
	suite.Require().NoError(err)
	return u
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := suite.T().Context()
	ngo := suite.newUser("ngo@example.org", kernel.RoleNGO, true)

	suite.Require().NoError(suite.repository.Add(ctx, ngo))

	got, err := suite.repository.Get(ctx, ngo.ID())
	suite.Require().NoError(err)
	suite.Equal(ngo.Email(), got.Email())
	suite.Equal(kernel.RoleNGO, got.Role())
	suite.False(got.IsApproved())
	suite.True(got.IsActive())
	suite.Require().NotNil(got.Location())
	suite.InDelta(12.9716, got.Location().Latitude(), 1e-9)
	suite.Equal("MG Road", got.Location().Address())
	suite.True(suite.now.Equal(got.CreatedAt()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_WithoutLocation() {
	ctx := suite.T().Context()
	donor := suite.newUser("donor@example.org", kernel.RoleDonor, false)

	suite.Require().NoError(suite.repository.Add(ctx, donor))

	got, err := suite.repository.Get(ctx, donor.ID())
	suite.Require().NoError(err)
	suite.Nil(got.Location())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_Conflict() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newUser("same@example.org", kernel.RoleDonor, false)))

	err := suite.repository.Add(ctx, suite.newUser("same@example.org", kernel.RoleRequester, false))
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_WritesFlagsOnly() {
	ctx := suite.T().Context()
	ngo := suite.newUser("ngo@example.org", kernel.RoleNGO, false)
	suite.Require().NoError(suite.repository.Add(ctx, ngo))
	suite.Require().NoError(suite.repository.AddPoints(ctx, ngo.ID(), 7))

	// ngo still carries points=0 from before the credit
	suite.Require().NoError(ngo.Approve())
	suite.Require().NoError(suite.repository.Update(ctx, ngo))

	got, err := suite.repository.Get(ctx, ngo.ID())
	suite.Require().NoError(err)
	suite.True(got.IsApproved())
	suite.Equal(7, got.Points())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddPoints_ConcurrentCreditsAllLand() {
	ctx := suite.T().Context()
	ngo := suite.newUser("ngo@example.org", kernel.RoleNGO, false)
	suite.Require().NoError(suite.repository.Add(ctx, ngo))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.NoError(suite.repository.AddPoints(ctx, ngo.ID(), 5))
		}()
	}
	wg.Wait()

	got, err := suite.repository.Get(ctx, ngo.ID())
	suite.Require().NoError(err)
	suite.Equal(100, got.Points())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddPoints_Rejects() {
	ctx := suite.T().Context()
	donor := suite.newUser("donor@example.org", kernel.RoleDonor, false)
	suite.Require().NoError(suite.repository.Add(ctx, donor))

	suite.Require().ErrorIs(suite.repository.AddPoints(ctx, donor.ID(), -1), errs.ErrValueIsInvalid)
	suite.Require().ErrorIs(suite.repository.AddPoints(ctx, kernel.NewUUID(), 1), errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdjustCounter_FloorsAtZero() {
	ctx := suite.T().Context()
	donor := suite.newUser("donor@example.org", kernel.RoleDonor, false)
	suite.Require().NoError(suite.repository.Add(ctx, donor))

	suite.Require().NoError(suite.repository.AdjustCounter(ctx, donor.ID(), user.TotalDonations, 2))
	suite.Require().NoError(suite.repository.AdjustCounter(ctx, donor.ID(), user.TotalDonations, -5))
	suite.Require().NoError(suite.repository.AdjustCounter(ctx, donor.ID(), user.TotalRequests, 1))

	got, err := suite.repository.Get(ctx, donor.ID())
	suite.Require().NoError(err)
	suite.Equal(0, got.TotalDonations())
	suite.Equal(1, got.TotalRequests())

	err = suite.repository.AdjustCounter(ctx, donor.ID(), user.Counter("points; DROP TABLE users"), 1)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestUserRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
