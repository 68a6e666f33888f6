package http

import (
	"net/http"
	"strconv"

	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateDonation handles POST /api/v1/donations.
func (s *Server) CreateDonation(c echo.Context) error {
	var in CreateDonationInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	quantity, err := in.Quantity.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	pickup, err := in.PickupLocation.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	donationID := kernel.NewUUID()
	cmd, err := commands.NewCreateDonationCommand(
		donationID,
		actorFrom(c),
		donation.Details{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			FoodTypes:   in.FoodTypes,
		},
		quantity,
		in.ExpiryTime,
		pickup,
	)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateDonation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: donationID.String()})
}

// NearbyDonations handles GET /api/v1/donations/nearby?lat=&lon=&radiusKm=&status=&limit=.
// status defaults to active.
func (s *Server) NearbyDonations(c echo.Context) error {
	lat, err := floatParam(c, "lat")
	if err != nil {
		return s.fail(c, err)
	}
	lon, err := floatParam(c, "lon")
	if err != nil {
		return s.fail(c, err)
	}
	center, err := kernel.NewGeoLocation(lat, lon, "")
	if err != nil {
		return s.fail(c, err)
	}

	var radius float64
	if c.QueryParam("radiusKm") != "" {
		if radius, err = floatParam(c, "radiusKm"); err != nil {
			return s.fail(c, err)
		}
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}

	status := donation.Active
	if raw := c.QueryParam("status"); raw != "" {
		if status, err = donation.ParseStatus(raw); err != nil {
			return s.fail(c, err)
		}
	}

	query, err := queries.NewNearbyDonationsQuery(center, radius, status, limit)
	if err != nil {
		return s.fail(c, err)
	}
	matches, err := s.h.NearbyDonations.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, nearbyResponse(matches))
}

// AssignDonationNGO handles POST /api/v1/donations/:id/assign.
func (s *Server) AssignDonationNGO(c echo.Context) error {
	donationID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in AssignNGOInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}
	ngoID, err := parseID("ngoId", in.NGOID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignDonationNGOCommand(donationID, actorFrom(c), ngoID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.AssignNGO.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelDonation handles POST /api/v1/donations/:id/cancel.
func (s *Server) CancelDonation(c echo.Context) error {
	donationID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in ReasonInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelDonationCommand(donationID, actorFrom(c), in.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CancelDonation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteDonation handles DELETE /api/v1/donations/:id.
func (s *Server) DeleteDonation(c echo.Context) error {
	donationID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteDonationCommand(donationID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.DeleteDonation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func floatParam(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

// intParam returns zero for an absent parameter.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
