package http

import (
	"net/http"

	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDelivery handles POST /api/v1/deliveries. The caller is the NGO.
func (s *Server) CreateDelivery(c echo.Context) error {
	var in CreateDeliveryInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}
	donationID, err := parseID("donationId", in.DonationID)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := parseID("requestId", in.RequestID)
	if err != nil {
		return s.fail(c, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, actorFrom(c), donationID, requestID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: deliveryID.String()})
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return s.fail(c, err)
	}
	d, err := s.h.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponse(d))
}

// StartPickup handles POST /api/v1/deliveries/:id/start-pickup.
func (s *Server) StartPickup(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartPickupCommand(deliveryID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.StartPickup.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompletePickup handles POST /api/v1/deliveries/:id/complete-pickup.
func (s *Server) CompletePickup(c echo.Context) error {
	cmd, err := s.handoverCommand(c)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CompletePickup.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	cmd, err := s.handoverCommand(c)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handoverCommand(c echo.Context) (commands.HandoverCommand, error) {
	deliveryID, err := pathID(c)
	if err != nil {
		return commands.HandoverCommand{}, err
	}
	var in HandoverInput
	if err := bind(c, &in); err != nil {
		return commands.HandoverCommand{}, err
	}
	condition, err := delivery.ParseFoodCondition(in.Condition)
	if err != nil {
		return commands.HandoverCommand{}, err
	}
	return commands.NewHandoverCommand(deliveryID, actorFrom(c), condition, in.Notes, in.Photos)
}

// ConfirmReceipt handles POST /api/v1/deliveries/:id/confirm. Repeated calls
// succeed with awarded=false.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfirmReceiptCommand(deliveryID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.h.ConfirmReceipt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ConfirmReceiptResponse{Awarded: result.Awarded, Points: result.Points})
}

// UpdateDeliveryLocation handles PUT /api/v1/deliveries/:id/location.
func (s *Server) UpdateDeliveryLocation(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in Location
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}
	location, err := in.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(deliveryID, actorFrom(c), location)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReportDeliveryIssue handles POST /api/v1/deliveries/:id/issues.
func (s *Server) ReportDeliveryIssue(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in IssueInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportDeliveryIssueCommand(
		deliveryID, actorFrom(c), delivery.IssueType(in.Type), in.Description)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.ReportIssue.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in ReasonInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actorFrom(c), in.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CancelDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RateByRequester handles POST /api/v1/deliveries/:id/ratings/requester.
func (s *Server) RateByRequester(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in RequesterRatingInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(deliveryID, actorFrom(c), in.DonorRating, in.NGORating, in.Feedback)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RateByRequester.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RateByDonor handles POST /api/v1/deliveries/:id/ratings/donor.
func (s *Server) RateByDonor(c echo.Context) error {
	deliveryID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in DonorRatingInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(deliveryID, actorFrom(c), 0, in.NGORating, in.Feedback)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RateByDonor.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
