package http

import (
	"net/http"

	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var in CreateRequestInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	quantity, err := in.Quantity.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	location, err := in.DeliveryLocation.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	urgency, err := request.ParseUrgency(in.Urgency)
	if err != nil {
		return s.fail(c, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(
		requestID,
		actorFrom(c),
		request.Details{
			Title:       in.Title,
			Description: in.Description,
			Requirements: request.Requirements{
				FoodTypes:           in.FoodTypes,
				Quantity:            quantity,
				DietaryRestrictions: in.DietaryRestrictions,
			},
		},
		urgency,
		location,
	)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: requestID.String()})
}

// GetRequest handles GET /api/v1/requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	requestID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRequestQuery(requestID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, requestResponse(view))
}

// PendingRequests handles GET /api/v1/requests/pending?limit=.
func (s *Server) PendingRequests(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewPendingRequestsQuery(limit)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.h.PendingRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	out := make([]RequestResponse, len(views))
	for i, v := range views {
		out[i] = requestResponse(v)
	}
	return c.JSON(http.StatusOK, out)
}

// AcceptRequest handles POST /api/v1/requests/:id/accept. Donors must name
// the donation they commit; NGOs may.
func (s *Server) AcceptRequest(c echo.Context) error {
	requestID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in AcceptRequestInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}
	donationID, err := parseOptionalID("donationId", in.DonationID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAcceptRequestCommand(requestID, actorFrom(c), donationID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.AcceptRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ExtendRequest handles POST /api/v1/requests/:id/extend.
func (s *Server) ExtendRequest(c echo.Context) error {
	requestID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in ExtendRequestInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewExtendRequestCommand(requestID, actorFrom(c), in.Minutes)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.ExtendRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelRequest(c echo.Context) error {
	requestID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var in ReasonInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelRequestCommand(requestID, actorFrom(c), in.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CancelRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRequest handles DELETE /api/v1/requests/:id.
func (s *Server) DeleteRequest(c echo.Context) error {
	requestID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteRequestCommand(requestID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.DeleteRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
