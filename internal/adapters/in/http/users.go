package http

import (
	"net/http"

	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var in RegisterUserInput
	if err := bind(c, &in); err != nil {
		return s.fail(c, err)
	}

	role, err := kernel.ParseRole(in.Role)
	if err != nil {
		return s.fail(c, err)
	}

	var location *kernel.GeoLocation
	if in.Location != nil {
		loc, err := in.Location.toDomain()
		if err != nil {
			return s.fail(c, err)
		}
		location = &loc
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, in.Name, in.Email, role, location)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: userID.String()})
}

// GetUser handles GET /api/v1/users/:id.
func (s *Server) GetUser(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return s.fail(c, err)
	}
	u, err := s.h.GetUser.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, userResponse(u))
}

// ApproveNGO handles POST /api/v1/users/:id/approve.
func (s *Server) ApproveNGO(c echo.Context) error {
	cmd, err := s.adminCommand(c)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.ApproveNGO.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivateUser handles POST /api/v1/users/:id/deactivate.
func (s *Server) DeactivateUser(c echo.Context) error {
	cmd, err := s.adminCommand(c)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.DeactivateUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminCommand(c echo.Context) (commands.AdminUserCommand, error) {
	userID, err := pathID(c)
	if err != nil {
		return commands.AdminUserCommand{}, err
	}
	return commands.NewAdminUserCommand(userID, actorFrom(c))
}
