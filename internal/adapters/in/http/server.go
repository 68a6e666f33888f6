package http

import (
	"log/slog"
	"net/http"

	"foodshare/internal/adapters/out/wshub"
	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the use cases the HTTP surface exposes.
type Handlers struct {
	RegisterUser   commands.RegisterUserCommandHandler
	ApproveNGO     commands.ApproveNGOCommandHandler
	DeactivateUser commands.DeactivateUserCommandHandler

	CreateDonation commands.CreateDonationCommandHandler
	AssignNGO      commands.AssignDonationNGOCommandHandler
	CancelDonation commands.CancelDonationCommandHandler
	DeleteDonation commands.DeleteDonationCommandHandler

	CreateRequest commands.CreateRequestCommandHandler
	AcceptRequest commands.AcceptRequestCommandHandler
	ExtendRequest commands.ExtendRequestCommandHandler
	CancelRequest commands.CancelRequestCommandHandler
	DeleteRequest commands.DeleteRequestCommandHandler

	CreateDelivery   commands.CreateDeliveryCommandHandler
	StartPickup      commands.StartPickupCommandHandler
	CompletePickup   commands.CompletePickupCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	ConfirmReceipt   commands.ConfirmReceiptCommandHandler
	UpdateLocation   commands.UpdateDeliveryLocationCommandHandler
	ReportIssue      commands.ReportDeliveryIssueCommandHandler
	CancelDelivery   commands.CancelDeliveryCommandHandler
	RateByRequester  commands.RateDeliveryCommandHandler
	RateByDonor      commands.RateDeliveryByDonorCommandHandler

	GetUser         queries.GetUserQueryHandler
	GetRequest      queries.GetRequestQueryHandler
	GetDelivery     queries.GetDeliveryQueryHandler
	NearbyDonations queries.NearbyDonationsQueryHandler
	PendingRequests queries.PendingRequestsQueryHandler
}

// Server maps HTTP routes onto the marketplace use cases. The caller's
// identity arrives in the X-Actor-ID header set by the gateway.
type Server struct {
	h       Handlers
	hub     *wshub.Hub
	limiter ports.RateLimiter
	logger  *slog.Logger
}

// NewServer builds the HTTP adapter. hub and limiter are optional: without a
// hub the /ws route is not registered, without a limiter nothing is throttled.
func NewServer(h Handlers, hub *wshub.Hub, limiter ports.RateLimiter, logger *slog.Logger) *Server {
	return &Server{
		h:       h,
		hub:     hub,
		limiter: limiter,
		logger:  logger.With("component", "http"),
	}
}

// NewEcho returns an echo instance with the validator, recovery and request
// logging installed and every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.logger.Debug("request", attrs...)
			return nil
		},
	}))

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/users", s.RegisterUser, s.rateLimitByIP)

	api := e.Group("/api/v1", s.requireActor, s.rateLimit)

	api.GET("/users/:id", s.GetUser)
	api.POST("/users/:id/approve", s.ApproveNGO)
	api.POST("/users/:id/deactivate", s.DeactivateUser)

	api.POST("/donations", s.CreateDonation)
	api.GET("/donations/nearby", s.NearbyDonations)
	api.POST("/donations/:id/assign", s.AssignDonationNGO)
	api.POST("/donations/:id/cancel", s.CancelDonation)
	api.DELETE("/donations/:id", s.DeleteDonation)

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests/pending", s.PendingRequests)
	api.GET("/requests/:id", s.GetRequest)
	api.POST("/requests/:id/accept", s.AcceptRequest)
	api.POST("/requests/:id/extend", s.ExtendRequest)
	api.POST("/requests/:id/cancel", s.CancelRequest)
	api.DELETE("/requests/:id", s.DeleteRequest)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.POST("/deliveries/:id/start-pickup", s.StartPickup)
	api.POST("/deliveries/:id/complete-pickup", s.CompletePickup)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/confirm", s.ConfirmReceipt)
	api.PUT("/deliveries/:id/location", s.UpdateDeliveryLocation)
	api.POST("/deliveries/:id/issues", s.ReportDeliveryIssue)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/ratings/requester", s.RateByRequester)
	api.POST("/deliveries/:id/ratings/donor", s.RateByDonor)

	if s.hub != nil {
		e.GET("/ws", s.Subscribe, s.requireActor)
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Subscribe handles GET /ws and streams the caller's notifications.
func (s *Server) Subscribe(c echo.Context) error {
	if err := s.hub.Serve(c.Response(), c.Request(), actorFrom(c)); err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
	}
	return nil
}

// NewHandlers builds every use case over one set of dependencies.
func NewHandlers(deps commands.Dependencies) Handlers {
	return Handlers{
		RegisterUser:   commands.NewRegisterUserCommandHandler(deps),
		ApproveNGO:     commands.NewApproveNGOCommandHandler(deps),
		DeactivateUser: commands.NewDeactivateUserCommandHandler(deps),

		CreateDonation: commands.NewCreateDonationCommandHandler(deps),
		AssignNGO:      commands.NewAssignDonationNGOCommandHandler(deps),
		CancelDonation: commands.NewCancelDonationCommandHandler(deps),
		DeleteDonation: commands.NewDeleteDonationCommandHandler(deps),

		CreateRequest: commands.NewCreateRequestCommandHandler(deps),
		AcceptRequest: commands.NewAcceptRequestCommandHandler(deps),
		ExtendRequest: commands.NewExtendRequestCommandHandler(deps),
		CancelRequest: commands.NewCancelRequestCommandHandler(deps),
		DeleteRequest: commands.NewDeleteRequestCommandHandler(deps),

		CreateDelivery:   commands.NewCreateDeliveryCommandHandler(deps),
		StartPickup:      commands.NewStartPickupCommandHandler(deps),
		CompletePickup:   commands.NewCompletePickupCommandHandler(deps),
		CompleteDelivery: commands.NewCompleteDeliveryCommandHandler(deps),
		ConfirmReceipt:   commands.NewConfirmReceiptCommandHandler(deps),
		UpdateLocation:   commands.NewUpdateDeliveryLocationCommandHandler(deps),
		ReportIssue:      commands.NewReportDeliveryIssueCommandHandler(deps),
		CancelDelivery:   commands.NewCancelDeliveryCommandHandler(deps),
		RateByRequester:  commands.NewRateDeliveryCommandHandler(deps),
		RateByDonor:      commands.NewRateDeliveryByDonorCommandHandler(deps),

		GetUser:         queries.NewGetUserQueryHandler(deps.UoWFactory),
		GetRequest:      queries.NewGetRequestQueryHandler(deps.UoWFactory, deps.Clock, deps.Notifier),
		GetDelivery:     queries.NewGetDeliveryQueryHandler(deps.UoWFactory),
		NearbyDonations: queries.NewNearbyDonationsQueryHandler(deps.UoWFactory),
		PendingRequests: queries.NewPendingRequestsQueryHandler(deps.UoWFactory, deps.Clock),
	}
}
