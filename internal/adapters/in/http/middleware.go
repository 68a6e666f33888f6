package http

import (
	"net/http"

	"foodshare/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	// ActorHeader carries the authenticated user id.
	ActorHeader = "X-Actor-ID"
	// actorQueryParam is accepted on /ws where browsers cannot set headers.
	actorQueryParam = "actorId"

	actorContextKey = "actorID"
)

func (s *Server) requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(ActorHeader)
		if raw == "" {
			raw = c.QueryParam(actorQueryParam)
		}
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: ActorHeader + " header is required",
			})
		}

		actorID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "invalid " + ActorHeader + " header",
			})
		}

		c.Set(actorContextKey, actorID)
		return next(c)
	}
}

func actorFrom(c echo.Context) kernel.UUID {
	id, _ := c.Get(actorContextKey).(kernel.UUID)
	return id
}

// rateLimit throttles per actor. It must run after requireActor.
func (s *Server) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.throttle(c, "actor:"+actorFrom(c).String(), next)
	}
}

// rateLimitByIP throttles anonymous routes.
func (s *Server) rateLimitByIP(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.throttle(c, "ip:"+c.RealIP(), next)
	}
}

func (s *Server) throttle(c echo.Context, key string, next echo.HandlerFunc) error {
	if s.limiter == nil {
		return next(c)
	}

	allowed, err := s.limiter.Allow(c.Request().Context(), key)
	if err != nil {
		s.logger.Warn("rate limiter unavailable", "key", key, "error", err)
	}
	if !allowed {
		return c.JSON(http.StatusTooManyRequests, Error{
			Code:    http.StatusTooManyRequests,
			Message: "rate limit exceeded",
		})
	}
	return next(c)
}
