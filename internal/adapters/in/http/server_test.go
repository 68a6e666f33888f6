package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"foodshare/internal/adapters/out/memory"
	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type countingLimiter struct {
	mu    sync.Mutex
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return true, l.err
	}
	if l.seen == nil {
		l.seen = make(map[string]int)
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

type api struct {
	t     *testing.T
	e     *echo.Echo
	clock *clock.Manual

	donor, requester, ngo, admin string
}

func newAPI(t *testing.T, limiter *countingLimiter) *api {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manual := clock.NewManual(epoch)
	deps := commands.Dependencies{
		UoWFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		Clock:      manual,
		Logger:     logger,
	}

	var rl ports.RateLimiter
	if limiter != nil {
		rl = limiter
	}

	a := &api{t: t, e: NewServer(NewHandlers(deps), nil, rl, logger).NewEcho(), clock: manual}
	a.donor = a.register("Green Grocer", "donor@example.org", "donor")
	a.requester = a.register("Shelter", "shelter@example.org", "requester")
	a.admin = a.register("Admin", "admin@example.org", "admin")
	a.ngo = a.register("Food Runners", "ngo@example.org", "ngo")

	rec := a.do(http.MethodPost, "/api/v1/users/"+a.ngo+"/approve", a.admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	return a
}

func (a *api) do(method, path, actor string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != "" {
		req.Header.Set(ActorHeader, actor)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) register(name, email, role string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/users", "", map[string]any{"name": name, "email": email, "role": role})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[Created](a.t, rec).ID
}

func (a *api) createDonation() string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/donations", a.donor, map[string]any{
		"title":          "Bread",
		"category":       "bakery",
		"foodTypes":      []string{"bread"},
		"quantity":       map[string]any{"amount": 10, "unit": "kg"},
		"expiryTime":     epoch.Add(6 * time.Hour),
		"pickupLocation": map[string]any{"latitude": 52.52, "longitude": 13.405, "address": "Alexanderplatz"},
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[Created](a.t, rec).ID
}

func (a *api) createRequest(urgency string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/requests", a.requester, map[string]any{
		"title":            "Dinner for 40",
		"quantity":         map[string]any{"amount": 10, "unit": "kg"},
		"urgency":          urgency,
		"deliveryLocation": map[string]any{"latitude": 52.50, "longitude": 13.42},
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[Created](a.t, rec).ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPI_Health(t *testing.T) {
	a := newAPI(t, nil)

	rec := a.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAPI_DeliveryHappyPath(t *testing.T) {
	a := newAPI(t, nil)

	donationID := a.createDonation()
	requestID := a.createRequest("medium")

	rec := a.do(http.MethodPost, "/api/v1/deliveries", a.ngo, map[string]any{
		"donationId": donationID,
		"requestId":  requestID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	deliveryID := decode[Created](t, rec).ID
	base := "/api/v1/deliveries/" + deliveryID

	rec = a.do(http.MethodPost, base+"/start-pickup", a.ngo, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPut, base+"/location", a.ngo, map[string]any{"latitude": 52.51, "longitude": 13.41})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, base+"/complete-pickup", a.ngo, map[string]any{
		"condition": "good",
		"photos":    []string{"https://img.example.org/1.jpg"},
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	a.clock.Advance(30 * time.Minute)
	rec = a.do(http.MethodPost, base+"/complete", a.ngo, map[string]any{"condition": "excellent", "notes": "left at door"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, base, a.requester, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[DeliveryResponse](t, rec)
	assert.Equal(t, "delivered", got.Status)
	assert.Equal(t, 35, got.PointsEarned)
	assert.False(t, got.PointsAwarded)
	require.NotNil(t, got.CurrentLocation)
	assert.InDelta(t, 52.51, *got.CurrentLocation.Latitude, 1e-9)
	require.NotNil(t, got.PickupConfirmation)
	assert.Equal(t, []string{"https://img.example.org/1.jpg"}, got.PickupConfirmation.Photos)
	require.NotNil(t, got.DeliveryConfirmation)
	assert.Equal(t, "left at door", got.DeliveryConfirmation.Notes)

	rec = a.do(http.MethodPost, base+"/confirm", a.requester, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ConfirmReceiptResponse{Awarded: true, Points: 35}, decode[ConfirmReceiptResponse](t, rec))

	rec = a.do(http.MethodPost, base+"/confirm", a.requester, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[ConfirmReceiptResponse](t, rec).Awarded)

	rec = a.do(http.MethodGet, "/api/v1/users/"+a.ngo, a.ngo, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 35, decode[UserResponse](t, rec).Points)

	rec = a.do(http.MethodPost, base+"/ratings/requester", a.requester, map[string]any{
		"donorRating": 5, "ngoRating": 4, "feedback": "thanks",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, base+"/ratings/requester", a.requester, map[string]any{
		"donorRating": 5, "ngoRating": 4,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(http.MethodPost, base+"/ratings/donor", a.donor, map[string]any{"ngoRating": 5})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, base, a.donor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[DeliveryResponse](t, rec)
	require.NotNil(t, got.RatingFromRequester)
	assert.Equal(t, 4, got.RatingFromRequester.NGORating)
	require.NotNil(t, got.RatingFromDonor)
	assert.Equal(t, 5, got.RatingFromDonor.NGORating)
}

func TestAPI_RequestQueries(t *testing.T) {
	a := newAPI(t, nil)

	low := a.createRequest("low")
	critical := a.createRequest("critical")

	rec := a.do(http.MethodGet, "/api/v1/requests/pending", a.donor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decode[[]RequestResponse](t, rec)
	require.Len(t, pending, 2)
	assert.Equal(t, critical, pending[0].ID)
	assert.Equal(t, low, pending[1].ID)

	rec = a.do(http.MethodGet, "/api/v1/requests/"+low, a.requester, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[RequestResponse](t, rec)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "none", got.AcceptedByKind)
	assert.Positive(t, got.TimeRemainingSeconds)
}

func TestAPI_NearbyDonations(t *testing.T) {
	a := newAPI(t, nil)
	donationID := a.createDonation()

	rec := a.do(http.MethodGet, "/api/v1/donations/nearby?lat=52.5&lon=13.4&radiusKm=25", a.ngo, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	found := decode[[]DonationResponse](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, donationID, found[0].ID)
	require.NotNil(t, found[0].DistanceKm)
	assert.Less(t, *found[0].DistanceKm, 25.0)

	rec = a.do(http.MethodGet, "/api/v1/donations/nearby?lat=48.85&lon=2.35&radiusKm=25", a.ngo, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]DonationResponse](t, rec))

	rec = a.do(http.MethodGet, "/api/v1/donations/nearby?lon=2.35", a.ngo, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ActorHeader(t *testing.T) {
	a := newAPI(t, nil)

	rec := a.do(http.MethodGet, "/api/v1/users/"+a.donor, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/users/"+a.donor, "not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ErrorMapping(t *testing.T) {
	a := newAPI(t, nil)

	t.Run("unknown delivery is 404", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/deliveries/"+kernel.NewUUID().String(), a.ngo, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decode[Error](t, rec).Code)
	})

	t.Run("malformed path id is 400", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/deliveries/abc", a.ngo, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing title is 400", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/donations", a.donor, map[string]any{
			"quantity":       map[string]any{"amount": 1, "unit": "kg"},
			"expiryTime":     epoch.Add(time.Hour),
			"pickupLocation": map[string]any{"latitude": 1, "longitude": 1},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("donor creating a delivery is 403", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/deliveries", a.donor, map[string]any{
			"donationId": a.createDonation(),
			"requestId":  a.createRequest("high"),
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("cancelling twice is 409", func(t *testing.T) {
		donationID := a.createDonation()
		rec := a.do(http.MethodPost, "/api/v1/donations/"+donationID+"/cancel", a.donor, map[string]any{"reason": "spoiled"})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = a.do(http.MethodPost, "/api/v1/donations/"+donationID+"/cancel", a.donor, map[string]any{"reason": "again"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("accepting an expired request is 410", func(t *testing.T) {
		requestID := a.createRequest("low")
		a.clock.Advance(2 * time.Hour)

		rec := a.do(http.MethodPost, "/api/v1/requests/"+requestID+"/accept", a.ngo, map[string]any{})
		assert.Equal(t, http.StatusGone, rec.Code)

		rec = a.do(http.MethodGet, "/api/v1/requests/"+requestID, a.requester, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "expired", decode[RequestResponse](t, rec).Status)
	})
}

func TestAPI_RateLimit(t *testing.T) {
	t.Run("rejects over the limit", func(t *testing.T) {
		limiter := &countingLimiter{limit: 100}
		a := newAPI(t, limiter)
		limiter.limit = 2

		path := "/api/v1/users/" + a.donor
		for range 2 {
			rec := a.do(http.MethodGet, path, a.requester, nil)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		rec := a.do(http.MethodGet, path, a.requester, nil)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		rec = a.do(http.MethodGet, path, a.donor, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "limits are per actor")
	})

	t.Run("fails open", func(t *testing.T) {
		limiter := &countingLimiter{limit: 100}
		a := newAPI(t, limiter)
		limiter.err = errors.New("redis down")

		rec := a.do(http.MethodGet, "/api/v1/users/"+a.donor, a.donor, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
