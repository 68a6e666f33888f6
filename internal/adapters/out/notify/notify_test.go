package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"foodshare/internal/adapters/out/notify"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// blockingNotifier records deliveries and waits on release before returning.
type blockingNotifier struct {
	mu       sync.Mutex
	received []ports.Notification
	release  chan struct{}
}

func (b *blockingNotifier) Notify(_ context.Context, n ports.Notification) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.received = append(b.received, n)
	return nil
}

func (b *blockingNotifier) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.received)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sample(t ports.EventType) ports.Notification {
	return ports.Notification{
		Type:      t,
		UserID:    kernel.NewUUID(),
		Payload:   map[string]any{"requestId": "r-1"},
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestLog_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	sink := notify.NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))
	n := sample(ports.EventRequestExpired)

	require.NoError(t, sink.Notify(t.Context(), n))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "notification", record["msg"])
	assert.Equal(t, "request_expired", record["type"])
	assert.Equal(t, n.UserID.String(), record["user_id"])
	assert.Equal(t, "notifications", record["component"])
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	n := sample(ports.EventNewDonation)
	failing := new(MockNotifier)
	healthy := new(MockNotifier)
	boom := errors.New("smtp down")
	failing.On("Notify", mock.Anything, n).Return(boom).Once()
	healthy.On("Notify", mock.Anything, n).Return(nil).Once()

	err := notify.Fanout{failing, nil, healthy}.Notify(t.Context(), n)

	require.ErrorIs(t, err, boom)
	failing.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestFanout_Empty(t *testing.T) {
	require.NoError(t, notify.Fanout{}.Notify(t.Context(), sample(ports.EventRated)))
}

func TestAsync_DeliversEverythingBeforeStopReturns(t *testing.T) {
	next := &blockingNotifier{release: make(chan struct{})}
	close(next.release)
	async := notify.NewAsync(next, 16, 3, discard())
	async.Start()

	for range 10 {
		require.NoError(t, async.Notify(t.Context(), sample(ports.EventPickupStarted)))
	}
	async.Stop()

	assert.Equal(t, 10, next.count())
	assert.ErrorIs(t, async.Notify(t.Context(), sample(ports.EventPickupStarted)), notify.ErrStopped)
	async.Stop()
}

func TestAsync_FullQueueDropsWithoutBlocking(t *testing.T) {
	next := &blockingNotifier{release: make(chan struct{})}
	async := notify.NewAsync(next, 1, 1, discard())
	async.Start()

	// the worker takes the first and blocks, the second fills the queue
	require.NoError(t, async.Notify(t.Context(), sample(ports.EventRated)))
	require.Eventually(t, func() bool {
		return async.Notify(t.Context(), sample(ports.EventRated)) == nil
	}, time.Second, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- async.Notify(context.Background(), sample(ports.EventRated)) }()
	select {
	case err := <-done:
		require.ErrorIs(t, err, notify.ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(next.release)
	async.Stop()
	assert.Equal(t, 2, next.count())
}

func TestAsync_FailuresAreLoggedNotReturned(t *testing.T) {
	var buf syncBuffer
	next := new(MockNotifier)
	next.On("Notify", mock.Anything, mock.Anything).Return(errors.New("offline"))
	async := notify.NewAsync(next, 4, 1, slog.New(slog.NewTextHandler(&buf, nil)))
	async.Start()

	require.NoError(t, async.Notify(t.Context(), sample(ports.EventDeliveryCompleted)))
	async.Stop()

	assert.Contains(t, buf.String(), "notification delivery failed")
	assert.Contains(t, buf.String(), "offline")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
