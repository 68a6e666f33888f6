package jobs

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"foodshare/internal/adapters/out/memory"
	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newDeps(t *testing.T) (commands.Dependencies, *clock.Manual) {
	t.Helper()
	manual := clock.NewManual(epoch)
	return commands.Dependencies{
		UoWFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		Clock:      manual,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, manual
}

func seedRequest(t *testing.T, deps commands.Dependencies) kernel.UUID {
	t.Helper()

	requester := kernel.NewUUID()
	register, err := commands.NewRegisterUserCommand(requester, "Shelter",
		requester.String()+"@example.org", kernel.RoleRequester, nil)
	require.NoError(t, err)
	require.NoError(t, commands.NewRegisterUserCommandHandler(deps).Handle(t.Context(), register))

	quantity, err := kernel.NewQuantity(5, "kg")
	require.NoError(t, err)
	location, err := kernel.NewGeoLocation(52.5, 13.4, "")
	require.NoError(t, err)

	create, err := commands.NewCreateRequestCommand(kernel.NewUUID(), requester,
		request.Details{Title: "Lunch", Requirements: request.Requirements{Quantity: quantity}},
		request.High, location)
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateRequestCommandHandler(deps).Handle(t.Context(), create))
	return create.RequestID()
}

func statusOf(t *testing.T, factory ports.UnitOfWorkFactory, id kernel.UUID) request.Status {
	t.Helper()
	req, err := factory.Create().RequestRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return req.Status()
}

func TestRequestExpiryJob_Run(t *testing.T) {
	deps, manual := newDeps(t)
	first := seedRequest(t, deps)
	second := seedRequest(t, deps)

	job := NewRequestExpiryJob(commands.NewExpireRequestsCommandHandler(deps), time.Second, deps.Logger)

	assert.Zero(t, job.Run(t.Context()), "nothing is overdue yet")

	manual.Advance(request.DefaultLifetime + time.Second)
	assert.Equal(t, 2, job.Run(t.Context()))
	assert.Equal(t, request.Expired, statusOf(t, deps.UoWFactory, first))
	assert.Equal(t, request.Expired, statusOf(t, deps.UoWFactory, second))

	assert.Zero(t, job.Run(t.Context()), "a second sweep finds nothing left")
}

func TestRequestExpiryJob_StartStop(t *testing.T) {
	deps, manual := newDeps(t)
	id := seedRequest(t, deps)
	manual.Advance(request.DefaultLifetime + time.Second)

	manager := NewJobManager(commands.NewExpireRequestsCommandHandler(deps), time.Second, deps.Logger)
	require.NoError(t, manager.StartAll())
	t.Cleanup(manager.StopAll)

	assert.Eventually(t, func() bool {
		req, err := deps.UoWFactory.Create().RequestRepository().Get(t.Context(), id)
		return err == nil && req.Status() == request.Expired
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNewRequestExpiryJob_DefaultsInterval(t *testing.T) {
	deps, _ := newDeps(t)

	job := NewRequestExpiryJob(commands.NewExpireRequestsCommandHandler(deps), 0, deps.Logger)

	assert.Equal(t, DefaultSweepInterval, job.interval)
}
