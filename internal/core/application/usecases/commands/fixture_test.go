package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodshare/internal/adapters/out/memory"
	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) types(to kernel.UUID) []ports.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []ports.EventType
	for _, s := range n.sent {
		if s.UserID.IsEqual(to) {
			out = append(out, s.Type)
		}
	}
	return out
}

// fixture wires every handler to one in-memory store and a manual clock.
type fixture struct {
	t        *testing.T
	clock    *clock.Manual
	factory  ports.UnitOfWorkFactory
	notifier *recordingNotifier
	deps     commands.Dependencies

	donor, requester, ngo, admin *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		t:        t,
		clock:    clock.NewManual(epoch),
		factory:  memory.NewUnitOfWorkFactory(memory.NewStore()),
		notifier: &recordingNotifier{},
	}
	f.deps = commands.Dependencies{UoWFactory: f.factory, Clock: f.clock, Notifier: f.notifier}

	f.donor = f.register("Green Grocer", "donor@example.org", kernel.RoleDonor)
	f.requester = f.register("Shelter", "shelter@example.org", kernel.RoleRequester)
	f.admin = f.register("Admin", "admin@example.org", kernel.RoleAdmin)
	f.ngo = f.register("Food Runners", "ngo@example.org", kernel.RoleNGO)
	f.approve(f.ngo.ID())
	return f
}

func (f *fixture) ctx() context.Context {
	return f.t.Context()
}

func (f *fixture) register(name, email string, role kernel.Role) *user.User {
	f.t.Helper()
	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), name, email, role, nil)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewRegisterUserCommandHandler(f.deps).Handle(f.ctx(), cmd))
	return f.user(cmd.UserID())
}

func (f *fixture) approve(ngoID kernel.UUID) {
	f.t.Helper()
	cmd, err := commands.NewAdminUserCommand(ngoID, f.admin.ID())
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewApproveNGOCommandHandler(f.deps).Handle(f.ctx(), cmd))
}

func (f *fixture) location(lat, lon float64) kernel.GeoLocation {
	f.t.Helper()
	loc, err := kernel.NewGeoLocation(lat, lon, "")
	require.NoError(f.t, err)
	return loc
}

func (f *fixture) quantity() kernel.Quantity {
	f.t.Helper()
	q, err := kernel.NewQuantity(10, "kg")
	require.NoError(f.t, err)
	return q
}

func (f *fixture) createDonation() kernel.UUID {
	f.t.Helper()
	cmd, err := commands.NewCreateDonationCommand(
		kernel.NewUUID(), f.donor.ID(),
		donation.Details{Title: "Bread", Category: "bakery"},
		f.quantity(), f.clock.Now().Add(6*time.Hour), f.location(52.52, 13.405),
	)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewCreateDonationCommandHandler(f.deps).Handle(f.ctx(), cmd))
	return cmd.DonationID()
}

func (f *fixture) createRequest(urgency request.Urgency) kernel.UUID {
	f.t.Helper()
	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(), f.requester.ID(),
		request.Details{Title: "Dinner for 40", Requirements: request.Requirements{Quantity: f.quantity()}},
		urgency, f.location(52.50, 13.42),
	)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewCreateRequestCommandHandler(f.deps).Handle(f.ctx(), cmd))
	return cmd.RequestID()
}

func (f *fixture) createDelivery(donationID, requestID kernel.UUID) (kernel.UUID, error) {
	f.t.Helper()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), f.ngo.ID(), donationID, requestID)
	require.NoError(f.t, err)
	return cmd.DeliveryID(), commands.NewCreateDeliveryCommandHandler(f.deps).Handle(f.ctx(), cmd)
}

func (f *fixture) handover(deliveryID kernel.UUID, condition delivery.FoodCondition) commands.HandoverCommand {
	f.t.Helper()
	cmd, err := commands.NewHandoverCommand(deliveryID, f.ngo.ID(), condition, "", nil)
	require.NoError(f.t, err)
	return cmd
}

// deliver runs a delivery from creation to delivered, advancing the clock by
// elapsed before drop-off.
func (f *fixture) deliver(urgency request.Urgency, condition delivery.FoodCondition, elapsed time.Duration) kernel.UUID {
	f.t.Helper()
	deliveryID, err := f.createDelivery(f.createDonation(), f.createRequest(urgency))
	require.NoError(f.t, err)

	start, err := commands.NewStartPickupCommand(deliveryID, f.ngo.ID())
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewStartPickupCommandHandler(f.deps).Handle(f.ctx(), start))
	require.NoError(f.t,
		commands.NewCompletePickupCommandHandler(f.deps).Handle(f.ctx(), f.handover(deliveryID, delivery.Good)))

	f.clock.Advance(elapsed)
	require.NoError(f.t,
		commands.NewCompleteDeliveryCommandHandler(f.deps).Handle(f.ctx(), f.handover(deliveryID, condition)))
	return deliveryID
}

func (f *fixture) confirm(deliveryID kernel.UUID) (commands.ConfirmReceiptResult, error) {
	f.t.Helper()
	cmd, err := commands.NewConfirmReceiptCommand(deliveryID, f.requester.ID())
	require.NoError(f.t, err)
	return commands.NewConfirmReceiptCommandHandler(f.deps).Handle(f.ctx(), cmd)
}

func (f *fixture) user(id kernel.UUID) *user.User {
	f.t.Helper()
	u, err := f.factory.Create().UserRepository().Get(f.ctx(), id)
	require.NoError(f.t, err)
	return u
}

func (f *fixture) donation(id kernel.UUID) *donation.Donation {
	f.t.Helper()
	d, err := f.factory.Create().DonationRepository().Get(f.ctx(), id)
	require.NoError(f.t, err)
	return d
}

func (f *fixture) request(id kernel.UUID) *request.Request {
	f.t.Helper()
	r, err := f.factory.Create().RequestRepository().Get(f.ctx(), id)
	require.NoError(f.t, err)
	return r
}

func (f *fixture) delivery(id kernel.UUID) *delivery.Delivery {
	f.t.Helper()
	d, err := f.factory.Create().DeliveryRepository().Get(f.ctx(), id)
	require.NoError(f.t, err)
	return d
}
