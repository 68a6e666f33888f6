// Package commands contains the lifecycle operations that change state.
// Every handler follows the same shape: validate the command, read the clock
// once, open a unit of work, load and check the aggregates, write them back
// with conditional updates, commit, and only then send notifications.
package commands

import (
	"context"
	"log/slog"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
)

// Dependencies are the collaborators shared by every command handler.
type Dependencies struct {
	UoWFactory ports.UnitOfWorkFactory
	Clock      ports.Clock
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// notify hands notifications to the sink after commit. Failures are logged
// and dropped.
func (d Dependencies) notify(ctx context.Context, now time.Time, notifications ...ports.Notification) {
	if d.Notifier == nil {
		return
	}
	for _, n := range notifications {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		if err := d.Notifier.Notify(ctx, n); err != nil {
			d.logger().WarnContext(ctx, "notification dropped",
				"type", n.Type,
				"user_id", n.UserID.String(),
				"error", err,
			)
		}
	}
}

func notification(t ports.EventType, to kernel.UUID, payload map[string]any) ports.Notification {
	return ports.Notification{Type: t, UserID: to, Payload: payload}
}

// loadActor fetches the acting user and checks it is active with the given role.
func loadActor(
	ctx context.Context, repo ports.UserRepository, id kernel.UUID, role kernel.Role, action string,
) (*user.User, error) {
	u, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.EnsureCanAct(role, action); err != nil {
		return nil, err
	}
	return u, nil
}

// loadActive fetches the acting user and checks only that it is active.
func loadActive(ctx context.Context, repo ports.UserRepository, id kernel.UUID, action string) (*user.User, error) {
	u, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.EnsureCanAct(u.Role(), action); err != nil {
		return nil, err
	}
	return u, nil
}

func actorOf(u *user.User) kernel.Actor {
	actor, _ := kernel.NewActor(u.ID(), u.Role())
	return actor
}
