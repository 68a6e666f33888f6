// Package email delivers a chosen subset of notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"

	"gopkg.in/mail.v2"
)

// DefaultEvents are the notifications worth an email. Everything else is
// push only.
var DefaultEvents = []ports.EventType{
	ports.EventNGOApproved,
	ports.EventRequestExpired,
	ports.EventDeliveryCompleted,
	ports.EventReceiptConfirmed,
	ports.EventDeliveryCancelled,
}

var subjects = map[ports.EventType]string{
	ports.EventNGOApproved:       "Your organisation has been approved",
	ports.EventRequestExpired:    "Your food request has expired",
	ports.EventDeliveryCompleted: "Your delivery has arrived",
	ports.EventReceiptConfirmed:  "The requester confirmed receipt",
	ports.EventDeliveryCancelled: "A delivery was cancelled",
}

// Sender is satisfied by *mail.Dialer.
type Sender interface {
	DialAndSend(m ...*mail.Message) error
}

// Directory resolves a user's email address.
type Directory interface {
	EmailOf(ctx context.Context, userID kernel.UUID) (string, error)
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewDialer(cfg Config) *mail.Dialer {
	return mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

type Notifier struct {
	sender    Sender
	directory Directory
	from      string
	events    map[ports.EventType]struct{}
	logger    *slog.Logger
}

func NewNotifier(
	sender Sender, directory Directory, from string, events []ports.EventType, logger *slog.Logger,
) *Notifier {
	set := make(map[ports.EventType]struct{}, len(events))
	for _, e := range events {
		set[e] = struct{}{}
	}
	return &Notifier{
		sender:    sender,
		directory: directory,
		from:      from,
		events:    set,
		logger:    logger.With("component", "email"),
	}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	if _, ok := n.events[notification.Type]; !ok {
		return nil
	}

	to, err := n.directory.EmailOf(ctx, notification.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", notification.UserID, err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject(notification.Type))
	msg.SetBody("text/plain", body(notification))

	if err := n.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %s email: %w", notification.Type, err)
	}
	n.logger.Debug("email sent", "type", notification.Type, "user_id", notification.UserID.String())
	return nil
}

func subject(t ports.EventType) string {
	if s, ok := subjects[t]; ok {
		return s
	}
	return "FoodShare notification"
}

func body(n ports.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", n.Type)
	fmt.Fprintf(&b, "Time: %s\n", n.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))

	keys := make([]string, 0, len(n.Payload))
	for k := range n.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, n.Payload[k])
	}
	return b.String()
}

// UserDirectory looks addresses up in the user store.
type UserDirectory struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewUserDirectory(uowFactory ports.UnitOfWorkFactory) *UserDirectory {
	return &UserDirectory{uowFactory: uowFactory}
}

func (d *UserDirectory) EmailOf(ctx context.Context, userID kernel.UUID) (string, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	u, err := uow.UserRepository().Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Email(), nil
}
