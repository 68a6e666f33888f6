package ports

import (
	"context"
	"time"

	"foodshare/internal/core/domain/model/kernel"
)

// EventType names a notification sent to a user.
type EventType string

const (
	EventNewDonation           EventType = "new_donation"
	EventNewRequest            EventType = "new_request"
	EventDonationAssigned      EventType = "donation_assigned"
	EventRequestAccepted       EventType = "request_accepted"
	EventRequestExpired        EventType = "request_expired"
	EventRequestCancelled      EventType = "request_cancelled"
	EventPickupStarted         EventType = "pickup_started"
	EventPickupCompleted       EventType = "pickup_completed"
	EventDeliveryStarted       EventType = "delivery_started"
	EventDeliveryCompleted     EventType = "delivery_completed"
	EventDeliveryCancelled     EventType = "delivery_cancelled"
	EventDeliveryIssueReported EventType = "delivery_issue_reported"
	EventDeliveryLocation      EventType = "delivery_location"
	EventReceiptConfirmed      EventType = "receipt_confirmed"
	EventRated                 EventType = "rated"
	EventNGOApproved           EventType = "ngo_approved"
)

// Notification is one fire-and-forget message for one user.
type Notification struct {
	Type      EventType      `json:"type"`
	UserID    kernel.UUID    `json:"-"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Notifier delivers notifications. Callers treat errors as non-fatal: a
// failed notification never rolls back the state change it reports.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
