// Package delivery models an NGO carrying one donation to one request.
//
// State machine:
//
//	assigned ──> pickup_in_progress ──> delivery_in_progress ──> delivered
//	   │                 │                       │
//	   └─────────────────┴───────────────────────┴──> cancelled
//
// PickedUp and Failed are valid stored values but no operation produces them;
// Cancel accepts them as sources so that externally written rows can still be
// closed. Delivered, Cancelled and Failed are terminal.
//
// Points earned by the NGO are computed once, when the delivery completes, and
// are credited later when the requester confirms receipt. The PointsAwarded
// latch makes that credit happen at most once.
package delivery
