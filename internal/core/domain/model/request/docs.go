// Package request models a requester's time-boxed ask for food.
//
// Lifecycle:
//
//	pending ──┬──> accepted_by_donor ──┐
//	          ├──> accepted_by_ngo ────┴──> in_transit ──> delivered
//	          ├──> expired   (sweep or lazy read once expiresAt has passed)
//	          └──> cancelled (owner, from any non-terminal state)
//
// A request starts with a five minute lifetime that the owner may extend while
// it is still pending. Who accepted it is a tagged Acceptance value rather
// than two nullable fields, so "accepted by both" cannot be represented.
package request
