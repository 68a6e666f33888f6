// Package donation models surplus food offered by a donor.
//
// A Donation moves forward through its lifecycle:
//
//	active ──> assigned_to_ngo ───────┐
//	   │                              ├──> picked_up ──> delivered
//	   ├─────> assigned_to_requester ─┘
//	   ├─────> expired   (lazily, once expiryTime has passed)
//	   └─────> cancelled (from any non-terminal state)
//
// The only backward edge is Reset, used when the delivery carrying the
// donation is cancelled: assigned_to_ngo or picked_up return to active with
// both assignment references cleared.
package donation
