// Package services holds domain logic that spans more than one aggregate:
// binding a donation and a request into a delivery, and turning a
// requester's rating into point credits.
package services
