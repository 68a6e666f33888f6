// Package kernel holds the value objects shared by the user, donation, request
// and delivery aggregates:
//   - UUID: entity identifier wrapping github.com/google/uuid
//   - GeoLocation: latitude/longitude with address and haversine distance
//   - Quantity: amount of food with its unit
//   - Role and Actor: who is performing an operation
//
// All of them are immutable and reject their zero values on Validate.
package kernel
