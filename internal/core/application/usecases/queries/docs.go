// Package queries contains read operations over the marketplace.
// Handlers read through the same unit of work as commands, so both stores
// answer them; the postgres repositories push filtering and distance
// ordering down into SQL.
package queries
