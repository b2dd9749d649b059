// Package store owns the canonical business state and its persistence.
//
// A Store holds every collection in memory and writes full JSON snapshots
// of them to a kv.Storage under fixed keys. Each mutating command follows
// the same contract:
//
//  1. update the in-memory state
//  2. append exactly one audit entry describing the change
//  3. persist before returning
//
// Lookups of unknown ids return nil or false, never an error. Persistence
// failures do not propagate either: they are logged and switch the store
// into read-only mode, while the in-memory change stands.
//
// Business-rule validation is the caller's job (see package validate).
// The store does tighten two rules itself: CreateSale refuses lines it
// cannot fulfil, and DeleteUser refuses to remove the logged-in user or
// the last remaining account.
//
// Store is not safe for concurrent use. One process drives one Store.
package store
