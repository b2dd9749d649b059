// Package kv provides the durable key-value layer behind the store.
//
// Values are JSON snapshots of whole collections written under fixed
// logical keys (see keys.go). Writes overwrite the full value; there are
// no partial or delta writes.
//
// # Backends
//
//   - SQLite: a single kv table in a WAL-mode database file
//   - Bolt: one bucket in a bbolt file
//   - Memory: a map, for tests and throwaway sessions
//
// All backends satisfy Storage and behave identically: Get on a missing
// key reports found=false with no error, Delete on a missing key is a
// no-op.
package kv
