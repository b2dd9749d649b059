package store

import (
	"time"

	"github.com/google/uuid"
)

// Id prefixes per collection.
const (
	PrefixProduct = "prod"
	PrefixSale    = "sale"
	PrefixExpense = "exp"
	PrefixUser    = "user"
	PrefixLog     = "log"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces record ids.
type IDGenerator interface {
	NewID(prefix string) string
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator produces "<prefix>_<uuidv7>" ids. UUIDv7 embeds a
// timestamp, so ids of one collection sort by creation time.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID returns a fresh id for prefix.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}
