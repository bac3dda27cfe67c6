// Package metadata is the local key/value store of the client. It holds
// the persisted session (token and username) between runs.
package metadata

import (
	"context"
)

// Repository reads and writes the session pairs. Lookup omits keys that are
// not stored.
type Repository interface {
	Lookup(ctx context.Context, keys ...string) (map[string][]byte, error)
	Put(ctx context.Context, pairs map[string][]byte) error
	Clear(ctx context.Context) error
}
