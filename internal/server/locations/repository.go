package locations

import (
	"context"
)

// Repository persists whole store snapshots. Load must return an empty
// snapshot (never nil) when the backing collection does not exist yet.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
