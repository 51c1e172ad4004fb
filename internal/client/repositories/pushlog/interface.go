// Package pushlog remembers which local entries were pushed to the remote
// mirror and under which keys. The mirror itself keeps no link back to local
// ids, so this table is the only place that relation exists.
package pushlog

import (
	"context"
	"time"
)

type Repository interface {
	Record(ctx context.Context, entryID int64, key string, at time.Time) error
	Keys(ctx context.Context, entryID int64) ([]string, error)
	PushedIDs(ctx context.Context) (map[int64]struct{}, error)
	Forget(ctx context.Context, key string) error
}
