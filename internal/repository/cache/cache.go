// Package cache holds the persistent byte stores tile loaders use to avoid
// refetching tiles. Entries are addressed by string keys, normally the tile URL.
package cache

import (
	"context"
	"errors"
)

type TileCacheValue []byte

// TileCache is the persistent cache controller consumed by tile loaders.
// Get reports absence with ok == false and a nil error; a non-nil error means
// the backend itself failed. Eviction, if any, is up to the backend.
type TileCache interface {
	Get(ctx context.Context, key string) (TileCacheValue, bool, error)
	Set(ctx context.Context, key string, v TileCacheValue) error
}

var ErrUnknownType = errors.New("unknown cache type")
