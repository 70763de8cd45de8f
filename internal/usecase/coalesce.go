package usecase

import (
	"context"
	"fmt"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"golang.org/x/sync/singleflight"
)

// KeyedTileLoader is a TileLoader that can tell which loads are equivalent.
// Loads with the same FlightKey fetch the same bytes.
type KeyedTileLoader[T any] interface {
	TileLoader[T]
	FlightKey(idx tile.Index) string
}

type coalescing[T any] struct {
	next  KeyedTileLoader[T]
	group singleflight.Group
}

// Coalesce wraps next so that concurrent loads with the same flight key share
// a single underlying load and its result. A load started after the source
// configuration changed gets a new key and does not join older loads. A
// caller whose context ends stops waiting without cancelling the shared load.
func Coalesce[T any](next KeyedTileLoader[T]) TileLoader[T] {
	return &coalescing[T]{next: next}
}

func (c *coalescing[T]) Load(ctx context.Context, idx tile.Index) (T, error) {
	var zero T

	ch := c.group.DoChan(c.next.FlightKey(idx), func() (any, error) {
		return c.next.Load(context.WithoutCancel(ctx), idx)
	})

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
