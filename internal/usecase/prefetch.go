package usecase

import (
	"context"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"golang.org/x/sync/errgroup"
)

type PrefetchResult struct {
	Index tile.Index
	Err   error
}

// Prefetch loads indices with at most concurrency loads in flight. Results are
// returned in input order; a failed tile never stops the others.
func Prefetch[T any](ctx context.Context, l TileLoader[T], indices []tile.Index, concurrency int) []PrefetchResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]PrefetchResult, len(indices))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, idx := range indices {
		g.Go(func() error {
			_, err := l.Load(ctx, idx)
			results[i] = PrefetchResult{Index: idx, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
