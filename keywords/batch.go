package keywords

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ExtractBatch runs Extract on every document concurrently with at most limit
// workers (one per CPU when limit <= 0). Results are index-aligned with docs.
// Returns ctx.Err() if the context is cancelled before all documents finish.
func (e *Extractor) ExtractBatch(ctx context.Context, docs [][]Token, n, limit int) ([][]Keyword, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([][]Keyword, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Extract(doc, n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
