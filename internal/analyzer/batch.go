package analyzer

import (
	"context"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/starfeel/star/internal/model"
)

// BatchItem is the outcome for one text of a batch. Err holds a per-text
// validation failure; it never stops the rest of the batch.
type BatchItem struct {
	Index  int
	Text   string
	Result model.Result
	Err    error
}

// AnalyzeBatch analyzes texts on up to workers goroutines and returns the
// items in input order. Cancelling ctx stops scheduling new texts and
// returns ctx.Err() with the items finished so far.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, workers int) ([]BatchItem, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	items := make([]BatchItem, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.Analyze(text)
			items[i] = BatchItem{Index: i, Text: text, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	if err := ctx.Err(); err != nil {
		return items, err
	}
	if a.debug {
		log.Printf("[batch] analyzed %d texts with %d workers", len(texts), workers)
	}
	return items, nil
}
