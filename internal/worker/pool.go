package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/paperverify/internal/model"
)

// CheckFunc runs a full document check and produces a report
type CheckFunc func(ctx context.Context, documentPath string) (*model.Report, error)

// Result is the outcome of checking one document
type Result struct {
	DocumentPath string
	Report       *model.Report
	Err          error
}

// Pool checks multiple documents concurrently with a bounded number of
// workers. Each check builds its own index before querying it, so the
// verification phase of every document remains pure reads.
type Pool struct {
	workers int
	check   CheckFunc
}

// NewPool creates a new pool
func NewPool(workers int, check CheckFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, check: check}
}

// Process checks all documents and returns results in input order
func (p *Pool) Process(ctx context.Context, documents []string) []Result {
	results := make([]Result, len(documents))
	semaphore := make(chan struct{}, p.workers)

	var wg sync.WaitGroup
	for i, doc := range documents {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = Result{DocumentPath: path, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			report, err := p.check(ctx, path)
			results[idx] = Result{DocumentPath: path, Report: report, Err: err}
		}(i, doc)
	}

	wg.Wait()
	return results
}
