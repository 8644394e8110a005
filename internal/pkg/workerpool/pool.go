package workerpool

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the worker count used when the caller passes 0.
const DefaultLimit = 10

// Failure records one failed work item.
type Failure struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Report aggregates the outcome of a batch run.
type Report struct {
	Processed int
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Run executes fn for every id with at most limit concurrent workers. A failed
// item is recorded in the report and never aborts its siblings; only context
// cancellation stops the batch early.
func Run(ctx context.Context, ids []string, limit int, fn func(ctx context.Context, id string) error) Report {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		mu     sync.Mutex
		report = Report{Processed: len(ids)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(ctx, id); err != nil {
				slog.Error("batch item failed", "id", id, "error", err)
				mu.Lock()
				report.Failed++
				report.Failures = append(report.Failures, Failure{ID: id, Message: err.Error()})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			report.Succeeded++
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return report
}
