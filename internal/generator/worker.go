package generator

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/willfong/finfixture/internal/models"
)

// BatchRequest is one independent generation request in a batch
type BatchRequest struct {
	Company models.CompanyProfile
	Options models.GenerationOptions
}

// BatchProgress is called after each request completes. It may be called
// from several goroutines at once.
type BatchProgress func(done, total int)

// GetWorkerCount returns the number of workers to use.
// If configured workers is 0, auto-detects using runtime.NumCPU().
func GetWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	cpus := runtime.NumCPU()
	if cpus < 1 {
		return 1
	}
	return cpus
}

// GenerateBatch runs requests on a bounded worker pool. Each request gets
// its own random stream forked from the orchestrator's, in request order, so
// a seeded batch is reproducible regardless of scheduling. Results are
// returned in request order. The first failure cancels the remaining work.
func (o *Orchestrator) GenerateBatch(ctx context.Context, requests []BatchRequest, workers int, progress BatchProgress) ([]*models.GenerationResult, error) {
	results := make([]*models.GenerationResult, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	rngs := o.rng.ForkN(len(requests))
	workerCount := GetWorkerCount(workers)
	if workerCount > len(requests) {
		workerCount = len(requests)
	}

	log := o.requestLogger(ctx)
	log.Debug().Int("requests", len(requests)).Int("workers", workerCount).Msg("starting batch")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	var done atomic.Int64
	for i := range requests {
		g.Go(func() error {
			res, err := o.generate(gctx, rngs[i], requests[i].Company, requests[i].Options)
			if err != nil {
				return fmt.Errorf("batch request %d: %w", i+1, err)
			}
			results[i] = res

			n := done.Add(1)
			if progress != nil {
				progress(int(n), len(requests))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
