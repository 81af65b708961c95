package sweep

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/monitoring"
	"golang.org/x/sync/errgroup"
)

// Runner executes independent sweep tasks on a fixed-size worker pool.
type Runner struct {
	workers  int
	progress *monitoring.ProgressBar
}

// NewRunner creates a Runner with the given pool size. Zero or negative
// means one worker per CPU.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{workers: workers}
}

// WithProgress makes the runner report task progress to bar.
func (r *Runner) WithProgress(bar *monitoring.ProgressBar) *Runner {
	r.progress = bar
	return r
}

// Workers returns the pool size.
func (r *Runner) Workers() int {
	return r.workers
}

// NewProgressBar creates a progress bar for a sweep with total tasks.
func NewProgressBar(name string, total uint64) *monitoring.ProgressBar {
	return &monitoring.ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// Run calls task(0) ... task(n-1) on the runner's pool and returns the
// results indexed by task number, independent of completion order. The
// first failing task fails the whole run; tasks that have not started by
// then are skipped. Running tasks are never interrupted.
func Run[T any](
	ctx context.Context,
	r *Runner,
	n int,
	task func(i int) (T, error),
) ([]T, error) {
	results := make([]T, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r.started()
			v, err := task(i)
			r.finished()

			if err != nil {
				return fmt.Errorf("sweep task %d failed: %w", i, err)
			}

			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) started() {
	if r.progress != nil {
		r.progress.IncrementInProgress(1)
	}
}

func (r *Runner) finished() {
	if r.progress != nil {
		r.progress.MoveInProgressToFinished(1)
	}
}
