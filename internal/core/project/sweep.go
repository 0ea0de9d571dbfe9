package project

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/registry"
	"github.com/modu-ai/scaffold/pkg/models"
)

// SweepOptions configures a combinatorial generation run.
type SweepOptions struct {
	Out       string                      // Parent directory of all generated trees.
	Context   models.ProjectContext       // Shared by every combination.
	Jobs      int                         // Concurrent generations. Defaults to GOMAXPROCS.
	Overwrite bool                        // Passed through to each generation.
	Filter    func(models.Selection) bool // Nil selects every valid selection.
	Progress  func(SweepResult, int, int) // Called serially after each combination with done and total.
}

// SweepResult is the outcome of one combination.
type SweepResult struct {
	Selection   models.Selection
	Destination string
	Result      *GenerateResult // Nil when Err is set.
	Err         error
}

// SweepReport collects the results of a sweep in selection order.
type SweepReport struct {
	Results []SweepResult
}

// Failed returns the combinations that did not generate.
func (r *SweepReport) Failed() []SweepResult {
	var out []SweepResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err returns nil when every combination succeeded and an error wrapping
// ErrSweepFailed otherwise.
func (r *SweepReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d combinations failed, first %s: %w",
		ErrSweepFailed, len(failed), len(r.Results), failed[0].Selection, failed[0].Err)
}

// SweepFilter returns a filter accepting selections whose axes are listed.
// An empty list accepts any value on that axis.
func SweepFilter(families []models.TemplateFamily, engines []models.DBEngine, libraries []models.DBLibrary) func(models.Selection) bool {
	return registry.Predicate{Families: families, Engines: engines, Libraries: libraries}.Matches
}

// Sweep generates every valid selection accepted by opts.Filter into
// <Out>/<family>_<engine>_<library>. Each combination is independent: a
// failure is recorded in the report and the others continue. The returned
// error is non-nil only when ctx is cancelled; per-combination failures are
// reported through SweepReport.Err.
func (g *Generator) Sweep(ctx context.Context, opts SweepOptions) (*SweepReport, error) {
	var sels []models.Selection
	for _, sel := range selection.All() {
		if opts.Filter == nil || opts.Filter(sel) {
			sels = append(sels, sel)
		}
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g.logger.Info("starting sweep", "combinations", len(sels), "jobs", jobs, "out", opts.Out)

	report := &SweepReport{Results: make([]SweepResult, len(sels))}

	var (
		mu   sync.Mutex
		done int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, sel := range sels {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			dest := filepath.Join(opts.Out, sel.Slug())
			res, err := g.Generate(egCtx, GenerateOptions{
				Selection:   sel,
				Context:     opts.Context,
				Destination: dest,
				Overwrite:   opts.Overwrite,
			})
			if err != nil {
				g.logger.Warn("combination failed", "selection", sel.String(), "error", err)
			}

			mu.Lock()
			defer mu.Unlock()
			report.Results[i] = SweepResult{Selection: sel, Destination: dest, Result: res, Err: err}
			done++
			if opts.Progress != nil {
				opts.Progress(report.Results[i], done, len(sels))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	g.logger.Info("sweep finished", "combinations", len(sels), "failed", len(report.Failed()))
	return report, nil
}
