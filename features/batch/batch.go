// Package batch converts every discovered source image into resized webp variants.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sagan/respimg/config"
	"github.com/sagan/respimg/constants"
	"github.com/sagan/respimg/util/imgutil"
)

// Converter runs a batch conversion of a config.
type Converter struct {
	cfg *config.Config
	// If true, discover and report planned artifacts but do not create any file or dir.
	DryRun bool
	// Called once per settled task. Calls are serialized.
	OnResult func(*Result)
	// Called with the task count before any task starts.
	OnStart func(tasks int)

	mu sync.Mutex
}

func New(cfg *config.Config) *Converter {
	return &Converter{cfg: cfg}
}

// Plan discovers sources and returns them together with the conversion tasks.
func (c *Converter) Plan() (sources []string, tasks []*Task, err error) {
	sources, err = Discover(c.cfg.InputDir, c.cfg.Extensions)
	if err != nil {
		return nil, nil, err
	}
	return sources, NewTasks(sources, c.cfg.Widths, c.cfg.OutputDir), nil
}

// Run executes the batch. Per-task failures are logged and counted in the report;
// the returned error is for fatal failures (output dir creation or discovery) and interruption.
// Once ctx is done, not yet started tasks are skipped and Run returns the report with an error
// wrapping ctx.Err().
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	if !c.DryRun {
		if err := os.MkdirAll(c.cfg.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %q: %w", c.cfg.OutputDir, err)
		}
	}

	sources, tasks, err := c.Plan()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		log.Printf("No images found in %s.", c.cfg.InputDir)
		return newReport(0, nil, time.Since(start)), nil
	}
	log.Printf("Found %d images to process...", len(sources))
	for base, list := range findBasenameCollisions(sources) {
		log.Warnf("Sources %q share basename %q; their artifacts overwrite each other", list, base)
	}

	if c.OnStart != nil {
		c.OnStart(len(tasks))
	}
	var results []*Result
	switch {
	case c.DryRun:
		results = c.plan(tasks)
	case c.cfg.Concurrency == constants.MODE_SEQUENTIAL:
		results = c.runSequential(ctx, tasks)
	default:
		results = c.runParallel(ctx, tasks)
	}

	report := newReport(len(sources), results, time.Since(start))
	if c.DryRun {
		log.Printf("Dry run: %d artifacts would be created.", report.Planned)
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		log.Warnf("Interrupted: created %d, skipped %d, failed %d of %d artifacts",
			report.Created, report.Skipped, report.Failed, report.Tasks)
		return report, fmt.Errorf("interrupted: %w", err)
	}
	log.Printf("Image processing completed!")
	log.Printf("Created %d, skipped %d, failed %d of %d artifacts in %v",
		report.Created, report.Skipped, report.Failed, report.Tasks, report.Duration.Round(time.Millisecond))
	return report, nil
}

func (c *Converter) plan(tasks []*Task) []*Result {
	results := make([]*Result, len(tasks))
	for i, task := range tasks {
		log.Printf("Would create: %s", task.Output)
		results[i] = &Result{Task: task, Status: StatusPlanned}
		c.settle(results[i])
	}
	return results
}

func (c *Converter) runSequential(ctx context.Context, tasks []*Task) []*Result {
	results := make([]*Result, len(tasks))
	for i, task := range tasks {
		results[i] = c.convert(ctx, task)
		c.settle(results[i])
	}
	return results
}

// runParallel submits all tasks to an errgroup. Task funcs never return an error,
// so a failed task never cancels its siblings.
// Tasks writing the same output run in one func in task order, so the last one wins.
func (c *Converter) runParallel(ctx context.Context, tasks []*Task) []*Result {
	results := make([]*Result, len(tasks))
	g := new(errgroup.Group)
	if limit := c.workers(); limit > 0 {
		g.SetLimit(limit)
	}
	for _, chain := range chainByOutput(tasks) {
		g.Go(func() error {
			for _, i := range chain {
				results[i] = c.convert(ctx, tasks[i])
				c.settle(results[i])
			}
			return nil
		})
	}
	g.Wait()
	return results
}

// chainByOutput groups task indexes by output path, in order of first appearance.
func chainByOutput(tasks []*Task) [][]int {
	var chains [][]int
	pos := map[string]int{}
	for i, task := range tasks {
		if n, ok := pos[task.Output]; ok {
			chains[n] = append(chains[n], i)
			continue
		}
		pos[task.Output] = len(chains)
		chains = append(chains, []int{i})
	}
	return chains
}

func (c *Converter) workers() int {
	if c.cfg.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.cfg.Workers
}

func (c *Converter) settle(result *Result) {
	if c.OnResult == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.OnResult(result)
}

// convert decodes the source, resizes it and writes the artifact atomically (overwriting).
func (c *Converter) convert(ctx context.Context, task *Task) *Result {
	result := &Result{Task: task}
	if err := ctx.Err(); err != nil {
		result.Status = StatusSkipped
		result.Reason = err.Error()
		return result
	}

	err := func() error {
		img, err := imgutil.Open(task.Source, c.cfg.AutoOrient)
		if err != nil {
			return err
		}
		srcWidth := img.Bounds().Dx()
		width, ok := imgutil.EffectiveWidth(srcWidth, task.Width, c.cfg.Upscale)
		if !ok {
			result.Status = StatusSkipped
			result.Reason = fmt.Sprintf("source width %d is smaller than target width", srcWidth)
			return nil
		}
		data, bounds, err := imgutil.ResizeAndEncode(img, width, c.cfg.Quality)
		if err != nil {
			return err
		}
		if err := atomic.WriteFile(task.Output, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", task.Output, err)
		}
		// atomic.WriteFile creates new files as 0600
		if err := os.Chmod(task.Output, 0644); err != nil {
			return err
		}
		result.Status = StatusCreated
		result.ActualWidth = bounds.Dx()
		result.ActualHeight = bounds.Dy()
		return nil
	}()

	switch {
	case err != nil:
		result.Status = StatusFailed
		result.Err = err
		log.Errorf("Error processing %s at width %d: %v", task.Source, task.Width, err)
	case result.Status == StatusSkipped:
		log.Printf("Skipped: %s (%s)", task.Output, result.Reason)
	default:
		log.Printf("Created: %s", task.Output)
		log.Debugf("%s: %dx%d", task.Output, result.ActualWidth, result.ActualHeight)
	}
	return result
}
