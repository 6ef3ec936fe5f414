package batch

import (
	"fmt"
	"time"

	"github.com/sagan/respimg/util/pathutil"
)

// Task is one (source file, target width) conversion.
type Task struct {
	Source string `json:"source"`
	Width  int    `json:"width"`  // target width
	Output string `json:"output"` // artifact path
}

// NewTasks returns the cross product of sources and widths, in source order then width order.
func NewTasks(sources []string, widths []int, outputDir string) []*Task {
	tasks := make([]*Task, 0, len(sources)*len(widths))
	for _, source := range sources {
		for _, width := range widths {
			tasks = append(tasks, &Task{
				Source: source,
				Width:  width,
				Output: pathutil.VariantPath(outputDir, source, width),
			})
		}
	}
	return tasks
}

type Status int

const (
	StatusPlanned Status = iota // dry run
	StatusCreated
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusCreated:
		return "created"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one Task.
type Result struct {
	*Task
	Status       Status
	ActualWidth  int // may differ from Task.Width with clamp upscale policy
	ActualHeight int
	Reason       string // why the task was skipped
	Err          error
}

// Report summarizes a batch run.
type Report struct {
	Sources  int
	Tasks    int
	Planned  int
	Created  int
	Skipped  int
	Failed   int
	Duration time.Duration
	Results  []*Result // in task order
}

func newReport(sources int, results []*Result, duration time.Duration) *Report {
	report := &Report{
		Sources:  sources,
		Tasks:    len(results),
		Duration: duration,
		Results:  results,
	}
	for _, result := range results {
		switch result.Status {
		case StatusPlanned:
			report.Planned++
		case StatusCreated:
			report.Created++
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
		}
	}
	return report
}

// Err returns an error if any task failed.
func (r *Report) Err() error {
	if r.Failed > 0 {
		return fmt.Errorf("%d errors", r.Failed)
	}
	return nil
}
