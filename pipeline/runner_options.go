package pipeline

import (
	"io"
	"time"
)

type RunnerOption func(*Runner)

// RunnerWithProgress sets where human readable progress lines are printed.
func RunnerWithProgress(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.progress = w
		}
	}
}

// RunnerWithOutputDir sets the directory output files are written to.
func RunnerWithOutputDir(dir string) RunnerOption {
	return func(r *Runner) {
		if dir != "" {
			r.outputDir = dir
		}
	}
}

// RunnerWithClock replaces the clock used for output file names.
func RunnerWithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// RunnerWithPreview prints the first rows of every export, 0 disables it.
func RunnerWithPreview(rows int) RunnerOption {
	return func(r *Runner) {
		if rows > 0 {
			r.preview = rows
		}
	}
}
