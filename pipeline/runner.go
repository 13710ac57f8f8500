package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/format"
	"github.com/kndndrj/dbexport/output"
)

// ErrAborted is returned when a required source could not be reached.
var ErrAborted = errors.New("export aborted")

// Job describes one export: which sources to read and how the output looks.
type Job struct {
	Name       string
	FilePrefix string
	// Header is the header of the output file. For labeled jobs its first
	// column holds the source label.
	Header core.Header
	// StatsColumn names the numeric column statistics are computed over.
	StatsColumn string
	Sources     []Source
	// Labeled prefixes each row with the label of its source.
	Labeled bool
}

// dataWidth is the number of columns every source must produce.
func (j *Job) dataWidth() int {
	if j.Labeled {
		return len(j.Header) - 1
	}
	return len(j.Header)
}

// statsIndex is the index of the stats column within a source's rows.
func (j *Job) statsIndex() int {
	for i, h := range j.Header {
		if h != j.StatsColumn {
			continue
		}
		if j.Labeled {
			return i - 1
		}
		return i
	}
	return -1
}

func (j *Job) sourceHeader() core.Header {
	if j.Labeled && len(j.Header) > 0 {
		return j.Header[1:]
	}
	return j.Header
}

// SourceReport holds the outcome of fetching one source.
type SourceReport struct {
	Label string
	Rows  int
	Stats core.Statistics
	// Err is set when the source degraded to an empty result.
	Err error
	// StatsErr is set when the rows were exported but could not be summed.
	StatsErr error
}

// Report summarizes a finished run.
type Report struct {
	Job        string
	Sources    []SourceReport
	TotalRows  int
	OutputFile string
	Header     core.Header
}

// Runner executes jobs sequentially.
type Runner struct {
	log       core.Logger
	progress  io.Writer
	outputDir string
	now       func() time.Time
	preview   int
}

func NewRunner(logger core.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		log:       logger,
		progress:  io.Discard,
		outputDir: ".",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run fetches every source in order, writes the combined CSV and reports
// what happened. A failing source counts as empty unless it is required
// and its connection failed, in which case no file is written.
func (r *Runner) Run(ctx context.Context, job *Job) (*Report, error) {
	fetched := make([]Labeled, 0, len(job.Sources))
	report := &Report{
		Job:    job.Name,
		Header: job.Header,
	}

	for _, src := range job.Sources {
		r.printf("Retrieving data from %s...\n", src.Label())

		result, err := r.fetch(ctx, job, src)
		if err != nil {
			if isRequired(src) && errors.Is(err, core.ErrConnection) {
				return nil, fmt.Errorf("%w: %w", ErrAborted, err)
			}
			r.log.Errorf("error fetching from %s: %s", src.Label(), err)
			result = core.NewEmptyResult(job.sourceHeader())
		}

		stats, statsErr := core.ComputeStatistics(result, job.statsIndex())
		if statsErr != nil {
			r.log.Warnf("statistics for %s: %s", src.Label(), statsErr)
		}

		r.printf("   Retrieved %d rows from %s\n", result.Len(), src.Label())

		fetched = append(fetched, Labeled{Label: src.Label(), Result: result})
		report.Sources = append(report.Sources, SourceReport{
			Label:    src.Label(),
			Rows:     result.Len(),
			Stats:    stats,
			Err:      err,
			StatsErr: statsErr,
		})
	}

	var records []core.Row
	if job.Labeled {
		records = Merge(fetched)
	} else {
		results := make([]*core.Result, 0, len(fetched))
		for _, f := range fetched {
			results = append(results, f.Result)
		}
		records = Concat(results...)
	}

	file := output.NewFile(filepath.Join(r.outputDir, output.FileName(job.FilePrefix, r.now())), r.log)
	r.printf("Exporting %d rows to CSV...\n", len(records))

	n, err := file.Write(job.Header, records)
	if err != nil {
		return nil, fmt.Errorf("file.Write: %w", err)
	}

	report.TotalRows = n
	report.OutputFile = file.Path()

	r.printPreview(job.Header, records)

	return report, nil
}

// printPreview prints the first rows of the export as a table.
func (r *Runner) printPreview(header core.Header, records []core.Row) {
	if r.preview <= 0 || len(records) == 0 {
		return
	}

	n := min(r.preview, len(records))
	preview, err := core.NewResult(header, records[:n])
	if err != nil {
		r.log.Warnf("preview: %s", err)
		return
	}

	out, err := preview.Format(format.NewTable(), nil)
	if err != nil {
		r.log.Warnf("preview: %s", err)
		return
	}

	r.printf("First %d of %d rows:\n%s\n", n, len(records), out)
}

func (r *Runner) fetch(ctx context.Context, job *Job, src Source) (*core.Result, error) {
	result, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	// an empty result may come without columns
	if !result.IsEmpty() && len(result.Header()) != job.dataWidth() {
		return nil, fmt.Errorf("%s returned %d columns, expected %d", src.Label(), len(result.Header()), job.dataWidth())
	}

	return result, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.progress, format, args...)
}
