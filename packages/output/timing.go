package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/specrun/specrun/packages/core/runner"
)

// TimingRecorder tracks step durations across the run and prints a
// latency distribution when it finishes.
type TimingRecorder struct {
	runner.BaseExtension

	writer    io.Writer
	histogram *hdrhistogram.Histogram
	steps     int
}

type TimingOption func(*TimingRecorder)

func TimingWithWriter(w io.Writer) TimingOption {
	return func(t *TimingRecorder) {
		t.writer = w
	}
}

func NewTimingRecorder(opts ...TimingOption) *TimingRecorder {
	t := &TimingRecorder{
		writer: os.Stdout,
		// 1us to 10min range, 3 significant digits
		histogram: hdrhistogram.New(1, 600_000_000, 3),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TimingRecorder) StepFinished(result *runner.StepResult) {
	if result.Status == runner.StepSkipped {
		return
	}
	t.steps++
	_ = t.histogram.RecordValue(result.Duration.Microseconds())
}

func (t *TimingRecorder) RunFinished(summary *runner.Summary) {
	if t.steps == 0 {
		return
	}
	fmt.Fprintf(t.writer, "\nstep timings (%d steps):\n", t.steps)
	fmt.Fprintf(t.writer, "  p50 %s  p95 %s  p99 %s  max %s\n",
		micros(t.histogram.ValueAtQuantile(50)),
		micros(t.histogram.ValueAtQuantile(95)),
		micros(t.histogram.ValueAtQuantile(99)),
		micros(t.histogram.Max()),
	)
}

func micros(v int64) string {
	return (time.Duration(v) * time.Microsecond).String()
}
