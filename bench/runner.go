// Package bench times repeated kernel runs and reports their statistics.
package bench

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mandelbench/codec"
	"mandelbench/colormap"
	"mandelbench/config"
	"mandelbench/kernel"
	"mandelbench/raster"
)

type State int

const (
	Idle State = iota
	Running
	Aggregating
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Aggregating:
		return "aggregating"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Runner benchmarks kernels one after another. The colormap and raster are
// allocated once and shared by every variant it runs.
type Runner struct {
	cfg     config.Config
	cmap    colormap.Colormap
	raster  *raster.Raster
	codec   codec.Codec
	diag    io.Writer
	logger  *slog.Logger
	now     func() time.Time
	state   State
	timings []float64
}

type Option func(*Runner)

// WithDiagnostics sets where progress and summary lines are written, stderr by default.
func WithDiagnostics(w io.Writer) Option {
	return func(r *Runner) {
		r.diag = w
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithCodec overrides the codec picked from the image template extension.
func WithCodec(c codec.Codec) Option {
	return func(r *Runner) {
		r.codec = c
	}
}

// WithColormap replaces the generated colormap, it must match the iteration cap.
func WithColormap(m colormap.Colormap) Option {
	return func(r *Runner) {
		r.cmap = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func NewRunner(cfg config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r := &Runner{
		cfg:    cfg,
		diag:   os.Stderr,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cmap == nil {
		r.cmap = colormap.Build(cfg.MaxIteration)
	} else if r.cmap.MaxIteration() != cfg.MaxIteration {
		return nil, fmt.Errorf("colormap has %d entries, need %d", len(r.cmap), cfg.MaxIteration+1)
	}

	if r.codec == nil && cfg.SaveEvery > 0 {
		c, err := codec.ForPath(cfg.ImageTemplate)
		if err != nil {
			return nil, fmt.Errorf("invalid image template %q: %w", cfg.ImageTemplate, err)
		}
		r.codec = c
	}

	r.raster = raster.New(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Runner) State() State {
	return r.state
}

func (r *Runner) Raster() *raster.Raster {
	return r.raster
}

func (r *Runner) Colormap() colormap.Colormap {
	return r.cmap
}

// Timings returns the durations captured for the current variant.
func (r *Runner) Timings() []float64 {
	return append([]float64(nil), r.timings...)
}

// RunOnce times one synchronous kernel call, records the duration and writes
// a progress line for run i.
func (r *Runner) RunOnce(k kernel.Kernel, i int) float64 {
	if r.cfg.ResetRaster {
		r.raster.Reset()
	}

	start := r.now()
	k.Render(r.cfg, r.cmap, r.raster)
	elapsed := r.now().Sub(start)

	ms := float64(elapsed) / float64(time.Millisecond)
	r.timings = append(r.timings, ms)

	fmt.Fprintf(r.diag, "name=%s %s repeat=%d/%d duration=%.2f\n",
		k.Name(), k.Describe(r.cfg), i+1, r.cfg.Repeat, ms)
	return ms
}

// Run benchmarks k for the configured number of repetitions and reports the
// result. A failure to write the report is returned with the computed report.
func (r *Runner) Run(k kernel.Kernel) (Report, error) {
	logger := r.logger.With("variant", k.Name())
	r.timings = make([]float64, 0, r.cfg.Repeat)

	r.state = Running
	for i := range r.cfg.Repeat {
		r.RunOnce(k, i)
		if r.cfg.SaveEvery > 0 && i%r.cfg.SaveEvery == 0 {
			r.save(logger, k.Name(), i)
		}
	}

	r.state = Aggregating
	rep, err := Aggregate(k.Name(), k.Describe(r.cfg), r.timings, r.cfg.Repeat)
	if err != nil {
		r.state = Done
		return Report{}, fmt.Errorf("could not aggregate %s timings: %w", k.Name(), err)
	}

	line := rep.String()
	fmt.Fprintln(r.diag, line)
	err = AppendReport(r.cfg.ReportPath, line)
	r.state = Done
	if err != nil {
		logger.Error("could not append report", "file", r.cfg.ReportPath, "error", err)
		return rep, err
	}

	return rep, nil
}

func (r *Runner) save(logger *slog.Logger, name string, run int) {
	path := codec.ImagePath(r.cfg.ImageTemplate, name, run)
	if err := codec.Save(path, r.raster, r.codec); err != nil {
		var cerr *codec.Error
		if errors.As(err, &cerr) {
			logger.Error("could not encode image", "file", path, "code", int(cerr.Code), "msg", cerr.Msg, "error", cerr.Err)
		} else {
			logger.Error("could not save image", "file", path, "error", err)
		}
		return
	}
	logger.Debug("saved image", "file", path)
}
